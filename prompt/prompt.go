/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package prompt asks the operator questions on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks questions and returns the operator's answers.
type Prompter interface {
	// Confirm asks a yes/no question. Only "y" and "yes" count as yes.
	Confirm(question string) (bool, error)

	// Ask reads one line, returning def when the answer is blank.
	Ask(question, def string) (string, error)

	// AskSecret is Ask without echoing the answer when input is a terminal.
	AskSecret(question, def string) (string, error)
}

// Terminal is a Prompter reading answers line by line from an io.Reader.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal returns a Prompter reading from in and writing questions to out.
// When in is a terminal, secrets are read with echo disabled.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{reader: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
	}
	return t
}

// Interactive reports whether answers come from a terminal.
func (t *Terminal) Interactive() bool { return t.fd >= 0 }

func (t *Terminal) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(t.out, "%s (y/n): ", question); err != nil {
		return false, err
	}
	answer, err := t.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (t *Terminal) Ask(question, def string) (string, error) {
	if _, err := fmt.Fprint(t.out, label(question, def)); err != nil {
		return "", err
	}
	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (t *Terminal) AskSecret(question, def string) (string, error) {
	if t.fd < 0 {
		return t.Ask(question, def)
	}
	if _, err := fmt.Fprint(t.out, label(question, def)); err != nil {
		return "", err
	}
	b, err := term.ReadPassword(t.fd)
	_, _ = fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	if answer := strings.TrimSpace(string(b)); answer != "" {
		return answer, nil
	}
	return def, nil
}

// readLine returns the next trimmed line. End of input reads as a blank answer.
func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func label(question, def string) string {
	if def == "" {
		return question + ": "
	}
	return fmt.Sprintf("%s (default: %s): ", question, def)
}
