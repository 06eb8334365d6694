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

package dbinit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const ruleWidth = 60

// Reporter writes human-readable progress to an operator console.
type Reporter struct {
	out     io.Writer
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	title   *color.Color
}

// NewReporter returns a Reporter writing to out. Colors follow the fatih/color
// defaults, so they are dropped when stdout is not a terminal or NO_COLOR is set.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:     out,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		title:   color.New(color.FgCyan, color.Bold),
	}
}

func (r *Reporter) Banner(title string) {
	rule := strings.Repeat("=", ruleWidth)
	_, _ = fmt.Fprintln(r.out, rule)
	_, _ = r.title.Fprintln(r.out, title)
	_, _ = fmt.Fprintln(r.out, rule)
}

// Section prints a blank line followed by a heading.
func (r *Reporter) Section(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, "\n"+format+"\n", args...)
}

func (r *Reporter) Success(format string, args ...interface{}) {
	_, _ = r.success.Fprintf(r.out, "[OK] "+format+"\n", args...)
}

func (r *Reporter) Warning(format string, args ...interface{}) {
	_, _ = r.warn.Fprintf(r.out, "[WARN] "+format+"\n", args...)
}

func (r *Reporter) Failure(format string, args ...interface{}) {
	_, _ = r.fail.Fprintf(r.out, "[ERROR] "+format+"\n", args...)
}

// Detail prints an indented line under the previous message.
func (r *Reporter) Detail(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, "   "+format+"\n", args...)
}

// Item prints a bullet list entry.
func (r *Reporter) Item(s string) {
	_, _ = fmt.Fprintf(r.out, "  - %s\n", s)
}

func (r *Reporter) numbered(lines []string) {
	for i, line := range lines {
		_, _ = fmt.Fprintf(r.out, "%d. %s\n", i+1, line)
	}
}

// Ready prints the success footer with the follow-up steps.
func (r *Reporter) Ready() {
	_, _ = fmt.Fprintln(r.out)
	r.Banner("DATABASE READY!")
	r.Section("Next steps:")
	r.numbered([]string{
		"Start the backend server",
		"Test the health endpoint: http://localhost:8000/api/health",
		"Run content ingestion (if needed)",
	})
}

// Troubleshoot prints err and the checklist shown after a failed run.
func (r *Reporter) Troubleshoot(err error, envFile string) {
	_, _ = fmt.Fprintln(r.out)
	r.Failure("Error initializing database: %v", err)
	r.Section("Troubleshooting:")
	r.numbered([]string{
		fmt.Sprintf("Check DATABASE_URL in %s", envFile),
		"Verify the database server is reachable from this machine",
		"Check that the credentials and database name in the URL are correct",
	})
}

// MissingEnvFile prints the remediation shown when the env file is absent.
func (r *Reporter) MissingEnvFile(path string) {
	r.Failure("%s file not found!", path)
	r.Section("Create it by:")
	r.numbered([]string{
		"Copy .env.example to .env",
		"Add your database connection string as DATABASE_URL",
		"Add any other service credentials the backend needs",
	})
}
