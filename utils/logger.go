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

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000"

var (
	defaultLevel      = logrus.InfoLevel
	defaultOutput     io.Writer = os.Stderr
	loggerRegistryMu  sync.RWMutex
	loggerRegistry    = map[string]*logrus.Logger{}
	consoleLogFormat  = EnvDefaultString("CONSOLE_LOG_FORMAT", "text")
	consoleLogNoColor = EnvDefaultBool("NO_COLOR", false)
)

// ConfigureConsoleLogFormat switches newly created loggers between "text" and
// "json" output.
func ConfigureConsoleLogFormat(format string) {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		consoleLogFormat = "json"
	} else {
		consoleLogFormat = "text"
	}
}

// ConfigureLogOutput redirects every registered logger, and the ones created
// afterwards, to w.
func ConfigureLogOutput(w io.Writer) {
	if w == nil {
		return
	}
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	defaultOutput = w
	for _, lg := range loggerRegistry {
		lg.SetOutput(w)
	}
}

func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// ConfigureLogLevel sets the level of every registered logger and of the
// loggers created afterwards.
func ConfigureLogLevel(levelStr string) {
	lvl := ParseLogLevel(levelStr)
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	defaultLevel = lvl
	for _, lg := range loggerRegistry {
		lg.SetLevel(lvl)
	}
}

// NewLogger returns the named logger, creating and registering it on first use.
func NewLogger(name string) *logrus.Logger {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	if lg, ok := loggerRegistry[name]; ok {
		return lg
	}

	l := logrus.New()
	l.SetOutput(defaultOutput)
	l.SetLevel(defaultLevel)
	l.SetReportCaller(true)
	if consoleLogFormat == "json" {
		l.SetFormatter(&JSONLogFormatter{LoggerName: name})
	} else {
		l.SetFormatter(&Log4jColorFormatter{
			LoggerName:  name,
			ColorOutput: !consoleLogNoColor,
			NameWidth:   10,
		})
	}
	loggerRegistry[name] = l
	return l
}

// Log4jColorFormatter renders entries as
//
//	2025-01-02 15:04:05.000    INFO 4242   [DATABASE] conn.go:88 : message key=value
type Log4jColorFormatter struct {
	LoggerName  string
	ColorOutput bool
	NameWidth   int
}

func (f *Log4jColorFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(entry.Time.Format(timestampFormat))
	b.WriteByte(' ')
	b.WriteString(f.paint(fmt.Sprintf("%7s", strings.ToUpper(entry.Level.String())), levelColor(entry.Level)))
	b.WriteByte(' ')
	b.WriteString(fmt.Sprintf("%-6d", os.Getpid()))
	b.WriteByte(' ')
	b.WriteString(f.paint(fmt.Sprintf("[%*s]", f.NameWidth, limitRunes(f.LoggerName, f.NameWidth)), ansiCyan))
	if entry.Caller != nil {
		b.WriteByte(' ')
		b.WriteString(f.paint(fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line), ansiFaint))
	}
	b.WriteString(" : ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func (f *Log4jColorFormatter) paint(s, code string) string {
	if !f.ColorOutput {
		return s
	}
	return code + s + ansiReset
}

// JSONLogFormatter renders one JSON object per entry.
type JSONLogFormatter struct {
	LoggerName string
}

func (f *JSONLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	type jsonLogRecord struct {
		Time    string                 `json:"time"`
		Level   string                 `json:"level"`
		Model   string                 `json:"model"`
		Caller  string                 `json:"caller,omitempty"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields,omitempty"`
	}

	rec := jsonLogRecord{
		Time:    entry.Time.Format(timestampFormat),
		Level:   entry.Level.String(),
		Model:   f.LoggerName,
		Message: entry.Message,
	}
	if entry.Caller != nil {
		rec.Caller = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	if len(entry.Data) > 0 {
		rec.Fields = make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			rec.Fields[k] = v
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

const (
	ansiReset   = "\x1b[0m"
	ansiFaint   = "\x1b[2m"
	ansiRed     = "\x1b[31m"
	ansiYellow  = "\x1b[33m"
	ansiGreen   = "\x1b[32m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
)

func levelColor(level logrus.Level) string {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return ansiRed
	case logrus.WarnLevel:
		return ansiYellow
	case logrus.InfoLevel:
		return ansiGreen
	case logrus.DebugLevel:
		return ansiBlue
	default:
		return ansiMagenta
	}
}

func limitRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func EnvDefaultString(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
	return def
}
