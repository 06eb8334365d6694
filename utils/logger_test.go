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
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerIsRegistered(t *testing.T) {
	a := NewLogger("REGISTRY")
	b := NewLogger("REGISTRY")
	assert.Same(t, a, b)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLogLevel(" warning "))
	assert.Equal(t, logrus.ErrorLevel, ParseLogLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel("chatty"))
}

func TestConfigureLogLevel(t *testing.T) {
	lg := NewLogger("LEVELS")
	ConfigureLogLevel("error")
	defer ConfigureLogLevel("info")
	assert.Equal(t, logrus.ErrorLevel, lg.GetLevel())
	assert.Equal(t, logrus.ErrorLevel, NewLogger("LEVELS-LATE").GetLevel())
}

func TestLog4jColorFormatter(t *testing.T) {
	f := &Log4jColorFormatter{LoggerName: "DATABASE", NameWidth: 10}
	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{"kind": "sqlite", "attempt": 2})
	entry.Level = logrus.WarnLevel
	entry.Message = "Discarding stale pooled connection"

	out, err := f.Format(entry)
	require.NoError(t, err)
	line := string(out)
	assert.Contains(t, line, "WARNING ")
	assert.Contains(t, line, "[  DATABASE]")
	assert.Contains(t, line, " : Discarding stale pooled connection attempt=2 kind=sqlite\n")
	assert.NotContains(t, line, "\x1b[")
}

func TestJSONLogFormatter(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "DATABASE"}
	entry := logrus.NewEntry(logrus.New()).WithField("users", 3)
	entry.Level = logrus.InfoLevel
	entry.Message = "bootstrap finished"

	out, err := f.Format(entry)
	require.NoError(t, err)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out), &rec))
	assert.Equal(t, "DATABASE", rec["model"])
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "bootstrap finished", rec["message"])
	assert.Equal(t, float64(3), rec["fields"].(map[string]interface{})["users"])
}

func TestConfigureLogOutput(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger("OUTPUT")
	ConfigureLogOutput(&buf)
	lg.Warn("redirected")
	assert.Contains(t, buf.String(), "redirected")
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("DBINIT_TEST_STRING", "value")
	t.Setenv("DBINIT_TEST_BOOL", "true")
	t.Setenv("DBINIT_TEST_BAD_BOOL", "maybe")

	assert.Equal(t, "value", EnvDefaultString("DBINIT_TEST_STRING", "def"))
	assert.Equal(t, "def", EnvDefaultString("DBINIT_TEST_MISSING", "def"))
	assert.True(t, EnvDefaultBool("DBINIT_TEST_BOOL", false))
	assert.False(t, EnvDefaultBool("DBINIT_TEST_BAD_BOOL", false))
}
