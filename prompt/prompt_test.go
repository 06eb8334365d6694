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

package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	cases := map[string]bool{
		"y\n":   true,
		"Y\n":   true,
		"yes\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
		"nope\n": false,
	}
	for input, want := range cases {
		var out bytes.Buffer
		p := NewTerminal(strings.NewReader(input), &out)

		got, err := p.Confirm("Create test user?")
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
		assert.Equal(t, "Create test user? (y/n): ", out.String())
	}
}

func TestAskUsesDefaultOnBlank(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminal(strings.NewReader("\n  ops@example.com  \n"), &out)

	first, err := p.Ask("Email", "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", first)

	second, err := p.Ask("Email", "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", second)

	assert.Contains(t, out.String(), "Email (default: test@example.com): ")
}

func TestAskSecretFallsBackToLineInput(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminal(strings.NewReader("s3cret\n"), &out)

	got, err := p.AskSecret("Password", "test123")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	got, err = p.AskSecret("Password", "test123")
	require.NoError(t, err)
	assert.Equal(t, "test123", got)
}
