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

package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConnectionConfigDefaults(t *testing.T) {
	cfg, err := LoadConnectionConfigFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabaseURL, cfg.URL)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 2*time.Second, cfg.SlowQueryTime)
	assert.False(t, cfg.EnableQueryLog)
	assert.Empty(t, cfg.PoolFile)
}

func TestLoadConnectionConfigFromEnvironment(t *testing.T) {
	cfg, err := LoadConnectionConfigFrom(map[string]string{
		"DATABASE_URL":        " postgresql://u:p@db.example.com/app ",
		"DB_CONNECT_TIMEOUT":  "3s",
		"DB_ENABLE_QUERY_LOG": "true",
		"DB_POOL_FILE":        "/etc/app/pools.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@db.example.com/app", cfg.URL)
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.True(t, cfg.EnableQueryLog)
	assert.Equal(t, "/etc/app/pools.yaml", cfg.PoolFile)
}

func TestLoadConnectionConfigBlankURL(t *testing.T) {
	cfg, err := LoadConnectionConfigFrom(map[string]string{"DATABASE_URL": "   "})
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabaseURL, cfg.URL)
}

func TestLoadConnectionConfigInvalidDuration(t *testing.T) {
	_, err := LoadConnectionConfigFrom(map[string]string{"DB_CONNECT_TIMEOUT": "soon"})
	assert.Error(t, err)
}
