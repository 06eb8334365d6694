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
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// LoadConnectionConfig builds a ConnectionConfig from the process environment.
func LoadConnectionConfig() (*ConnectionConfig, error) {
	return parseConnectionConfig(env.Options{})
}

// LoadConnectionConfigFrom builds a ConnectionConfig from the given variables
// only, ignoring the process environment.
func LoadConnectionConfigFrom(environ map[string]string) (*ConnectionConfig, error) {
	return parseConnectionConfig(env.Options{Environment: environ})
}

func parseConnectionConfig(opts env.Options) (*ConnectionConfig, error) {
	cfg := DefaultConnectionConfig()
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	cfg.URL = strings.TrimSpace(cfg.URL)
	if cfg.URL == "" {
		cfg.URL = DefaultDatabaseURL
	}
	return cfg, nil
}
