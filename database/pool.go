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
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// PoolProfiles maps each connection kind to the pool settings used for it.
type PoolProfiles map[ConnectionKind]PoolSettings

// DefaultPoolProfiles returns the built-in kind -> pool settings table.
func DefaultPoolProfiles() PoolProfiles {
	return PoolProfiles{
		KindLocalFile: {
			SharedConnection: true,
		},
		KindManagedServer: {
			PoolSize:    5,
			MaxOverflow: 10,
			PrePing:     true,
			Recycle:     time.Hour,
		},
		KindUnknown: {},
	}
}

// For returns the settings for kind, falling back to library defaults.
func (p PoolProfiles) For(kind ConnectionKind) PoolSettings {
	if s, ok := p[kind]; ok {
		return s
	}
	return PoolSettings{}
}

// PoolProfileConfig is the YAML structure of a pool profile file.
//
//	pools:
//	  postgres:
//	    pool_size: 10
//	    max_overflow: 20
//	    pre_ping: true
//	    recycle: 30m
type PoolProfileConfig struct {
	Pools map[string]PoolSettings `yaml:"pools"`
}

// LoadPoolProfiles reads overrides from a YAML file and applies them on top of
// the defaults. A missing file is not an error: the defaults are returned and
// the reason is logged at debug level.
func LoadPoolProfiles(logger Logger, path string) (PoolProfiles, error) {
	profiles := DefaultPoolProfiles()
	if path == "" {
		return profiles, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if logger != nil {
			logger.Debug("Pool profile file not found, using built-in profiles", "path", path)
		}
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool profile file: %w", err)
	}

	var config PoolProfileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse pool profile file: %w", err)
	}

	for name, settings := range config.Pools {
		kind, ok := kindByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown connection kind %q in %s", name, path)
		}
		if settings.PoolSize < 0 || settings.MaxOverflow < 0 || settings.Recycle < 0 {
			return nil, fmt.Errorf("negative pool setting for %q in %s", name, path)
		}
		profiles[kind] = settings
	}
	if logger != nil {
		logger.Debug("Pool profiles loaded", "path", path, "overrides", len(config.Pools))
	}
	return profiles, nil
}

// ExportPoolProfiles writes profiles as YAML, creating directories as needed.
func ExportPoolProfiles(profiles PoolProfiles, outputPath string) error {
	config := PoolProfileConfig{Pools: make(map[string]PoolSettings, len(profiles))}
	for kind, settings := range profiles {
		config.Pools[kind.String()] = settings
	}

	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to serialize pool profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write pool profile file: %w", err)
	}
	return nil
}

func kindByName(name string) (ConnectionKind, bool) {
	for _, k := range []ConnectionKind{KindLocalFile, KindManagedServer, KindUnknown} {
		if k.String() == name {
			return k, true
		}
	}
	return KindUnknown, false
}
