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
	"time"
)

// ConnectionKind classifies a connection string into the family of database
// it points at. It is computed once per engine.
type ConnectionKind int

const (
	KindUnknown ConnectionKind = iota
	KindLocalFile
	KindManagedServer
)

func (k ConnectionKind) String() string {
	switch k {
	case KindLocalFile:
		return "sqlite"
	case KindManagedServer:
		return "postgres"
	default:
		return "unknown"
	}
}

// PoolSettings describes how the shared engine pools its connections.
// The zero value leaves every knob at the database/sql defaults.
type PoolSettings struct {
	// SharedConnection serializes every caller, from any goroutine, onto a
	// single connection. Used for single-file databases.
	SharedConnection bool          `yaml:"shared_connection"`
	PoolSize         int           `yaml:"pool_size"`
	MaxOverflow      int           `yaml:"max_overflow"`
	PrePing          bool          `yaml:"pre_ping"`
	Recycle          time.Duration `yaml:"recycle"`
}

// MaxOpenConns is the hard cap on simultaneously open connections.
func (p PoolSettings) MaxOpenConns() int {
	if p.SharedConnection {
		return 1
	}
	if p.PoolSize <= 0 {
		return 0
	}
	return p.PoolSize + p.MaxOverflow
}

// MaxIdleConns is the number of connections kept around between uses.
func (p PoolSettings) MaxIdleConns() int {
	if p.SharedConnection {
		return 1
	}
	return p.PoolSize
}

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	ActiveConns   int           `json:"active_conns"`
	IdleConns     int           `json:"idle_conns"`
	MaxOpenConns  int           `json:"max_open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// DBStats mirrors database/sql stats returned by the engine.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns"`
	OpenConns         int           `json:"open_conns"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}

// ConnectionConfig describes which database to open and how to observe it.
type ConnectionConfig struct {
	URL            string        `env:"DATABASE_URL" envDefault:"sqlite:///./app.db"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
	EnableQueryLog bool          `env:"DB_ENABLE_QUERY_LOG" envDefault:"false"`
	SlowQueryTime  time.Duration `env:"DB_SLOW_QUERY_TIME" envDefault:"2s"`
	PoolFile       string        `env:"DB_POOL_FILE"`
}

// DefaultDatabaseURL is used when DATABASE_URL is not set.
const DefaultDatabaseURL = "sqlite:///./app.db"

// DefaultConnectionConfig returns a connection config with sensible defaults.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		URL:            DefaultDatabaseURL,
		ConnectTimeout: time.Second * 10,
		EnableQueryLog: false,
		SlowQueryTime:  time.Second * 2,
	}
}
