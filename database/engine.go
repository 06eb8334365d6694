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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// ErrEngineClosed is returned by operations on an engine after Close.
var ErrEngineClosed = errors.New("database engine is closed")

// Engine is the shared handle to one configured database: the connection
// target, its pool policy and the Bun DB built on top of it. Build it once at
// start-up and pass it to whatever needs database access.
type Engine struct {
	config *ConnectionConfig
	kind   ConnectionKind
	pool   PoolSettings
	logger Logger

	mu     sync.RWMutex
	db     *bun.DB
	sqlDB  *sql.DB
	closed bool
}

type engineOptions struct {
	logger   Logger
	profiles PoolProfiles
}

// Option customises NewEngine.
type Option func(*engineOptions)

// WithLogger sets the logger used by the engine and its hooks.
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}

// WithPoolProfiles replaces the kind -> pool settings table. When not given,
// the table is loaded from cfg.PoolFile on top of DefaultPoolProfiles.
func WithPoolProfiles(profiles PoolProfiles) Option {
	return func(o *engineOptions) { o.profiles = profiles }
}

// NewEngine classifies cfg.URL, opens the matching driver and applies the pool
// settings for that kind. It does not touch the network: the first connection
// is made lazily by Ping or by the first query.
func NewEngine(cfg *ConnectionConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url cannot be empty")
	}

	o := engineOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = GetLogger()
	}
	if o.profiles == nil {
		profiles, err := LoadPoolProfiles(o.logger, cfg.PoolFile)
		if err != nil {
			return nil, err
		}
		o.profiles = profiles
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	kind := ClassifyURL(cfg.URL)
	e := &Engine{
		config: cfg,
		kind:   kind,
		pool:   o.profiles.For(kind),
		logger: o.logger,
	}

	sqlDB, db, err := e.open()
	if err != nil {
		return nil, err
	}
	e.sqlDB, e.db = sqlDB, db
	e.configureConnectionPool()
	for _, hook := range queryHooks(cfg, e.logger) {
		e.db.AddQueryHook(hook)
	}

	e.logger.Debug("Database engine created", "kind", kind, "target", MaskURL(cfg.URL),
		"max_open_conns", e.pool.MaxOpenConns(), "pre_ping", e.pool.PrePing, "recycle", e.pool.Recycle)
	return e, nil
}

func (e *Engine) open() (*sql.DB, *bun.DB, error) {
	switch e.kind {
	case KindLocalFile:
		sqlDB, err := sql.Open(sqliteshim.ShimName, sqliteDSN(e.config.URL))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return sqlDB, bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case KindManagedServer:
		sqlDB, err := sql.Open("postgres", postgresDSN(e.config.URL))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return sqlDB, bun.NewDB(sqlDB, pgdialect.New()), nil
	}

	switch scheme := URLScheme(e.config.URL); scheme {
	case "mysql", "mariadb":
		dsn, err := mysqlDSN(e.config.URL)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open mysql database: %w", err)
		}
		return sqlDB, bun.NewDB(sqlDB, mysqldialect.New()), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func (e *Engine) configureConnectionPool() {
	if e.pool.SharedConnection {
		e.sqlDB.SetMaxOpenConns(1)
		e.sqlDB.SetMaxIdleConns(1)
		e.sqlDB.SetConnMaxLifetime(0)
		e.sqlDB.SetConnMaxIdleTime(0)
		return
	}
	if e.pool.PoolSize > 0 {
		e.sqlDB.SetMaxIdleConns(e.pool.MaxIdleConns())
		e.sqlDB.SetMaxOpenConns(e.pool.MaxOpenConns())
	}
	if e.pool.Recycle > 0 {
		e.sqlDB.SetConnMaxLifetime(e.pool.Recycle)
	}
}

// Kind returns the classification of the configured connection string.
func (e *Engine) Kind() ConnectionKind { return e.kind }

// Pool returns the pool settings applied to this engine.
func (e *Engine) Pool() PoolSettings { return e.pool }

// DisplayURL returns the connection string with credentials masked.
func (e *Engine) DisplayURL() string { return MaskURL(e.config.URL) }

// Logger returns the engine logger.
func (e *Engine) Logger() Logger { return e.logger }

// Dialect returns the name of the SQL dialect in use.
func (e *Engine) Dialect() dialect.Name {
	db := e.DB()
	if db == nil {
		return dialect.Invalid
	}
	return db.Dialect().Name()
}

// DB returns the Bun database, or nil once the engine is closed.
func (e *Engine) DB() *bun.DB {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.db
}

// Ping opens (or reuses) a connection and checks that the server answers,
// bounded by the configured connect timeout.
func (e *Engine) Ping(ctx context.Context) error {
	db := e.DB()
	if db == nil {
		return ErrEngineClosed
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, e.config.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctxTimeout); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	return nil
}

// HealthCheck pings the database and reports pool usage.
func (e *Engine) HealthCheck(ctx context.Context) *HealthStatus {
	start := time.Now()
	status := &HealthStatus{LastCheckTime: start}

	e.mu.RLock()
	db, sqlDB := e.db, e.sqlDB
	e.mu.RUnlock()
	if db == nil {
		status.LastError = "Database not initialized"
		return status
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	err := db.PingContext(ctxTimeout)
	status.ResponseTime = time.Since(start)
	if err != nil {
		status.LastError = err.Error()
	} else {
		status.Healthy = true
		status.Connected = true
	}

	stats := sqlDB.Stats()
	status.ActiveConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections
	return status
}

// Stats returns database/sql pool statistics.
func (e *Engine) Stats() *DBStats {
	e.mu.RLock()
	sqlDB := e.sqlDB
	e.mu.RUnlock()
	if sqlDB == nil {
		return &DBStats{}
	}

	stats := sqlDB.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

// Close releases every pooled connection. Calling it more than once is safe.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	err := e.db.Close()
	e.db = nil
	e.sqlDB = nil
	if err != nil {
		e.logger.Error("Failed to close database connection", "error", err)
		return err
	}
	e.logger.Debug("Database connection closed")
	return nil
}
