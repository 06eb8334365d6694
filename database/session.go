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
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrSessionClosed is returned when a closed session is used.
var ErrSessionClosed = errors.New("session is closed")

// Session is a short-lived unit of work bound to one connection borrowed from
// the engine pool. Work runs in an explicit transaction that begins with the
// first statement and ends with Commit or Rollback. Close rolls back anything
// left uncommitted and hands the connection back.
//
// A Session is not safe for concurrent use.
type Session struct {
	engine *Engine
	conn   bun.Conn
	tx     bun.Tx
	inTx   bool
	closed bool
}

// NewSession borrows a connection and returns a session bound to it. The
// caller owns the session and must Close it; prefer WithSession.
func (e *Engine) NewSession(ctx context.Context) (*Session, error) {
	conn, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{engine: e, conn: conn}, nil
}

// WithSession opens a session, hands it to fn and closes it on every exit
// path, including a panic inside fn. Uncommitted work is rolled back.
func (e *Engine) WithSession(ctx context.Context, fn func(s *Session) error) (err error) {
	s, err := e.NewSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close session: %w", cerr)
		}
	}()
	return fn(s)
}

// acquire borrows a connection from the pool. With pre-ping enabled the
// connection is checked first; a dead one is evicted from the pool and a
// single fresh connection is tried in its place.
func (e *Engine) acquire(ctx context.Context) (bun.Conn, error) {
	db := e.DB()
	if db == nil {
		return bun.Conn{}, ErrEngineClosed
	}

	attempts := 1
	if e.pool.PrePing {
		attempts = 2
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		conn, err := db.Conn(ctx)
		if err != nil {
			return bun.Conn{}, fmt.Errorf("failed to acquire database connection: %w", err)
		}
		if !e.pool.PrePing {
			return conn, nil
		}
		if err := conn.PingContext(ctx); err != nil {
			lastErr = err
			e.logger.Warn("Discarding stale pooled connection", "error", err, "attempt", i+1)
			_ = conn.Raw(func(interface{}) error { return driver.ErrBadConn })
			_ = conn.Close()
			continue
		}
		return conn, nil
	}
	return bun.Conn{}, fmt.Errorf("pooled connection failed liveness check: %w", lastErr)
}

// Engine returns the engine the session was opened from.
func (s *Session) Engine() *Engine { return s.engine }

// DB returns the transaction the session's statements run in, beginning it
// if needed. The returned handle is valid until the next Commit or Rollback.
func (s *Session) DB(ctx context.Context) (bun.IDB, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if !s.inTx {
		tx, err := s.conn.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		s.tx = tx
		s.inTx = true
	}
	return &s.tx, nil
}

// InTransaction reports whether the session has uncommitted work pending.
func (s *Session) InTransaction() bool { return s.inTx }

// Commit commits the current transaction. Committing with no pending work is
// a no-op.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if !s.inTx {
		return nil
	}
	s.inTx = false
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the current transaction, if any.
func (s *Session) Rollback() error {
	if s.closed {
		return ErrSessionClosed
	}
	if !s.inTx {
		return nil
	}
	s.inTx = false
	if err := s.tx.Rollback(); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Close rolls back uncommitted work and returns the connection to the pool.
// Closing an already closed session does nothing.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	var errs []error
	if s.inTx {
		if err := s.tx.Rollback(); err != nil {
			errs = append(errs, fmt.Errorf("failed to rollback transaction: %w", err))
		}
		s.inTx = false
	}
	s.closed = true
	if err := s.conn.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to release connection: %w", err))
	}
	return errors.Join(errs...)
}
