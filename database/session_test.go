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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCommit(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.CreateAll(ctx, (*note)(nil)))

	s, err := engine.NewSession(ctx)
	require.NoError(t, err)
	assert.False(t, s.InTransaction())

	db, err := s.DB(ctx)
	require.NoError(t, err)
	assert.True(t, s.InTransaction())
	_, err = db.NewInsert().Model(&note{Body: "first"}).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Commit())
	assert.False(t, s.InTransaction())
	require.NoError(t, s.Close())

	assert.Equal(t, 1, countNotes(t, engine))
}

func TestSessionRollback(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.CreateAll(ctx, (*note)(nil)))

	err := engine.WithSession(ctx, func(s *Session) error {
		db, err := s.DB(ctx)
		if err != nil {
			return err
		}
		if _, err := db.NewInsert().Model(&note{Body: "discarded"}).Exec(ctx); err != nil {
			return err
		}
		return s.Rollback()
	})
	require.NoError(t, err)
	assert.Equal(t, 0, countNotes(t, engine))
}

func TestSessionCloseDiscardsUncommittedWork(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.CreateAll(ctx, (*note)(nil)))

	s, err := engine.NewSession(ctx)
	require.NoError(t, err)
	db, err := s.DB(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(&note{Body: "pending"}).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 0, countNotes(t, engine))
}

func TestSessionNoOpCommitAndRollback(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	s, err := engine.NewSession(ctx)
	require.NoError(t, err)
	assert.NoError(t, s.Commit())
	assert.NoError(t, s.Rollback())
	assert.Same(t, engine, s.Engine())
	require.NoError(t, s.Close())
}

func TestSessionUseAfterClose(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	s, err := engine.NewSession(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.DB(ctx)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, s.Commit(), ErrSessionClosed)
	assert.ErrorIs(t, s.Rollback(), ErrSessionClosed)
}

func TestWithSessionReleasesConnectionOnError(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.CreateAll(ctx, (*note)(nil)))

	boom := errors.New("boom")
	err := engine.WithSession(ctx, func(s *Session) error {
		db, err := s.DB(ctx)
		if err != nil {
			return err
		}
		if _, err := db.NewInsert().Model(&note{Body: "lost"}).Exec(ctx); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, engine.Stats().InUse)

	// The single shared connection must be usable again.
	assert.Equal(t, 0, countNotes(t, engine))
}

func TestWithSessionReleasesConnectionOnPanic(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = engine.WithSession(ctx, func(s *Session) error {
			panic("boom")
		})
	})
	assert.Equal(t, 0, engine.Stats().InUse)
	require.NoError(t, engine.Ping(ctx))
}

func TestSessionPrePingAcquire(t *testing.T) {
	profiles := DefaultPoolProfiles()
	profiles[KindLocalFile] = PoolSettings{PoolSize: 1, PrePing: true}

	cfg := DefaultConnectionConfig()
	cfg.URL = "sqlite:///file:preping?mode=memory&cache=shared"
	engine, err := NewEngine(cfg, WithLogger(&recordingLogger{}), WithPoolProfiles(profiles))
	require.NoError(t, err)
	defer func() { _ = engine.Close() }()

	err = engine.WithSession(context.Background(), func(s *Session) error {
		_, err := s.DB(context.Background())
		return err
	})
	assert.NoError(t, err)
}
