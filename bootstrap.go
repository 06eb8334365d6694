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

package dbinit

import (
	"context"
	"fmt"
	"io"

	"github.com/tomoncle/dbinit/database"
	"github.com/tomoncle/dbinit/models"
	"github.com/tomoncle/dbinit/repository"
)

// Result summarises a completed bootstrap run.
type Result struct {
	Kind      database.ConnectionKind
	Tables    []string
	UserCount int
}

// Bootstrapper ensures the schema exists and verifies a session round trip.
type Bootstrapper struct {
	Engine   *database.Engine
	Models   database.ModelRegistry
	Reporter *Reporter
	Logger   database.Logger
}

// NewBootstrapper returns a Bootstrapper for every model the application declares.
func NewBootstrapper(engine *database.Engine, reporter *Reporter) *Bootstrapper {
	return &Bootstrapper{
		Engine:   engine,
		Models:   models.Registry(),
		Reporter: reporter,
		Logger:   engine.Logger(),
	}
}

// Run reports the target database, creates missing tables, lists the tables
// present and counts users in a scoped session. Running it again against the
// same database changes nothing.
func (b *Bootstrapper) Run(ctx context.Context) (*Result, error) {
	if b.Engine == nil {
		return nil, database.ErrEngineClosed
	}
	r := b.reporter()
	result := &Result{Kind: b.Engine.Kind()}

	r.Banner("DATABASE INITIALIZATION")
	switch result.Kind {
	case database.KindLocalFile:
		r.Warning("Using SQLite (local development only)")
		r.Detail("Use a managed Postgres server for shared or deployed environments.")
	case database.KindManagedServer:
		r.Success("Using Postgres: %s", b.Engine.DisplayURL())
	default:
		r.Warning("Unknown database: %s", b.Engine.DisplayURL())
	}

	if err := b.Engine.Ping(ctx); err != nil {
		return nil, err
	}

	r.Section("Creating tables...")
	if err := b.Engine.CreateAll(ctx, b.instances()...); err != nil {
		return nil, err
	}
	r.Success("Tables created successfully!")

	tables, err := b.Engine.TableNames(ctx)
	if err != nil {
		return nil, err
	}
	result.Tables = tables
	r.Section("Tables in database:")
	for _, name := range tables {
		r.Item(name)
	}

	count, err := CountUsers(ctx, b.Engine)
	if err != nil {
		return nil, err
	}
	result.UserCount = count
	_, _ = fmt.Fprintln(r.out)
	r.Success("Database connection verified!")
	r.Detail("Current users: %d", count)

	b.logger().Info("Database bootstrap finished", "kind", result.Kind, "tables", len(tables), "users", count)
	return result, nil
}

// CountUsers counts stored users inside a short-lived session.
func CountUsers(ctx context.Context, engine *database.Engine) (int, error) {
	var count int
	err := engine.WithSession(ctx, func(s *database.Session) error {
		db, err := s.DB(ctx)
		if err != nil {
			return err
		}
		count, err = repository.NewRepository[models.User](db).Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		return nil
	})
	return count, err
}

func (b *Bootstrapper) instances() []interface{} {
	if b.Models == nil {
		return models.Registry().Instances()
	}
	return b.Models.Instances()
}

func (b *Bootstrapper) reporter() *Reporter {
	if b.Reporter == nil {
		b.Reporter = NewReporter(io.Discard)
	}
	return b.Reporter
}

func (b *Bootstrapper) logger() database.Logger {
	if b.Logger == nil {
		b.Logger = b.Engine.Logger()
	}
	return b.Logger
}
