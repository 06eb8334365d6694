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
	"fmt"
	"reflect"
	"sort"

	"github.com/uptrace/bun/dialect"
)

// CreateAll creates a table for every model that does not have one yet.
// Existing tables are left untouched, so running it again is harmless.
func (e *Engine) CreateAll(ctx context.Context, models ...interface{}) error {
	db := e.DB()
	if db == nil {
		return ErrEngineClosed
	}
	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table %s: %w", getModelName(model), err)
		}
		e.logger.Debug("Table ensured", "model", getModelName(model))
	}
	return nil
}

// TableNames lists the user tables present in the database, sorted by name.
func (e *Engine) TableNames(ctx context.Context) ([]string, error) {
	db := e.DB()
	if db == nil {
		return nil, ErrEngineClosed
	}

	var query string
	switch db.Dialect().Name() {
	case dialect.SQLite:
		query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	case dialect.PG:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'`
	case dialect.MySQL:
		query = `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE'`
	default:
		return nil, fmt.Errorf("table introspection not supported for dialect %s", db.Dialect().Name())
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func getModelName(model interface{}) string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
