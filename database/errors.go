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
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoTableErr
	ExistTableErr
	DuplicateKeyErr
	NotNullViolationErr
	ConnectionErr
	AuthenticationErr
)

func (e SQLError) String() string {
	switch e {
	case NoRowsErr:
		return "no rows"
	case NoTableErr:
		return "no such table"
	case ExistTableErr:
		return "table exists"
	case DuplicateKeyErr:
		return "duplicate key"
	case NotNullViolationErr:
		return "not null violation"
	case ConnectionErr:
		return "connection failure"
	case AuthenticationErr:
		return "authentication failure"
	default:
		return "unknown"
	}
}

// IsSqlError reports whether err came from the database and, if so, which
// class of failure it is. Driver error types are checked first; SQLite has no
// typed errors and is matched on message text.
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	if err == nil {
		return false, UnknownErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true, NoRowsErr
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return true, DuplicateKeyErr
		case "23502":
			return true, NotNullViolationErr
		case "42P01":
			return true, NoTableErr
		case "42P07":
			return true, ExistTableErr
		case "28P01", "28000":
			return true, AuthenticationErr
		}
		if pqErr.Code.Class() == "08" {
			return true, ConnectionErr
		}
		return true, UnknownErr
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062:
			return true, DuplicateKeyErr
		case 1048:
			return true, NotNullViolationErr
		case 1146:
			return true, NoTableErr
		case 1050:
			return true, ExistTableErr
		case 1045:
			return true, AuthenticationErr
		default:
			return true, UnknownErr
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "no such table") {
		return true, NoTableErr
	}
	if strings.Contains(s, "already exists") && strings.Contains(s, "table") {
		return true, ExistTableErr
	}
	if strings.Contains(s, "unique constraint failed") ||
		strings.Contains(s, "duplicate key value") {
		return true, DuplicateKeyErr
	}
	if strings.Contains(s, "not null constraint failed") {
		return true, NotNullViolationErr
	}
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "unable to open database file") {
		return true, ConnectionErr
	}
	return false, UnknownErr
}
