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

package repository

import (
	"context"

	"github.com/tomoncle/dbinit/types"
)

// Repository is a thin generic data access layer over one Bun model type.
type Repository[T any] interface {
	// GetOne returns the entity with the given primary key.
	GetOne(ctx context.Context, id any) (*T, error)

	// FindOne returns the first entity matching filter.
	FindOne(ctx context.Context, filter *types.QueryFilter) (*T, error)

	// Exists reports whether any entity matches filter.
	Exists(ctx context.Context, filter *types.QueryFilter) (bool, error)

	// Count returns the number of stored entities.
	Count(ctx context.Context) (int, error)

	// Create inserts one or more new entities.
	Create(ctx context.Context, entity ...*T) error
}
