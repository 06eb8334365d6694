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
	"github.com/uptrace/bun"
)

type baseRepositoryImpl[T any] struct {
	db bun.IDB
}

// NewRepository returns a generic repository running its queries on db, which
// may be a *bun.DB, a connection or a transaction.
func NewRepository[T any](db bun.IDB) Repository[T] {
	return &baseRepositoryImpl[T]{db: db}
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, id any) (*T, error) {
	var entity T
	err := r.db.NewSelect().Model(&entity).Where("?PKs = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) FindOne(ctx context.Context, filter *types.QueryFilter) (*T, error) {
	var entity T
	query := r.db.NewSelect().Model(&entity)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if err := query.Limit(1).Scan(ctx); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) Exists(ctx context.Context, filter *types.QueryFilter) (bool, error) {
	query := r.db.NewSelect().Model((*T)(nil))
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	return query.Exists(ctx)
}

func (r *baseRepositoryImpl[T]) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*T)(nil)).Count(ctx)
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity ...*T) error {
	entities := make([]*T, len(entity))
	copy(entities, entity)
	_, err := r.db.NewInsert().Model(&entities).Exec(ctx)
	return err
}
