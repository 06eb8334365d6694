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
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/extra/bundebug"
)

// SlowQueryHook logs every successful query that took longer than Threshold.
type SlowQueryHook struct {
	Threshold time.Duration
	Logger    Logger
}

var _ bun.QueryHook = (*SlowQueryHook)(nil)

func (h *SlowQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *SlowQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if event.Err != nil || h.Logger == nil || h.Threshold <= 0 {
		return
	}
	duration := time.Since(event.StartTime)
	if duration <= h.Threshold {
		return
	}
	h.Logger.Warn(color.YellowString("Database slow query detected"),
		"duration", duration.Round(time.Microsecond),
		"slow_threshold", h.Threshold,
		"operation", event.Operation(),
		"query", operationColor(event.Operation()).Sprint(event.Query),
	)
}

func operationColor(operation string) *color.Color {
	switch operation {
	case "SELECT":
		return color.New(color.FgGreen)
	case "INSERT":
		return color.New(color.FgBlue)
	case "UPDATE":
		return color.New(color.FgYellow)
	case "DELETE":
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgRed)
	}
}

// queryHooks returns the hooks an engine built from cfg should install.
func queryHooks(cfg *ConnectionConfig, logger Logger) []bun.QueryHook {
	var hooks []bun.QueryHook
	if cfg.EnableQueryLog {
		hooks = append(hooks, bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}
	if cfg.SlowQueryTime > 0 {
		hooks = append(hooks, &SlowQueryHook{Threshold: cfg.SlowQueryTime, Logger: logger})
	}
	return hooks
}
