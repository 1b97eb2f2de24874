// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"sync"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/dashboard"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
)

// engineFactory builds the configured analytics engine and keeps DuckDB
// handles so they can be closed on shutdown.
type engineFactory struct {
	cfg *config.Config

	mu     sync.Mutex
	opened []*database.Engine
}

func newEngineFactory(cfg *config.Config) *engineFactory {
	return &engineFactory{cfg: cfg}
}

// Build implements dashboard.EngineFactory.
func (f *engineFactory) Build(ctx context.Context, c *catalog.Catalog) (dashboard.Engine, error) {
	if f.cfg.Analytics.Engine != config.EngineDuckDB {
		return dashboard.NewMemoryEngine(c), nil
	}

	e, err := database.Open(ctx, &f.cfg.Database, c)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.opened = append(f.opened, e)
	f.mu.Unlock()
	return e, nil
}

// Close releases every DuckDB engine built so far.
func (f *engineFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.opened {
		if err := e.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing DuckDB engine")
		}
	}
	f.opened = nil
}
