// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dashboard

import (
	"context"

	"github.com/tomtom215/marquee/internal/catalog"
)

// Engine answers the dashboard's queries for one loaded catalog.
//
// Filtered, TypeCounts, TopCountries and YearCounts honor the selection.
// TopGenres and TypeTrend always cover the whole catalog.
type Engine interface {
	Name() string
	Filtered(ctx context.Context, sel catalog.Selection, previewRows int) (catalog.Preview, error)
	TypeCounts(ctx context.Context, sel catalog.Selection) ([]catalog.Count, error)
	TopCountries(ctx context.Context, sel catalog.Selection, n int) ([]catalog.Count, error)
	YearCounts(ctx context.Context, sel catalog.Selection) ([]catalog.YearCount, error)
	TopGenres(ctx context.Context, n int) ([]catalog.Count, error)
	TypeTrend(ctx context.Context) (catalog.Pivot, error)
}

// EngineFactory builds an Engine for a freshly loaded catalog.
type EngineFactory func(ctx context.Context, c *catalog.Catalog) (Engine, error)

// MemoryEngine evaluates every query directly over the catalog's rows.
type MemoryEngine struct {
	cat *catalog.Catalog
}

// NewMemoryEngine returns an engine over c.
func NewMemoryEngine(c *catalog.Catalog) *MemoryEngine {
	return &MemoryEngine{cat: c}
}

// MemoryEngineFactory is the EngineFactory for the in-memory engine.
func MemoryEngineFactory(_ context.Context, c *catalog.Catalog) (Engine, error) {
	return NewMemoryEngine(c), nil
}

// Name implements Engine.
func (e *MemoryEngine) Name() string { return "memory" }

// Filtered implements Engine.
func (e *MemoryEngine) Filtered(_ context.Context, sel catalog.Selection, previewRows int) (catalog.Preview, error) {
	v, err := e.cat.Filter(sel)
	if err != nil {
		return catalog.Preview{}, err
	}
	return v.Preview(previewRows), nil
}

// TypeCounts implements Engine.
func (e *MemoryEngine) TypeCounts(_ context.Context, sel catalog.Selection) ([]catalog.Count, error) {
	v, err := e.cat.Filter(sel)
	if err != nil {
		return nil, err
	}
	return catalog.TypeCounts(v), nil
}

// TopCountries implements Engine.
func (e *MemoryEngine) TopCountries(_ context.Context, sel catalog.Selection, n int) ([]catalog.Count, error) {
	v, err := e.cat.Filter(sel)
	if err != nil {
		return nil, err
	}
	return catalog.TopCountries(v, n), nil
}

// YearCounts implements Engine.
func (e *MemoryEngine) YearCounts(_ context.Context, sel catalog.Selection) ([]catalog.YearCount, error) {
	v, err := e.cat.Filter(sel)
	if err != nil {
		return nil, err
	}
	return catalog.YearCounts(v), nil
}

// TopGenres implements Engine.
func (e *MemoryEngine) TopGenres(_ context.Context, n int) ([]catalog.Count, error) {
	return catalog.TopGenres(e.cat, n)
}

// TypeTrend implements Engine.
func (e *MemoryEngine) TypeTrend(_ context.Context) (catalog.Pivot, error) {
	return catalog.TypeTrend(e.cat)
}
