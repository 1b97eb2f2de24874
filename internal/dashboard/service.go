// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package dashboard composes everything the dashboard page shows for one
// selection: the overview, the sidebar options, the filtered preview and the
// data behind charts A through E.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Config holds the dashboard's fixed sizes and the catalog location.
type Config struct {
	CatalogPath      string
	PreviewRows      int
	DefaultCountries int
	TopN             int
}

// Service loads the catalog on demand and answers dashboard queries.
// It is safe for concurrent use.
type Service struct {
	cfg       Config
	loader    *catalog.Loader
	newEngine EngineFactory

	mu        sync.Mutex
	engine    Engine
	engineFor *catalog.Catalog
}

// NewService wires a Service. A nil factory selects the in-memory engine.
func NewService(cfg Config, loader *catalog.Loader, factory EngineFactory) *Service {
	if factory == nil {
		factory = MemoryEngineFactory
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = 5
	}
	if cfg.DefaultCountries <= 0 {
		cfg.DefaultCountries = 5
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	return &Service{cfg: cfg, loader: loader, newEngine: factory}
}

// Config returns the service configuration.
func (s *Service) Config() Config { return s.cfg }

// Catalog returns the memoized catalog, loading it on first use.
func (s *Service) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	return s.loader.Load(ctx, s.cfg.CatalogPath)
}

// Ready reports whether the catalog has been loaded successfully.
func (s *Service) Ready() bool {
	return s.loader.Cached(s.cfg.CatalogPath) != nil
}

// Warm loads the catalog and builds the engine ahead of the first request.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.Engine(ctx)
	return err
}

// Engine returns the engine for the current catalog, building it once.
func (s *Service) Engine(ctx context.Context) (Engine, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil && s.engineFor == c {
		return s.engine, nil
	}
	e, err := s.newEngine(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("build analytics engine: %w", err)
	}
	logging.Info().Str("engine", e.Name()).Int("rows", c.Len()).Msg("Analytics engine ready")
	s.engine, s.engineFor = e, c
	return e, nil
}

// Options returns the sidebar control values.
func (s *Service) Options(ctx context.Context) (catalog.Options, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return catalog.Options{}, err
	}
	return c.Options()
}

// Resolve turns a request's query into a concrete selection. Without the
// Explicit marker any part the query omits takes its default; with it an
// omitted list means nothing is selected.
func (s *Service) Resolve(ctx context.Context, q Query) (catalog.Selection, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return catalog.Selection{}, err
	}
	def := opts.DefaultSelection(s.cfg.DefaultCountries)

	sel := catalog.Selection{
		Types:     q.Types,
		Countries: q.Countries,
		YearMin:   def.YearMin,
		YearMax:   def.YearMax,
	}
	if !q.Explicit {
		if sel.Types == nil {
			sel.Types = def.Types
		}
		if sel.Countries == nil {
			sel.Countries = def.Countries
		}
	}
	if sel.Types == nil {
		sel.Types = []string{}
	}
	if sel.Countries == nil {
		sel.Countries = []string{}
	}
	if q.YearMin != nil {
		sel.YearMin = *q.YearMin
	}
	if q.YearMax != nil {
		sel.YearMax = *q.YearMax
	}
	return sel, nil
}

// Query is the raw selection a request carries. Nil lists and years mean
// "not given".
type Query struct {
	Explicit  bool
	Types     []string
	Countries []string
	YearMin   *int
	YearMax   *int
}

// Filtered returns the filtered preview for sel.
func (s *Service) Filtered(ctx context.Context, sel catalog.Selection) (catalog.Preview, error) {
	return run(ctx, s, "filtered", func(e Engine) (catalog.Preview, error) {
		return e.Filtered(ctx, sel, s.cfg.PreviewRows)
	})
}

// TypeCounts returns chart A's data.
func (s *Service) TypeCounts(ctx context.Context, sel catalog.Selection) ([]catalog.Count, error) {
	return run(ctx, s, "types", func(e Engine) ([]catalog.Count, error) {
		return e.TypeCounts(ctx, sel)
	})
}

// TopCountries returns chart B's data.
func (s *Service) TopCountries(ctx context.Context, sel catalog.Selection) ([]catalog.Count, error) {
	return run(ctx, s, "countries", func(e Engine) ([]catalog.Count, error) {
		return e.TopCountries(ctx, sel, s.cfg.TopN)
	})
}

// YearCounts returns chart C's data.
func (s *Service) YearCounts(ctx context.Context, sel catalog.Selection) ([]catalog.YearCount, error) {
	return run(ctx, s, "years", func(e Engine) ([]catalog.YearCount, error) {
		return e.YearCounts(ctx, sel)
	})
}

// TopGenres returns chart D's data over the whole catalog.
func (s *Service) TopGenres(ctx context.Context) ([]catalog.Count, error) {
	return run(ctx, s, "genres", func(e Engine) ([]catalog.Count, error) {
		return e.TopGenres(ctx, s.cfg.TopN)
	})
}

// TypeTrend returns chart E's data over the whole catalog.
func (s *Service) TypeTrend(ctx context.Context) (catalog.Pivot, error) {
	return run(ctx, s, "trend", func(e Engine) (catalog.Pivot, error) {
		return e.TypeTrend(ctx)
	})
}

func run[T any](ctx context.Context, s *Service, query string, fn func(Engine) (T, error)) (T, error) {
	var zero T
	e, err := s.Engine(ctx)
	if err != nil {
		return zero, err
	}
	start := time.Now()
	out, err := fn(e)
	metrics.RecordEngineQuery(e.Name(), query, time.Since(start), err)
	if err != nil {
		if !catalog.IsMissingColumn(err) && !errors.Is(err, context.Canceled) {
			logging.Ctx(ctx).Error().Err(err).Str("engine", e.Name()).Str("query", query).Msg("Aggregate query failed")
		}
		return zero, err
	}
	return out, nil
}
