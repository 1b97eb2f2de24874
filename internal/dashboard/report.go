// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/catalog"
)

// Section is one independently computed part of the report. A failing
// section carries its error and leaves the others intact.
type Section[T any] struct {
	Data T
	Err  error
}

func section[T any](data T, err error) Section[T] {
	return Section[T]{Data: data, Err: err}
}

// Overview is the header block: row count, preview and year statistics.
type Overview struct {
	Rows    int
	Columns []string
	Preview [][]string
	Stats   Section[catalog.YearStats]
}

// Report is everything one dashboard render shows.
type Report struct {
	Overview  Overview
	Options   Section[catalog.Options]
	Selection catalog.Selection
	Filtered  Section[catalog.Preview]
	Types     Section[[]catalog.Count]
	Countries Section[[]catalog.Count]
	Years     Section[[]catalog.YearCount]
	Genres    Section[[]catalog.Count]
	Trend     Section[catalog.Pivot]
}

// Report builds the full dashboard for a query. The returned error is
// non-nil only when the catalog itself cannot be loaded; problems inside
// individual steps are reported on their Section.
func (s *Service) Report(ctx context.Context, q Query) (*Report, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Overview: Overview{
			Rows:    c.Len(),
			Columns: c.Columns,
			Preview: c.Head(s.cfg.PreviewRows),
			Stats:   section[catalog.YearStats](c.YearStats()),
		},
	}
	r.Options = section[catalog.Options](c.Options())

	sel, selErr := s.Resolve(ctx, q)
	r.Selection = sel

	g, gctx := errgroup.WithContext(ctx)
	if selErr != nil {
		r.Filtered.Err = selErr
		r.Types.Err = selErr
		r.Countries.Err = selErr
		r.Years.Err = selErr
	} else {
		g.Go(func() error { r.Filtered = section[catalog.Preview](s.Filtered(gctx, sel)); return nil })
		g.Go(func() error { r.Types = section[[]catalog.Count](s.TypeCounts(gctx, sel)); return nil })
		g.Go(func() error { r.Countries = section[[]catalog.Count](s.TopCountries(gctx, sel)); return nil })
		g.Go(func() error { r.Years = section[[]catalog.YearCount](s.YearCounts(gctx, sel)); return nil })
	}
	g.Go(func() error { r.Genres = section[[]catalog.Count](s.TopGenres(gctx)); return nil })
	g.Go(func() error { r.Trend = section[catalog.Pivot](s.TypeTrend(gctx)); return nil })
	_ = g.Wait()

	return r, ctx.Err()
}
