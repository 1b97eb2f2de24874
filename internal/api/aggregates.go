// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"fmt"

	"gonum.org/v1/plot"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/chart"
	"github.com/tomtom215/marquee/internal/dashboard"
)

// usesSelection reports whether kind depends on the sidebar. Genres and
// trend always cover the whole catalog.
func usesSelection(kind chart.Kind) bool {
	return kind != chart.KindGenres && kind != chart.KindTrend
}

// aggregate returns the data behind one chart. Successful results are
// cached per selection and concurrent identical requests share one query.
// The shared query outlives the request that started it, so a client
// leaving early does not fail the others waiting on it. The boolean
// reports a cache hit.
func (h *Handler) aggregate(ctx context.Context, kind chart.Kind, sel catalog.Selection) (interface{}, bool, error) {
	var params interface{}
	if usesSelection(kind) {
		params = sel
	}
	key := cache.GenerateKey(string(kind), params)

	if h.cache != nil {
		if v, ok := h.cache.Get(key); ok {
			return v, true, nil
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := h.flight.DoChan(key, func() (interface{}, error) {
		data, err := h.compute(shared, kind, sel)
		if err != nil {
			return nil, err
		}
		if h.cache != nil {
			h.cache.Set(key, data)
		}
		return data, nil
	})
	select {
	case res := <-ch:
		return res.Val, false, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (h *Handler) compute(ctx context.Context, kind chart.Kind, sel catalog.Selection) (interface{}, error) {
	switch kind {
	case chart.KindTypes:
		return h.svc.TypeCounts(ctx, sel)
	case chart.KindCountries:
		return h.svc.TopCountries(ctx, sel)
	case chart.KindYears:
		return h.svc.YearCounts(ctx, sel)
	case chart.KindGenres:
		return h.svc.TopGenres(ctx)
	case chart.KindTrend:
		return h.svc.TypeTrend(ctx)
	}
	return nil, fmt.Errorf("unknown aggregate %q", kind)
}

// buildPlot builds the chart for data previously returned by aggregate.
func (h *Handler) buildPlot(kind chart.Kind, data interface{}) (*plot.Plot, error) {
	switch d := data.(type) {
	case []catalog.Count:
		switch kind {
		case chart.KindTypes:
			return h.renderer.Types(d)
		case chart.KindCountries:
			return h.renderer.Countries(d)
		case chart.KindGenres:
			return h.renderer.Genres(d)
		}
	case []catalog.YearCount:
		return h.renderer.Years(d)
	case catalog.Pivot:
		return h.renderer.Trend(d)
	}
	return nil, fmt.Errorf("no %s chart for %T", kind, data)
}

// selectionFor resolves the request's selection when kind needs one.
func (h *Handler) selectionFor(ctx context.Context, kind chart.Kind, q dashboard.Query) (catalog.Selection, error) {
	if !usesSelection(kind) {
		return catalog.Selection{}, nil
	}
	return h.svc.Resolve(ctx, q)
}
