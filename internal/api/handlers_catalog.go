// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/chart"
	"github.com/tomtom215/marquee/internal/validation"
)

// CatalogSummary is the overview block as JSON.
type CatalogSummary struct {
	Path      string             `json:"path"`
	Rows      int                `json:"rows"`
	Columns   []string           `json:"columns"`
	Preview   [][]string         `json:"preview"`
	YearStats *catalog.YearStats `json:"year_stats,omitempty"`
}

// FilteredResponse is the filtered preview with the selection it was
// computed for.
type FilteredResponse struct {
	Selection catalog.Selection `json:"selection"`
	catalog.Preview
}

// AggregateResponse carries one chart's data.
type AggregateResponse struct {
	Aggregate string             `json:"aggregate"`
	Title     string             `json:"title"`
	Selection *catalog.Selection `json:"selection,omitempty"`
	Data      interface{}        `json:"data"`
}

// CacheStatsResponse reports aggregate cache activity.
type CacheStatsResponse struct {
	cache.Stats
	HitRate float64 `json:"hit_rate"`
	TTL     string  `json:"ttl"`
}

// CatalogSummary handles GET /api/v1/catalog/summary.
func (h *Handler) CatalogSummary(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, err := h.svc.Catalog(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	summary := CatalogSummary{
		Path:    c.Path,
		Rows:    c.Len(),
		Columns: c.Columns,
		Preview: c.Head(h.svc.Config().PreviewRows),
	}
	if stats, err := c.YearStats(); err == nil {
		summary.YearStats = &stats
	}
	rw.Success(summary)
}

// CatalogOptions handles GET /api/v1/catalog/options.
func (h *Handler) CatalogOptions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	opts, err := h.svc.Options(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(struct {
		catalog.Options
		Default catalog.Selection `json:"default"`
	}{opts, opts.DefaultSelection(h.svc.Config().DefaultCountries)})
}

// Filtered handles GET /api/v1/filtered.
func (h *Handler) Filtered(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	q, verr := parseSelection(r)
	if verr != nil {
		writeValidationError(rw, verr)
		return
	}
	sel, err := h.svc.Resolve(ctx, q)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	preview, err := h.svc.Filtered(ctx, sel)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(FilteredResponse{Selection: sel, Preview: preview})
}

// Aggregate handles GET /api/v1/aggregates/{name}.
func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	req := validation.AggregateRequest{Aggregate: chi.URLParam(r, "name")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}
	kind, _ := chart.ParseKind(req.Aggregate)

	q, verr := parseSelection(r)
	if verr != nil {
		writeValidationError(rw, verr)
		return
	}
	sel, err := h.selectionFor(ctx, kind, q)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	data, cached, err := h.aggregate(ctx, kind, sel)
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	resp := AggregateResponse{Aggregate: string(kind), Title: h.renderer.Title(kind), Data: data}
	if usesSelection(kind) {
		resp.Selection = &sel
	}
	meta := &APIMeta{Cached: cached}
	if e, err := h.svc.Engine(ctx); err == nil {
		meta.Engine = e.Name()
	}
	rw.SuccessWithMeta(resp, meta)
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.cache == nil {
		rw.NotFound("Aggregate cache is disabled")
		return
	}
	rw.Success(CacheStatsResponse{
		Stats:   h.cache.GetStats(),
		HitRate: h.cache.HitRate(),
		TTL:     h.cache.TTL().String(),
	})
}
