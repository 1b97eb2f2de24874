// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/chart"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/validation"
)

// Chart renders one dashboard chart as SVG or PNG.
//
//	GET /charts/{chart}.{format}?filters=1&type=Movie&country=India&year_min=2000&year_max=2020
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	req := validation.ChartRequest{
		Chart:  chi.URLParam(r, "chart"),
		Format: chi.URLParam(r, "format"),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}
	kind, _ := chart.ParseKind(req.Chart)
	format, _ := chart.ParseFormat(req.Format)

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

	data, _, err := h.aggregate(ctx, kind, sel)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	p, err := h.buildPlot(kind, data)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("chart", string(kind)).Msg("Failed to build chart")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "Failed to build chart")
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Encode(&buf, kind, format, p); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("chart", string(kind)).Str("format", string(format)).Msg("Failed to render chart")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Failed to write chart")
	}
}
