// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"net/http"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/chart"
	"github.com/tomtom215/marquee/internal/dashboard"
	"github.com/tomtom215/marquee/internal/logging"
)

// chartView is one chart slot on the page. Err replaces the image when the
// chart's data could not be computed.
type chartView struct {
	Kind  string
	Title string
	Src   string
	Note  string
	Err   string
}

type pageData struct {
	LoadError       string
	ValidationError string

	Report    *dashboard.Report
	Options   catalog.Options
	OptionErr string
	Stats     *catalog.YearStats
	Filtered  *catalog.Preview
	FilterErr string
	Charts    []chartView
}

// Dashboard renders the full dashboard page for the selection in the
// query string.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := pageData{}
	status := http.StatusOK

	q, verr := parseSelection(r)
	if verr != nil {
		data.ValidationError = verr.Error()
		status = http.StatusBadRequest
		q = dashboard.Query{}
	}

	report, err := h.svc.Report(ctx, q)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		code, _ := statusFor(err)
		if code == http.StatusInternalServerError {
			logging.Ctx(ctx).Error().Err(err).Msg("Failed to build dashboard")
		}
		data.LoadError = err.Error()
		h.renderPage(w, r, code, data)
		return
	}

	data.Report = report
	if report.Options.Err != nil {
		data.OptionErr = report.Options.Err.Error()
	} else {
		data.Options = report.Options.Data
	}
	if report.Overview.Stats.Err == nil {
		data.Stats = &report.Overview.Stats.Data
	}
	if report.Filtered.Err != nil {
		data.FilterErr = report.Filtered.Err.Error()
	} else {
		data.Filtered = &report.Filtered.Data
	}

	sel := report.Selection
	query := selectionQuery(sel.Types, sel.Countries, sel.YearMin, sel.YearMax)
	errs := map[chart.Kind]error{
		chart.KindTypes:     report.Types.Err,
		chart.KindCountries: report.Countries.Err,
		chart.KindYears:     report.Years.Err,
		chart.KindGenres:    report.Genres.Err,
		chart.KindTrend:     report.Trend.Err,
	}
	for _, kind := range chart.Kinds {
		cv := chartView{Kind: string(kind), Title: h.renderer.Title(kind)}
		if err := errs[kind]; err != nil {
			cv.Err = err.Error()
		} else {
			cv.Src = "/charts/" + string(kind) + ".svg"
			if usesSelection(kind) {
				cv.Src += "?" + query
			}
		}
		if !usesSelection(kind) {
			cv.Note = "Whole catalog; sidebar filters do not apply."
		}
		data.Charts = append(data.Charts, cv)
	}

	h.renderPage(w, r, status, data)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to execute dashboard template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write dashboard page")
	}
}
