// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package chart

import (
	"fmt"

	"gonum.org/v1/plot"

	"github.com/tomtom215/marquee/internal/catalog"
)

// Types is chart A: titles per type.
func (r *Renderer) Types(counts []catalog.Count) (*plot.Plot, error) {
	return r.Bar(r.Title(KindTypes), "Type", "Count", counts)
}

// Countries is chart B: the countries with the most titles.
func (r *Renderer) Countries(counts []catalog.Count) (*plot.Plot, error) {
	return r.HorizontalBar(r.Title(KindCountries), "Number of Shows", "Country", counts)
}

// Years is chart C: titles per release year.
func (r *Renderer) Years(years []catalog.YearCount) (*plot.Plot, error) {
	return r.Line(r.Title(KindYears), "Release Year", "Number of Titles", years)
}

// Genres is chart D: the most frequent genres across the whole catalog.
func (r *Renderer) Genres(counts []catalog.Count) (*plot.Plot, error) {
	return r.HorizontalBar(r.Title(KindGenres), "Number of Titles", "Genre", counts)
}

// Trend is chart E: titles per year, one line per type.
func (r *Renderer) Trend(pivot catalog.Pivot) (*plot.Plot, error) {
	return r.MultiLine(r.Title(KindTrend), "Release Year", "Count", pivot)
}

// Title returns the heading used for kind.
func (r *Renderer) Title(kind Kind) string {
	switch kind {
	case KindTypes:
		return "Count of Movies vs TV Shows"
	case KindCountries:
		return fmt.Sprintf("Top %d Countries by Number of Shows", r.topN)
	case KindYears:
		return "Content Released Per Year"
	case KindGenres:
		return fmt.Sprintf("Top %d Genres", r.topN)
	case KindTrend:
		return "Content Trends Over Time"
	}
	return string(kind)
}
