// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"github.com/go-playground/validator/v10"
)

// Year bounds accepted from clients.
const (
	MinYear = 0
	MaxYear = 9999
)

// SelectionRequest is the sidebar state as sent by a client. Nil years
// mean "use the dataset bound". An empty type selects titles whose type
// is missing.
type SelectionRequest struct {
	Types     []string `json:"type" validate:"max=1000,dive,max=256"`
	Countries []string `json:"country" validate:"max=1000,dive,min=1,max=256"`
	YearMin   *int     `json:"year_min" validate:"omitempty,gte=0,lte=9999"`
	YearMax   *int     `json:"year_max" validate:"omitempty,gte=0,lte=9999"`
}

// validateYearRange rejects year_max before year_min when both are given.
func validateYearRange(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(SelectionRequest)
	if !ok || req.YearMin == nil || req.YearMax == nil {
		return
	}
	if *req.YearMax < *req.YearMin {
		sl.ReportError(req.YearMax, "year_max", "YearMax", "gtefield", "year_min")
	}
}

// ChartRequest names a chart image.
type ChartRequest struct {
	Chart  string `json:"chart" validate:"required,oneof=types countries years genres trend"`
	Format string `json:"format" validate:"required,oneof=svg png"`
}

// AggregateRequest names a JSON aggregate.
type AggregateRequest struct {
	Aggregate string `json:"aggregate" validate:"required,oneof=types countries years genres trend"`
}
