// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/dashboard"
	"github.com/tomtom215/marquee/internal/validation"
)

// Query parameter names shared by the page form, chart URLs and the API.
const (
	paramType    = "type"
	paramCountry = "country"
	paramYearMin = "year_min"
	paramYearMax = "year_max"
	paramFilters = "filters"

	// paramTypeMissing selects rows whose type cell is missing. An empty
	// type value cannot be sent as "type=" because forms send that for
	// blank inputs too.
	paramTypeMissing = "type_missing"
)

// parseSelection reads the sidebar selection from the query string. With
// filters=1 present, missing type or country lists mean "nothing selected";
// without it they fall back to the defaults.
func parseSelection(r *http.Request) (dashboard.Query, *validation.RequestValidationError) {
	values := r.URL.Query()

	q := dashboard.Query{
		Explicit:  values.Get(paramFilters) == "1",
		Types:     nonBlank(values[paramType]),
		Countries: nonBlank(values[paramCountry]),
	}

	if values.Get(paramTypeMissing) == "1" {
		q.Types = append(q.Types, "")
	}

	var err *validation.RequestValidationError
	if q.YearMin, err = parseYear(values, paramYearMin); err != nil {
		return q, err
	}
	if q.YearMax, err = parseYear(values, paramYearMax); err != nil {
		return q, err
	}

	req := validation.SelectionRequest{
		Types:     q.Types,
		Countries: q.Countries,
		YearMin:   q.YearMin,
		YearMax:   q.YearMax,
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return q, err
	}
	return q, nil
}

// nonBlank drops empty values, which HTML multi-selects can send. Other
// values are kept byte for byte since catalog cells may carry edge spaces.
// It returns nil when the parameter was absent.
func nonBlank(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseYear(values url.Values, name string) (*int, *validation.RequestValidationError) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validation.NewFieldError(name, "number", raw, fmt.Sprintf("%s must be a whole number", name))
	}
	return &year, nil
}

// selectionQuery encodes a resolved selection so chart image URLs
// reproduce exactly what the page shows.
func selectionQuery(types, countries []string, yearMin, yearMax int) string {
	values := url.Values{}
	values.Set(paramFilters, "1")
	for _, t := range types {
		if t == "" {
			values.Set(paramTypeMissing, "1")
			continue
		}
		values.Add(paramType, t)
	}
	for _, c := range countries {
		values.Add(paramCountry, c)
	}
	values.Set(paramYearMin, strconv.Itoa(yearMin))
	values.Set(paramYearMax, strconv.Itoa(yearMax))
	return values.Encode()
}
