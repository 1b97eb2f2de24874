// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package query builds parameterized SQL WHERE clauses for the database package.
package query

import (
	"fmt"
	"strings"
)

// WhereBuilder accumulates AND-ed conditions and their bind arguments.
//
//	wb := query.NewWhereBuilder()
//	wb.AddIn("type", []string{"Movie"}).AddRange("release_year", 2019, 2020)
//	where, args := wb.Build()
//	// type IN (?) AND release_year BETWEEN ? AND ?
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates an empty WhereBuilder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddIn restricts column to values. An empty list matches no rows, so an
// empty selection filters everything out instead of being ignored.
func (wb *WhereBuilder) AddIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		wb.clauses = append(wb.clauses, "FALSE")
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	return wb
}

// AddRange restricts column to the closed interval [lo, hi].
func (wb *WhereBuilder) AddRange(column string, lo, hi int) *WhereBuilder {
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s BETWEEN ? AND ?", column))
	wb.args = append(wb.args, lo, hi)
	return wb
}

// AddNotNull requires column to hold a value.
func (wb *WhereBuilder) AddNotNull(column string) *WhereBuilder {
	wb.clauses = append(wb.clauses, column+" IS NOT NULL")
	return wb
}

// Build returns the joined conditions, or "1=1" when there are none.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", wb.args
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// Len returns the number of conditions added so far.
func (wb *WhereBuilder) Len() int {
	return len(wb.clauses)
}
