// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog holds the in-memory model of a streaming catalog CSV and
// every read-only computation the dashboard runs over it: the sidebar
// options, the selection filter, and the five chart aggregates.
//
// A Catalog is immutable once Load returns it. Filtering produces a View of
// row indices and aggregates return fresh slices, so a Catalog can be shared
// between concurrent requests without locking.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Column names the dashboard reads. Other columns are carried for previews only.
const (
	ColumnType        = "type"
	ColumnCountry     = "country"
	ColumnReleaseYear = "release_year"
	ColumnListedIn    = "listed_in"
)

// GenreSeparator splits a listed_in cell into genre tokens.
const GenreSeparator = ", "

// ErrFileMissing is returned (wrapped) when the catalog file does not exist.
var ErrFileMissing = fmt.Errorf("catalog file missing: %w", fs.ErrNotExist)

// ParseError reports a malformed catalog file.
type ParseError struct {
	Path   string
	Line   int    // 1-based file line, 0 when unknown
	Column string // empty when the problem is not tied to a column
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingColumnError reports that a step needs a column the file lacks.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("catalog has no %q column", e.Column)
}

// IsMissingColumn reports whether err is (or wraps) a MissingColumnError.
func IsMissingColumn(err error) bool {
	var mc *MissingColumnError
	return errors.As(err, &mc)
}

// Title is one catalog row reduced to the fields the dashboard reads.
// Fields whose column is absent from the file stay at their zero value,
// and a missing type cell leaves Type empty.
type Title struct {
	Type        string
	Country     string
	HasCountry  bool
	ReleaseYear int
	ListedIn    string
	HasListedIn bool
}

// Genres splits ListedIn into its genre tokens. A missing cell has none.
func (t Title) Genres() []string {
	if !t.HasListedIn {
		return nil
	}
	return strings.Split(t.ListedIn, GenreSeparator)
}

// Catalog is a loaded catalog file.
type Catalog struct {
	Path    string
	Columns []string
	Records [][]string // raw cells in file column order, header excluded
	Titles  []Title

	index map[string]int
}

// New builds a Catalog from a header and its rows. Rows must be as wide as
// the header. It is the constructor Load uses once parsing is done and is
// handy for building catalogs in tests.
func New(path string, columns []string, records [][]string) (*Catalog, error) {
	c := &Catalog{
		Path:    path,
		Columns: columns,
		Records: records,
		Titles:  make([]Title, len(records)),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, dup := c.index[name]; !dup {
			c.index[name] = i
		}
	}

	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, &ParseError{Path: path, Line: i + 2, Err: fmt.Errorf("expected %d fields, got %d", len(columns), len(rec))}
		}
		t, err := c.titleFrom(rec)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = path
				pe.Line = i + 2
			}
			return nil, err
		}
		c.Titles[i] = t
	}
	return c, nil
}

func (c *Catalog) titleFrom(rec []string) (Title, error) {
	var t Title
	if i, ok := c.index[ColumnType]; ok && !isMissing(rec[i]) {
		t.Type = rec[i]
	}
	if i, ok := c.index[ColumnCountry]; ok && !isMissing(rec[i]) {
		t.Country = rec[i]
		t.HasCountry = true
	}
	if i, ok := c.index[ColumnListedIn]; ok && !isMissing(rec[i]) {
		t.ListedIn = rec[i]
		t.HasListedIn = true
	}
	if i, ok := c.index[ColumnReleaseYear]; ok {
		year, err := parseYear(rec[i])
		if err != nil {
			return t, &ParseError{Column: ColumnReleaseYear, Err: err}
		}
		t.ReleaseYear = year
	}
	return t, nil
}

// Len returns the number of rows.
func (c *Catalog) Len() int { return len(c.Titles) }

// Has reports whether the file carried the named column.
func (c *Catalog) Has(column string) bool {
	_, ok := c.index[column]
	return ok
}

// Require returns a *MissingColumnError for the first absent column.
func (c *Catalog) Require(columns ...string) error {
	for _, col := range columns {
		if !c.Has(col) {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

// Head returns up to n leading rows. The rows alias the catalog and must
// not be modified.
func (c *Catalog) Head(n int) [][]string {
	if n > len(c.Records) {
		n = len(c.Records)
	}
	if n < 0 {
		n = 0
	}
	return c.Records[:n:n]
}
