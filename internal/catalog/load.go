// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingValues are the cell spellings treated as absent, matching the usual
// dataframe NA markers.
var missingValues = map[string]struct{}{
	"":      {},
	"NaN":   {},
	"nan":   {},
	"NA":    {},
	"N/A":   {},
	"null":  {},
	"<nil>": {},
}

func isMissing(cell string) bool {
	_, ok := missingValues[strings.TrimSpace(cell)]
	return ok
}

// parseYear accepts integers and integral floats ("2019.0"), which is how
// a year column round-trips through float-typed tooling.
func parseYear(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if year, err := strconv.Atoi(cell); err == nil {
		return year, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("release year %q is not an integer", cell)
	}
	return int(f), nil
}

// Load reads the catalog CSV at path. Every column is read as text; only
// release_year is converted.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, path)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(path, f)
}

// Read parses a catalog from r. path is only used in error messages.
func Read(path string, r io.Reader) (*Catalog, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, toParseError(path, df.Err)
	}

	rows := df.Records()
	if len(rows) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("missing header row")}
	}
	return New(path, rows[0], rows[1:])
}

func toParseError(path string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Path: path, Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Path: path, Err: err}
}
