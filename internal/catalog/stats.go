// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// YearStats describes the release_year column of the whole catalog.
type YearStats struct {
	Count  int     `json:"count"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"` // sample standard deviation, 0 for fewer than two rows
}

// YearStats summarizes release years for the overview.
func (c *Catalog) YearStats() (YearStats, error) {
	if err := c.Require(ColumnReleaseYear); err != nil {
		return YearStats{}, err
	}
	if c.Len() == 0 {
		return YearStats{}, nil
	}

	years := make([]float64, c.Len())
	for i, t := range c.Titles {
		years[i] = float64(t.ReleaseYear)
	}

	s := YearStats{
		Count: len(years),
		Min:   int(floats.Min(years)),
		Max:   int(floats.Max(years)),
		Mean:  stat.Mean(years, nil),
	}
	if len(years) > 1 {
		s.StdDev = stat.StdDev(years, nil)
	}

	// stat.Quantile has no estimator that averages the two middle values
	// of an even-length sample, so the median is taken by hand.
	slices.Sort(years)
	mid := len(years) / 2
	if len(years)%2 == 1 {
		s.Median = years[mid]
	} else {
		s.Median = (years[mid-1] + years[mid]) / 2
	}
	return s, nil
}
