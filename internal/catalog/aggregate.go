// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"cmp"
	"slices"
)

// Count is one bar of a categorical chart.
type Count struct {
	Label string `json:"label"`
	Value int    `json:"count"`
}

// YearCount is one point of the titles-per-year series.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Pivot is a release_year by type count matrix. Cells[i][j] counts the
// titles of Types[j] released in Years[i]; absent combinations are zero.
type Pivot struct {
	Years []int    `json:"years"`
	Types []string `json:"types"`
	Cells [][]int  `json:"cells"`
}

// Series returns the per-year counts of one type, or nil if unknown.
func (p Pivot) Series(typ string) []int {
	j := slices.Index(p.Types, typ)
	if j < 0 {
		return nil
	}
	out := make([]int, len(p.Years))
	for i := range p.Years {
		out[i] = p.Cells[i][j]
	}
	return out
}

// tally counts labels while remembering first appearance.
type tally struct {
	order []string
	count map[string]int
}

func newTally() *tally { return &tally{count: make(map[string]int)} }

func (t *tally) add(label string) {
	if _, ok := t.count[label]; !ok {
		t.order = append(t.order, label)
	}
	t.count[label]++
}

// ranked returns counts by descending value. Ties keep first-appearance
// order. n <= 0 means no limit.
func (t *tally) ranked(n int) []Count {
	out := make([]Count, len(t.order))
	for i, label := range t.order {
		out[i] = Count{Label: label, Value: t.count[label]}
	}
	slices.SortStableFunc(out, func(a, b Count) int { return cmp.Compare(b.Value, a.Value) })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TypeCounts counts the view's rows per type (chart A).
func TypeCounts(v *View) []Count {
	t := newTally()
	for i := range v.Len() {
		t.add(v.Title(i).Type)
	}
	return t.ranked(0)
}

// TopCountries counts the view's rows per country and keeps the n largest (chart B).
func TopCountries(v *View, n int) []Count {
	t := newTally()
	for i := range v.Len() {
		if title := v.Title(i); title.HasCountry {
			t.add(title.Country)
		}
	}
	return t.ranked(n)
}

// YearCounts counts the view's rows per release year, ascending (chart C).
func YearCounts(v *View) []YearCount {
	counts := make(map[int]int)
	for i := range v.Len() {
		counts[v.Title(i).ReleaseYear]++
	}
	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, Count: n})
	}
	slices.SortFunc(out, func(a, b YearCount) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// TopGenres splits every listed_in cell of the whole catalog and keeps the
// n most frequent genres (chart D). The sidebar selection does not apply.
func TopGenres(c *Catalog, n int) ([]Count, error) {
	if err := c.Require(ColumnListedIn); err != nil {
		return nil, err
	}
	t := newTally()
	for _, title := range c.Titles {
		for _, genre := range title.Genres() {
			t.add(genre)
		}
	}
	return t.ranked(n), nil
}

// TypeTrend pivots the whole catalog by release year and type (chart E).
// Years ascend, types are sorted, and every cell is populated.
func TypeTrend(c *Catalog) (Pivot, error) {
	if err := c.Require(ColumnReleaseYear, ColumnType); err != nil {
		return Pivot{}, err
	}

	type key struct {
		year int
		typ  string
	}
	counts := make(map[key]int)
	years := make(map[int]struct{})
	types := make(map[string]struct{})
	for _, t := range c.Titles {
		counts[key{t.ReleaseYear, t.Type}]++
		years[t.ReleaseYear] = struct{}{}
		types[t.Type] = struct{}{}
	}

	p := Pivot{
		Years: sortedKeys(years),
		Types: sortedKeys(types),
	}
	p.Cells = make([][]int, len(p.Years))
	for i, year := range p.Years {
		row := make([]int, len(p.Types))
		for j, typ := range p.Types {
			row[j] = counts[key{year, typ}]
		}
		p.Cells[i] = row
	}
	return p, nil
}

func sortedKeys[K cmp.Ordered](m map[K]struct{}) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
