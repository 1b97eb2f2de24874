// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import "slices"

// Options are the values offered by the sidebar controls.
type Options struct {
	Types     []string `json:"types"`     // distinct, first-appearance order
	Countries []string `json:"countries"` // distinct non-missing, first-appearance order
	YearMin   int      `json:"year_min"`
	YearMax   int      `json:"year_max"`
}

// Options derives the control values from the catalog.
func (c *Catalog) Options() (Options, error) {
	if err := c.Require(ColumnType, ColumnCountry, ColumnReleaseYear); err != nil {
		return Options{}, err
	}

	var opts Options
	seenType := make(map[string]struct{})
	seenCountry := make(map[string]struct{})
	for i, t := range c.Titles {
		if _, ok := seenType[t.Type]; !ok {
			seenType[t.Type] = struct{}{}
			opts.Types = append(opts.Types, t.Type)
		}
		if t.HasCountry {
			if _, ok := seenCountry[t.Country]; !ok {
				seenCountry[t.Country] = struct{}{}
				opts.Countries = append(opts.Countries, t.Country)
			}
		}
		if i == 0 || t.ReleaseYear < opts.YearMin {
			opts.YearMin = t.ReleaseYear
		}
		if i == 0 || t.ReleaseYear > opts.YearMax {
			opts.YearMax = t.ReleaseYear
		}
	}
	return opts, nil
}

// DefaultSelection selects every type, the first n countries in row order,
// and the whole year range.
func (o Options) DefaultSelection(n int) Selection {
	countries := o.Countries
	if n < len(countries) {
		countries = countries[:n]
	}
	return Selection{
		Types:     slices.Clone(o.Types),
		Countries: slices.Clone(countries),
		YearMin:   o.YearMin,
		YearMax:   o.YearMax,
	}
}

// Selection is the user's current sidebar state. An empty Types or
// Countries list selects nothing; it is not a wildcard.
type Selection struct {
	Types     []string `json:"types"`
	Countries []string `json:"countries"`
	YearMin   int      `json:"year_min"`
	YearMax   int      `json:"year_max"`
}

// Empty reports whether no row can match.
func (s Selection) Empty() bool {
	return len(s.Types) == 0 || len(s.Countries) == 0 || s.YearMin > s.YearMax
}

// Matches is the filter predicate. Rows without a country never match.
func (s Selection) Matches(t Title) bool {
	return t.HasCountry &&
		t.ReleaseYear >= s.YearMin &&
		t.ReleaseYear <= s.YearMax &&
		slices.Contains(s.Types, t.Type) &&
		slices.Contains(s.Countries, t.Country)
}

// View is a filtered, non-owning window onto a Catalog.
type View struct {
	cat  *Catalog
	rows []int
}

// Filter returns the rows matching sel, in catalog order.
func (c *Catalog) Filter(sel Selection) (*View, error) {
	if err := c.Require(ColumnType, ColumnCountry, ColumnReleaseYear); err != nil {
		return nil, err
	}
	v := &View{cat: c}
	if sel.Empty() {
		return v, nil
	}
	for i, t := range c.Titles {
		if sel.Matches(t) {
			v.rows = append(v.rows, i)
		}
	}
	return v, nil
}

// Filter narrows the view further.
func (v *View) Filter(sel Selection) *View {
	out := &View{cat: v.cat}
	if sel.Empty() {
		return out
	}
	for _, i := range v.rows {
		if sel.Matches(v.cat.Titles[i]) {
			out.rows = append(out.rows, i)
		}
	}
	return out
}

// Catalog returns the catalog the view reads from.
func (v *View) Catalog() *Catalog { return v.cat }

// Len returns the number of rows in the view.
func (v *View) Len() int { return len(v.rows) }

// Rows returns a copy of the catalog row indices in the view.
func (v *View) Rows() []int { return slices.Clone(v.rows) }

// Title returns the i-th row of the view.
func (v *View) Title(i int) Title { return v.cat.Titles[v.rows[i]] }

// Head returns up to n leading raw rows of the view.
func (v *View) Head(n int) [][]string {
	n = min(max(n, 0), len(v.rows))
	out := make([][]string, n)
	for i := range n {
		out[i] = v.cat.Records[v.rows[i]]
	}
	return out
}

// Preview is the filtered-section payload: how many rows matched and the
// first few of them.
type Preview struct {
	Count   int        `json:"count"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Preview summarizes the view with up to n leading rows.
func (v *View) Preview(n int) Preview {
	return Preview{Count: v.Len(), Columns: v.cat.Columns, Rows: v.Head(n)}
}
