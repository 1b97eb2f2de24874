// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func moviesView(t *testing.T, c *Catalog) *View {
	t.Helper()
	v, err := c.Filter(Selection{Types: []string{"Movie"}, Countries: []string{"US", "IN"}, YearMin: 2019, YearMax: 2020})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestTypeCountsScenario(t *testing.T) {
	t.Parallel()

	c := mustRead(t, scenarioCSV)
	got := TypeCounts(moviesView(t, c))
	want := []Count{{Label: "Movie", Value: 2}}
	if !slices.Equal(got, want) {
		t.Errorf("TypeCounts = %v, want %v", got, want)
	}
}

func TestTopGenresIgnoresSelection(t *testing.T) {
	t.Parallel()

	c := mustRead(t, scenarioCSV)
	got, err := TopGenres(c, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []Count{{Label: "Drama", Value: 2}, {Label: "Comedy", Value: 2}}
	if !slices.Equal(got, want) {
		t.Errorf("TopGenres = %v, want %v", got, want)
	}
	if c.Titles[0].ListedIn != "Drama, Comedy" {
		t.Error("TopGenres must not modify the catalog")
	}
}

func TestTopCountriesOrderingAndLimit(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("type,country,release_year\n")
	// C appears first, but A has more rows; B and C tie and keep appearance order.
	for _, country := range []string{"C", "A", "B", "A", "A", "B", "C"} {
		b.WriteString("Movie," + country + ",2020\n")
	}
	for i := range 12 {
		fmt.Fprintf(&b, "Movie,X%02d,2020\n", i)
	}
	c := mustRead(t, b.String())

	v, err := c.Filter(Selection{Types: []string{"Movie"}, Countries: append([]string{"A", "B", "C"}, xCountries(12)...), YearMin: 2020, YearMax: 2020})
	if err != nil {
		t.Fatal(err)
	}

	got := TopCountries(v, 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	want := []Count{{"A", 3}, {"C", 2}, {"B", 2}, {"X00", 1}}
	if !slices.Equal(got[:4], want) {
		t.Errorf("head = %v, want %v", got[:4], want)
	}
	if got[9].Label != "X06" {
		t.Errorf("last = %v, want X06", got[9])
	}
}

func xCountries(n int) []string {
	out := make([]string, n)
	for i := range n {
		out[i] = fmt.Sprintf("X%02d", i)
	}
	return out
}

func TestYearCountsAscending(t *testing.T) {
	t.Parallel()

	c := mustRead(t, "type,country,release_year\nMovie,US,2021\nMovie,US,2019\nMovie,US,2021\nMovie,US,2020\n")
	v, err := c.Filter(Selection{Types: []string{"Movie"}, Countries: []string{"US"}, YearMin: 2000, YearMax: 2030})
	if err != nil {
		t.Fatal(err)
	}

	got := YearCounts(v)
	want := []YearCount{{2019, 1}, {2020, 1}, {2021, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("YearCounts = %v, want %v", got, want)
	}
}

func TestEmptyViewAggregates(t *testing.T) {
	t.Parallel()

	c := mustRead(t, scenarioCSV)
	v, err := c.Filter(Selection{Types: []string{"Movie"}, Countries: nil, YearMin: 2019, YearMax: 2020})
	if err != nil {
		t.Fatal(err)
	}

	if got := TypeCounts(v); len(got) != 0 {
		t.Errorf("TypeCounts = %v, want empty", got)
	}
	if got := TopCountries(v, 10); len(got) != 0 {
		t.Errorf("TopCountries = %v, want empty", got)
	}
	if got := YearCounts(v); len(got) != 0 {
		t.Errorf("YearCounts = %v, want empty", got)
	}
}

func TestTypeTrend(t *testing.T) {
	t.Parallel()

	c := mustRead(t, scenarioCSV)
	p, err := TypeTrend(c)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(p.Years, []int{2019, 2020}) {
		t.Errorf("Years = %v", p.Years)
	}
	if !slices.Equal(p.Types, []string{"Movie", "TV Show"}) {
		t.Errorf("Types = %v", p.Types)
	}
	if !slices.Equal(p.Series("Movie"), []int{0, 2}) {
		t.Errorf("Movie series = %v, want [0 2]", p.Series("Movie"))
	}
	if !slices.Equal(p.Series("TV Show"), []int{1, 0}) {
		t.Errorf("TV Show series = %v, want [1 0]", p.Series("TV Show"))
	}
	if p.Series("Short") != nil {
		t.Error("unknown type should have no series")
	}
}

func TestAggregatesMissingColumns(t *testing.T) {
	t.Parallel()

	c := mustRead(t, "type,country\nMovie,US\n")
	if _, err := TopGenres(c, 10); !IsMissingColumn(err) {
		t.Errorf("TopGenres: expected MissingColumnError, got %v", err)
	}
	if _, err := TypeTrend(c); !IsMissingColumn(err) {
		t.Errorf("TypeTrend: expected MissingColumnError, got %v", err)
	}
	if _, err := c.YearStats(); !IsMissingColumn(err) {
		t.Errorf("YearStats: expected MissingColumnError, got %v", err)
	}
}

func TestYearStats(t *testing.T) {
	t.Parallel()

	c := mustRead(t, "type,release_year\nMovie,2018\nMovie,2020\nMovie,2021\nMovie,2021\n")
	s, err := c.YearStats()
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 4 || s.Min != 2018 || s.Max != 2021 {
		t.Errorf("stats = %+v", s)
	}
	if s.Mean != 2020 {
		t.Errorf("Mean = %v, want 2020", s.Mean)
	}
	if s.Median != 2020.5 {
		t.Errorf("Median = %v, want 2020.5", s.Median)
	}
	if s.StdDev <= 1.4 || s.StdDev >= 1.42 {
		t.Errorf("StdDev = %v, want about 1.414", s.StdDev)
	}

	empty, err := New("empty.csv", []string{ColumnType, ColumnReleaseYear}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s, err := empty.YearStats(); err != nil || s.Count != 0 {
		t.Errorf("empty stats = %+v, %v", s, err)
	}
}
