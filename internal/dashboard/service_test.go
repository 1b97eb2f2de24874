// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dashboard

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
)

const scenarioCSV = `show_id,type,title,country,release_year,listed_in
s1,Movie,First,US,2020,"Drama, Comedy"
s2,TV Show,Second,US,2019,Drama
s3,Movie,Third,IN,2020,Comedy
`

func newTestService(t *testing.T, data string, factory EngineFactory) *Service {
	t.Helper()
	loader := catalog.NewLoaderWithFunc(func(path string) (*catalog.Catalog, error) {
		return catalog.Read(path, strings.NewReader(data))
	})
	return NewService(Config{CatalogPath: "titles.csv"}, loader, factory)
}

func intPtr(v int) *int { return &v }

func TestReportScenario(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, scenarioCSV, nil)
	r, err := svc.Report(context.Background(), Query{
		Explicit:  true,
		Types:     []string{"Movie"},
		Countries: []string{"US", "IN"},
		YearMin:   intPtr(2019),
		YearMax:   intPtr(2020),
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if r.Overview.Rows != 3 || len(r.Overview.Preview) != 3 {
		t.Errorf("overview = %d rows, %d preview rows", r.Overview.Rows, len(r.Overview.Preview))
	}
	if r.Filtered.Err != nil || r.Filtered.Data.Count != 2 {
		t.Errorf("filtered = %+v", r.Filtered)
	}
	if !slices.Equal(r.Types.Data, []catalog.Count{{Label: "Movie", Value: 2}}) {
		t.Errorf("types = %v", r.Types.Data)
	}
	if !slices.Equal(r.Genres.Data, []catalog.Count{{Label: "Drama", Value: 2}, {Label: "Comedy", Value: 2}}) {
		t.Errorf("genres = %v", r.Genres.Data)
	}
	if !slices.Equal(r.Trend.Data.Years, []int{2019, 2020}) {
		t.Errorf("trend years = %v", r.Trend.Data.Years)
	}
}

func TestReportYearRangeExcludesTVShow(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, scenarioCSV, nil)
	r, err := svc.Report(context.Background(), Query{
		Explicit:  true,
		Types:     []string{"Movie", "TV Show"},
		Countries: []string{"US", "IN"},
		YearMin:   intPtr(2020),
		YearMax:   intPtr(2020),
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range r.Types.Data {
		if c.Label == "TV Show" {
			t.Errorf("TV Show should be excluded, types = %v", r.Types.Data)
		}
	}
	if r.Filtered.Data.Count != 2 {
		t.Errorf("filtered count = %d, want 2", r.Filtered.Data.Count)
	}
}

func TestReportEmptyCountrySelection(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, scenarioCSV, nil)
	r, err := svc.Report(context.Background(), Query{Explicit: true, Types: []string{"Movie"}})
	if err != nil {
		t.Fatal(err)
	}

	if r.Filtered.Err != nil || r.Filtered.Data.Count != 0 {
		t.Errorf("filtered = %+v, want 0 rows and no error", r.Filtered)
	}
	for name, err := range map[string]error{"types": r.Types.Err, "countries": r.Countries.Err, "years": r.Years.Err} {
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
	}
	if len(r.Types.Data) != 0 || len(r.Countries.Data) != 0 || len(r.Years.Data) != 0 {
		t.Error("dependent aggregates should be empty")
	}
	if len(r.Genres.Data) != 2 {
		t.Errorf("genres ignore the selection, got %v", r.Genres.Data)
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, scenarioCSV, nil)
	sel, err := svc.Resolve(context.Background(), Query{})
	if err != nil {
		t.Fatal(err)
	}
	want := catalog.Selection{
		Types:     []string{"Movie", "TV Show"},
		Countries: []string{"US", "IN"},
		YearMin:   2019,
		YearMax:   2020,
	}
	if !slices.Equal(sel.Types, want.Types) || !slices.Equal(sel.Countries, want.Countries) ||
		sel.YearMin != want.YearMin || sel.YearMax != want.YearMax {
		t.Errorf("Resolve = %+v, want %+v", sel, want)
	}

	partial, err := svc.Resolve(context.Background(), Query{Countries: []string{"IN"}, YearMin: intPtr(2020)})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(partial.Types, want.Types) || !slices.Equal(partial.Countries, []string{"IN"}) || partial.YearMin != 2020 {
		t.Errorf("partial Resolve = %+v", partial)
	}

	explicit, err := svc.Resolve(context.Background(), Query{Explicit: true})
	if err != nil {
		t.Fatal(err)
	}
	if explicit.Types == nil || len(explicit.Types) != 0 || len(explicit.Countries) != 0 {
		t.Errorf("explicit empty query should select nothing, got %+v", explicit)
	}
}

func TestReportLoadFailure(t *testing.T) {
	t.Parallel()

	loader := catalog.NewLoaderWithFunc(func(string) (*catalog.Catalog, error) {
		return nil, catalog.ErrFileMissing
	})
	svc := NewService(Config{CatalogPath: "missing.csv"}, loader, nil)

	if _, err := svc.Report(context.Background(), Query{}); !errors.Is(err, catalog.ErrFileMissing) {
		t.Fatalf("expected ErrFileMissing, got %v", err)
	}
	if svc.Ready() {
		t.Error("service must not be ready after a failed load")
	}
}

func TestReportMissingColumnIsolated(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "type,country,release_year\nMovie,US,2020\n", nil)
	r, err := svc.Report(context.Background(), Query{})
	if err != nil {
		t.Fatal(err)
	}
	if !catalog.IsMissingColumn(r.Genres.Err) {
		t.Errorf("genres should fail with a missing column, got %v", r.Genres.Err)
	}
	if r.Types.Err != nil || r.Trend.Err != nil || r.Filtered.Err != nil {
		t.Errorf("other sections should succeed: types=%v trend=%v filtered=%v", r.Types.Err, r.Trend.Err, r.Filtered.Err)
	}
}

func TestReportMissingCountryColumn(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "type,release_year,listed_in\nMovie,2020,Dramas\n", nil)
	r, err := svc.Report(context.Background(), Query{})
	if err != nil {
		t.Fatal(err)
	}
	if !catalog.IsMissingColumn(r.Options.Err) || !catalog.IsMissingColumn(r.Filtered.Err) || !catalog.IsMissingColumn(r.Types.Err) {
		t.Errorf("selection dependent sections should report the missing column")
	}
	if r.Genres.Err != nil || r.Trend.Err != nil {
		t.Errorf("whole catalog charts should still render: genres=%v trend=%v", r.Genres.Err, r.Trend.Err)
	}
}

func TestEngineBuiltOnce(t *testing.T) {
	t.Parallel()

	builds := 0
	svc := newTestService(t, scenarioCSV, func(ctx context.Context, c *catalog.Catalog) (Engine, error) {
		builds++
		return MemoryEngineFactory(ctx, c)
	})

	ctx := context.Background()
	if err := svc.Warm(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Report(ctx, Query{}); err != nil {
		t.Fatal(err)
	}
	if builds != 1 {
		t.Errorf("engine built %d times, want 1", builds)
	}
	if !svc.Ready() {
		t.Error("service should be ready after warm up")
	}
}

func TestEngineFactoryFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("duckdb unavailable")
	svc := newTestService(t, scenarioCSV, func(context.Context, *catalog.Catalog) (Engine, error) {
		return nil, boom
	})

	r, err := svc.Report(context.Background(), Query{})
	if err != nil {
		t.Fatalf("engine failures are per section, got %v", err)
	}
	if !errors.Is(r.Types.Err, boom) || !errors.Is(r.Genres.Err, boom) {
		t.Errorf("sections should carry the engine error: types=%v genres=%v", r.Types.Err, r.Genres.Err)
	}
	if r.Overview.Rows != 3 {
		t.Errorf("overview still renders, rows = %d", r.Overview.Rows)
	}
}
