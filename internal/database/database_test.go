// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
)

// testDBSemaphore serializes DuckDB use across tests. It is held for the
// whole test, not just while opening, because concurrent CGO queries from
// parallel tests can hang under CI pressure.
var testDBSemaphore = make(chan struct{}, 1)

var testDBMutex sync.Mutex

// setupTestDB opens an in-memory database, failing fast if DuckDB hangs.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   1,
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := New(cfg)
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() { _ = res.db.Close() })
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

const scenarioCSV = `show_id,type,title,country,release_year,listed_in
s1,Movie,First,US,2020,"Drama, Comedy"
s2,TV Show,Second,US,2019,Drama
s3,Movie,Third,IN,2020,Comedy
`

func mustCatalog(t *testing.T, data string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Read("test.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return c
}

func TestNew_FileBacked(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	path := filepath.Join(t.TempDir(), "nested", "marquee.duckdb")
	db, err := New(&config.DatabaseConfig{Path: path, Threads: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn() = nil")
	}
}

func TestDB_CloseNil(t *testing.T) {
	t.Parallel()

	db := &DB{}
	if err := db.Close(); err != nil {
		t.Errorf("Close on empty DB = %v", err)
	}
	if err := db.Ping(context.Background()); err == nil {
		t.Error("Ping on empty DB should fail")
	}
}

func TestEnsureContext(t *testing.T) {
	t.Parallel()

	db := &DB{}

	ctx, cancel := db.ensureContext(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected a default deadline")
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()
	ctx2, cancel2 := db.ensureContext(parent)
	defer cancel2()
	if ctx2 != parent {
		t.Error("context with a deadline should be returned unchanged")
	}
}

func TestImportCatalog(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	c := mustCatalog(t, scenarioCSV+"s4,Movie,Fourth,,2018,\n")
	if err := db.ImportCatalog(ctx, c); err != nil {
		t.Fatalf("ImportCatalog: %v", err)
	}

	var rows, nullCountries, nullGenres int
	err := db.Conn().QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE country IS NULL), COUNT(*) FILTER (WHERE listed_in IS NULL) FROM titles").
		Scan(&rows, &nullCountries, &nullGenres)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if rows != 4 || nullCountries != 1 || nullGenres != 1 {
		t.Errorf("rows=%d nullCountries=%d nullGenres=%d, want 4/1/1", rows, nullCountries, nullGenres)
	}

	// Re-import replaces rather than appends.
	if err := db.ImportCatalog(ctx, mustCatalog(t, scenarioCSV)); err != nil {
		t.Fatalf("second ImportCatalog: %v", err)
	}
	if err := db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM titles").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 3 {
		t.Errorf("rows after re-import = %d, want 3", rows)
	}
}
