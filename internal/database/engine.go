// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database/query"
)

// Engine answers dashboard queries from the titles table. Column checks
// run against the catalog so a file without, say, listed_in fails the same
// way it does in memory.
type Engine struct {
	db  *DB
	cat *catalog.Catalog
}

// NewEngine imports c into db and returns an engine over it.
func NewEngine(ctx context.Context, db *DB, c *catalog.Catalog) (*Engine, error) {
	if err := db.ImportCatalog(ctx, c); err != nil {
		return nil, err
	}
	return &Engine{db: db, cat: c}, nil
}

// Open creates a database from cfg and imports c into it.
func Open(ctx context.Context, cfg *config.DatabaseConfig, c *catalog.Catalog) (*Engine, error) {
	db, err := New(cfg)
	if err != nil {
		return nil, err
	}
	e, err := NewEngine(ctx, db, c)
	if err != nil {
		closeQuietly(db)
		return nil, err
	}
	return e, nil
}

// Name identifies the engine in logs and metrics.
func (e *Engine) Name() string { return "duckdb" }

// DB returns the engine's database.
func (e *Engine) DB() *DB { return e.db }

// Close closes the underlying database.
func (e *Engine) Close() error { return e.db.Close() }

// selectionWhere mirrors catalog.Selection.Matches.
func selectionWhere(sel catalog.Selection) *query.WhereBuilder {
	return query.NewWhereBuilder().
		AddIn("type", sel.Types).
		AddIn("country", sel.Countries).
		AddRange("release_year", sel.YearMin, sel.YearMax)
}

func (e *Engine) requireSelectionColumns() error {
	return e.cat.Require(catalog.ColumnType, catalog.ColumnCountry, catalog.ColumnReleaseYear)
}

// Filtered returns the number of matching rows and the first previewRows of them.
func (e *Engine) Filtered(ctx context.Context, sel catalog.Selection, previewRows int) (catalog.Preview, error) {
	if err := e.requireSelectionColumns(); err != nil {
		return catalog.Preview{}, err
	}
	ctx, cancel := e.db.ensureContext(ctx)
	defer cancel()

	where, args := selectionWhere(sel).Build()

	var count int
	if err := e.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM titles WHERE "+where, args...).Scan(&count); err != nil {
		return catalog.Preview{}, fmt.Errorf("failed to count filtered titles: %w", err)
	}

	ids, err := queryAndScan(ctx, e.db.conn,
		fmt.Sprintf("SELECT row_id FROM titles WHERE %s ORDER BY row_id LIMIT %d", where, max(previewRows, 0)),
		args,
		func(rows *sql.Rows) (int, error) {
			var id int
			err := rows.Scan(&id)
			return id, err
		})
	if err != nil {
		return catalog.Preview{}, fmt.Errorf("failed to select preview rows: %w", err)
	}

	preview := catalog.Preview{Count: count, Columns: e.cat.Columns, Rows: make([][]string, len(ids))}
	for i, id := range ids {
		preview.Rows[i] = e.cat.Records[id]
	}
	return preview, nil
}

// TypeCounts counts matching rows per type.
func (e *Engine) TypeCounts(ctx context.Context, sel catalog.Selection) ([]catalog.Count, error) {
	if err := e.requireSelectionColumns(); err != nil {
		return nil, err
	}
	return e.counts(ctx, "type", selectionWhere(sel), 0)
}

// TopCountries counts matching rows per country and keeps the n largest.
func (e *Engine) TopCountries(ctx context.Context, sel catalog.Selection, n int) ([]catalog.Count, error) {
	if err := e.requireSelectionColumns(); err != nil {
		return nil, err
	}
	return e.counts(ctx, "country", selectionWhere(sel), n)
}

// counts groups by column, largest first, ties in first-appearance order.
func (e *Engine) counts(ctx context.Context, column string, wb *query.WhereBuilder, limit int) ([]catalog.Count, error) {
	ctx, cancel := e.db.ensureContext(ctx)
	defer cancel()

	where, args := wb.AddNotNull(column).Build()
	q := fmt.Sprintf(`SELECT %[1]s, COUNT(*) AS n
		FROM titles
		WHERE %[2]s
		GROUP BY %[1]s
		ORDER BY n DESC, MIN(row_id)`, column, where)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	out, err := queryAndScan(ctx, e.db.conn, q, args, scanCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count titles by %s: %w", column, err)
	}
	return nonNil(out), nil
}

// YearCounts counts matching rows per release year, ascending.
func (e *Engine) YearCounts(ctx context.Context, sel catalog.Selection) ([]catalog.YearCount, error) {
	if err := e.requireSelectionColumns(); err != nil {
		return nil, err
	}
	ctx, cancel := e.db.ensureContext(ctx)
	defer cancel()

	where, args := selectionWhere(sel).Build()
	out, err := queryAndScan(ctx, e.db.conn,
		"SELECT release_year, COUNT(*) FROM titles WHERE "+where+" GROUP BY release_year ORDER BY release_year",
		args,
		func(rows *sql.Rows) (catalog.YearCount, error) {
			var yc catalog.YearCount
			err := rows.Scan(&yc.Year, &yc.Count)
			return yc, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to count titles by year: %w", err)
	}
	return nonNil(out), nil
}

// genresQuery explodes listed_in into (row_id, position, genre) and ranks
// genres by frequency. first_seen orders ties by row, then by position
// inside the cell.
const genresQuery = `WITH split AS (
	SELECT row_id, string_split(listed_in, ', ') AS parts
	FROM titles
	WHERE listed_in IS NOT NULL
), tokens AS (
	SELECT row_id, unnest(parts) AS genre, unnest(range(1, len(parts) + 1)) AS pos
	FROM split
)
SELECT genre, COUNT(*) AS n
FROM tokens
GROUP BY genre
ORDER BY n DESC, MIN(row_id::BIGINT * 1000000 + pos)`

// TopGenres ranks genres over the whole catalog.
func (e *Engine) TopGenres(ctx context.Context, n int) ([]catalog.Count, error) {
	if err := e.cat.Require(catalog.ColumnListedIn); err != nil {
		return nil, err
	}
	ctx, cancel := e.db.ensureContext(ctx)
	defer cancel()

	q := genresQuery
	if n > 0 {
		q += fmt.Sprintf("\nLIMIT %d", n)
	}
	out, err := queryAndScan(ctx, e.db.conn, q, nil, scanCount)
	if err != nil {
		return nil, fmt.Errorf("failed to rank genres: %w", err)
	}
	return nonNil(out), nil
}

// TypeTrend pivots the whole catalog by release year and type.
func (e *Engine) TypeTrend(ctx context.Context) (catalog.Pivot, error) {
	if err := e.cat.Require(catalog.ColumnReleaseYear, catalog.ColumnType); err != nil {
		return catalog.Pivot{}, err
	}
	ctx, cancel := e.db.ensureContext(ctx)
	defer cancel()

	type cell struct {
		year  int
		typ   string
		count int
	}
	cells, err := queryAndScan(ctx, e.db.conn,
		"SELECT release_year, type, COUNT(*) FROM titles GROUP BY release_year, type",
		nil,
		func(rows *sql.Rows) (cell, error) {
			var c cell
			err := rows.Scan(&c.year, &c.typ, &c.count)
			return c, err
		})
	if err != nil {
		return catalog.Pivot{}, fmt.Errorf("failed to group titles by year and type: %w", err)
	}

	p := catalog.Pivot{Years: []int{}, Types: []string{}}
	for _, c := range cells {
		if !slices.Contains(p.Years, c.year) {
			p.Years = append(p.Years, c.year)
		}
		if !slices.Contains(p.Types, c.typ) {
			p.Types = append(p.Types, c.typ)
		}
	}
	slices.Sort(p.Years)
	slices.Sort(p.Types)

	p.Cells = make([][]int, len(p.Years))
	for i := range p.Cells {
		p.Cells[i] = make([]int, len(p.Types))
	}
	for _, c := range cells {
		i, _ := slices.BinarySearch(p.Years, c.year)
		j, _ := slices.BinarySearch(p.Types, c.typ)
		p.Cells[i][j] = c.count
	}
	return p, nil
}
