// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
)

const createTitlesTable = `CREATE OR REPLACE TABLE titles (
	row_id       INTEGER PRIMARY KEY,
	type         VARCHAR NOT NULL,
	country      VARCHAR,
	release_year INTEGER NOT NULL,
	listed_in    VARCHAR
)`

// ImportCatalog replaces the titles table with the rows of c. row_id is
// the catalog row index, so queries can order ties by first appearance and
// previews can return the original raw rows.
func (db *DB) ImportCatalog(ctx context.Context, c *catalog.Catalog) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()

	if _, err = db.conn.ExecContext(ctx, createTitlesTable); err != nil {
		return fmt.Errorf("failed to create titles table: %w", err)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO titles (row_id, type, country, release_year, listed_in) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i, t := range c.Titles {
		if _, err = stmt.ExecContext(ctx, i, t.Type, nullable(t.Country, t.HasCountry), t.ReleaseYear, nullable(t.ListedIn, t.HasListedIn)); err != nil {
			return fmt.Errorf("failed to insert title %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit titles: %w", err)
	}

	logging.Info().
		Int("rows", c.Len()).
		Dur("duration", time.Since(start)).
		Msg("Catalog imported into DuckDB")
	return nil
}

func nullable(value string, ok bool) interface{} {
	if !ok {
		return nil
	}
	return value
}
