// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee reads a cleaned streaming catalog CSV and serves an interactive
dashboard over it: a dataset overview, a filterable preview and five
charts (titles by type, top countries, titles per year, top genres and
the per-type release trend).

# Process layout

	root ("marquee")
	├── data-layer
	│   ├── catalog-warmup   loads the CSV and builds the analytics engine
	│   └── aggregate-cache  evicts expired chart data
	└── api-layer
	    └── http-server      dashboard page, chart images, JSON API, /metrics

# Configuration

Defaults, then an optional config.yaml, then environment variables:

	CATALOG_PATH=netflix_data_cleaned.csv
	ANALYTICS_ENGINE=memory        # memory or duckdb
	ANALYTICS_CACHE_TTL=5m         # 0 disables the aggregate cache
	DUCKDB_PATH=:memory:
	HTTP_PORT=3857
	LOG_LEVEL=info
	LOG_FORMAT=json                # json or console
*/
package main
