// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee's runtime configuration.
//
// Values are layered with Koanf: struct defaults, then an optional YAML
// file (CONFIG_PATH or config.yaml), then the mapped environment variables
// listed in envMappings. Environment always wins.
package config

import "time"

// Analytics engine names accepted by analytics.engine.
const (
	EngineMemory = "memory"
	EngineDuckDB = "duckdb"
)

// Config is the complete runtime configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Database  DatabaseConfig  `koanf:"database"`
	Charts    ChartConfig     `koanf:"charts"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig describes the input CSV and the dashboard's fixed sizes.
type CatalogConfig struct {
	Path             string `koanf:"path"`
	PreviewRows      int    `koanf:"preview_rows"`
	DefaultCountries int    `koanf:"default_countries"`
	TopN             int    `koanf:"top_n"`
}

// AnalyticsConfig selects the aggregation engine and the result cache TTL.
type AnalyticsConfig struct {
	Engine   string        `koanf:"engine"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// DatabaseConfig holds DuckDB settings, used only when Analytics.Engine is duckdb.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// ChartConfig sets the rendered chart size in points.
type ChartConfig struct {
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
