// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateCatalog,
		c.validateAnalytics,
		c.validateCharts,
		c.validateServer,
		c.validateRateLimits,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.Catalog.PreviewRows < 1 {
		return fmt.Errorf("CATALOG_PREVIEW_ROWS must be at least 1, got %d", c.Catalog.PreviewRows)
	}
	if c.Catalog.DefaultCountries < 1 {
		return fmt.Errorf("CATALOG_DEFAULT_COUNTRIES must be at least 1, got %d", c.Catalog.DefaultCountries)
	}
	if c.Catalog.TopN < 1 {
		return fmt.Errorf("CATALOG_TOP_N must be at least 1, got %d", c.Catalog.TopN)
	}
	return nil
}

func (c *Config) validateAnalytics() error {
	switch c.Analytics.Engine {
	case EngineMemory, EngineDuckDB:
	default:
		return fmt.Errorf("ANALYTICS_ENGINE must be %q or %q, got %q", EngineMemory, EngineDuckDB, c.Analytics.Engine)
	}
	if c.Analytics.CacheTTL < 0 {
		return fmt.Errorf("ANALYTICS_CACHE_TTL must not be negative")
	}
	if c.Analytics.Engine == EngineDuckDB {
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when ANALYTICS_ENGINE is duckdb")
		}
		if c.Database.Threads < 0 {
			return fmt.Errorf("DUCKDB_THREADS must not be negative")
		}
	}
	return nil
}

func (c *Config) validateCharts() error {
	if c.Charts.Width < 100 || c.Charts.Height < 100 {
		return fmt.Errorf("CHART_WIDTH and CHART_HEIGHT must be at least 100 points, got %.0fx%.0f", c.Charts.Width, c.Charts.Height)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is disabled")
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
