// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Catalog.Path != "netflix_data_cleaned.csv" {
		t.Errorf("Catalog.Path = %q, want netflix_data_cleaned.csv", cfg.Catalog.Path)
	}
	if cfg.Catalog.PreviewRows != 5 {
		t.Errorf("Catalog.PreviewRows = %d, want 5", cfg.Catalog.PreviewRows)
	}
	if cfg.Catalog.DefaultCountries != 5 {
		t.Errorf("Catalog.DefaultCountries = %d, want 5", cfg.Catalog.DefaultCountries)
	}
	if cfg.Catalog.TopN != 10 {
		t.Errorf("Catalog.TopN = %d, want 10", cfg.Catalog.TopN)
	}
	if cfg.Analytics.Engine != EngineMemory {
		t.Errorf("Analytics.Engine = %q, want memory", cfg.Analytics.Engine)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithKoanfEnvironment(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("CATALOG_PATH", "/data/titles.csv")
	t.Setenv("ANALYTICS_ENGINE", "duckdb")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("CHART_WIDTH", "800")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Catalog.Path != "/data/titles.csv" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Analytics.Engine != EngineDuckDB {
		t.Errorf("Analytics.Engine = %q", cfg.Analytics.Engine)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 10*time.Second {
		t.Errorf("Server.Timeout = %v", cfg.Server.Timeout)
	}
	if cfg.Charts.Width != 800 {
		t.Errorf("Charts.Width = %v", cfg.Charts.Width)
	}
	if got := strings.Join(cfg.Security.CORSOrigins, "|"); got != "https://a.example|https://b.example" {
		t.Errorf("CORSOrigins = %q", got)
	}
	if cfg.Catalog.PreviewRows != 5 {
		t.Errorf("unset values should keep defaults, PreviewRows = %d", cfg.Catalog.PreviewRows)
	}
}

func TestLoadWithKoanfFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "catalog:\n  path: from-file.csv\n  top_n: 7\nserver:\n  port: 9000\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Catalog.Path != "from-file.csv" {
		t.Errorf("Catalog.Path = %q, want from-file.csv", cfg.Catalog.Path)
	}
	if cfg.Catalog.TopN != 7 {
		t.Errorf("Catalog.TopN = %d, want 7", cfg.Catalog.TopN)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("environment should override file, Server.Port = %d", cfg.Server.Port)
	}
}

func TestLoadWithKoanfRejectsInvalid(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("ANALYTICS_ENGINE", "spark")

	if _, err := LoadWithKoanf(); err == nil || !strings.Contains(err.Error(), "ANALYTICS_ENGINE") {
		t.Fatalf("expected ANALYTICS_ENGINE error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty path", func(c *Config) { c.Catalog.Path = " " }, "CATALOG_PATH"},
		{"zero preview", func(c *Config) { c.Catalog.PreviewRows = 0 }, "CATALOG_PREVIEW_ROWS"},
		{"zero countries", func(c *Config) { c.Catalog.DefaultCountries = 0 }, "CATALOG_DEFAULT_COUNTRIES"},
		{"zero top n", func(c *Config) { c.Catalog.TopN = 0 }, "CATALOG_TOP_N"},
		{"negative ttl", func(c *Config) { c.Analytics.CacheTTL = -time.Second }, "ANALYTICS_CACHE_TTL"},
		{"duckdb without path", func(c *Config) {
			c.Analytics.Engine = EngineDuckDB
			c.Database.Path = ""
		}, "DUCKDB_PATH"},
		{"tiny chart", func(c *Config) { c.Charts.Width = 10 }, "CHART_WIDTH"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	if got := envTransformFunc("CATALOG_PATH"); got != "catalog.path" {
		t.Errorf("CATALOG_PATH -> %q", got)
	}
	if got := envTransformFunc("HOME"); got != "" {
		t.Errorf("unmapped keys must be dropped, got %q", got)
	}
}
