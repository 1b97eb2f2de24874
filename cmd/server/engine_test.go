// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
)

func TestEngineFactory_Memory(t *testing.T) {
	t.Parallel()

	c, err := catalog.Read("t.csv", strings.NewReader("type,country,release_year,listed_in\nMovie,US,2020,Drama\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	f := newEngineFactory(&config.Config{Analytics: config.AnalyticsConfig{Engine: config.EngineMemory}})
	e, err := f.Build(context.Background(), c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if e.Name() != "memory" {
		t.Errorf("engine = %q, want memory", e.Name())
	}
	if len(f.opened) != 0 {
		t.Error("memory engine should not be tracked for closing")
	}
	f.Close()
}
