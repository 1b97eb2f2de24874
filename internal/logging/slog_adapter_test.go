// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger().With("service", "catalog-warmup").WithGroup("event")
	logger.Warn("service failed", "attempt", 3, "backoff", true)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"service":"catalog-warmup"`,
		`"event.attempt":3`,
		`"event.backoff":true`,
		`"message":"service failed"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in %s", want, output)
		}
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error", Output: &buf})
	defer Init(DefaultConfig())

	h := NewSlogHandler()
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at error level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error should be enabled at error level")
	}
}
