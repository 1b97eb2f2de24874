// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package api serves the dashboard page, its chart images and a JSON API
// over the same data.
package api

import (
	"embed"
	"html/template"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/chart"
	"github.com/tomtom215/marquee/internal/dashboard"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Handler holds the dependencies shared by every HTTP handler.
type Handler struct {
	svc       *dashboard.Service
	renderer  *chart.Renderer
	cache     *cache.Cache
	page      *template.Template
	startTime time.Time

	flight singleflight.Group
}

// NewHandler wires a Handler. A nil cache disables aggregate caching.
func NewHandler(svc *dashboard.Service, renderer *chart.Renderer, c *cache.Cache) *Handler {
	return &Handler{
		svc:       svc,
		renderer:  renderer,
		cache:     c,
		page:      parsePage(),
		startTime: time.Now(),
	}
}

func parsePage() *template.Template {
	return template.Must(template.New("dashboard.html.tmpl").
		Funcs(template.FuncMap{
			"selected": contains,
		}).
		ParseFS(templateFS, "templates/dashboard.html.tmpl"))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
