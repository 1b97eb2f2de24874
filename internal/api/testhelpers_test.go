// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/chart"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/dashboard"
)

const scenarioCSV = `show_id,type,title,country,release_year,listed_in
s1,Movie,First,US,2020,"Drama, Comedy"
s2,TV Show,Second,US,2019,Drama
s3,Movie,Third,IN,2020,Comedy
`

const noGenresCSV = `show_id,type,title,country,release_year
s1,Movie,First,US,2020
s2,TV Show,Second,US,2019
`

type testServer struct {
	svc     *dashboard.Service
	cache   *cache.Cache
	handler http.Handler
}

// newTestServer serves data from a temporary CSV. An empty data string
// points the service at a file that does not exist.
func newTestServer(t *testing.T, data string) *testServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "titles.csv")
	if data != "" {
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatalf("write catalog: %v", err)
		}
	}

	svc := dashboard.NewService(dashboard.Config{CatalogPath: path}, catalog.NewLoader(), nil)
	renderer := chart.NewRenderer(config.ChartConfig{Width: 320, Height: 200}, 10)
	c := cache.New(time.Minute)

	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	router := NewRouter(NewHandler(svc, renderer, c), NewChiMiddleware(mw))

	return &testServer{svc: svc, cache: c, handler: router.Setup()}
}

func (s *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// envelope mirrors APIResponse with the data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, w.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

// decodeField extracts the "data" member of an aggregate response.
func decodeField(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &wrapper); err != nil {
		t.Fatalf("decode aggregate: %v", err)
	}
	if err := json.Unmarshal(wrapper.Data, out); err != nil {
		t.Fatalf("decode aggregate data: %v", err)
	}
}
