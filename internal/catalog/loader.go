// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// LoadFunc reads a catalog from a path. Load is the production LoadFunc.
type LoadFunc func(path string) (*Catalog, error)

// Loader memoizes successful loads per path for the life of the process.
// Concurrent first callers share a single read. Failures are not
// remembered, so a later call retries after the file is fixed.
type Loader struct {
	load  LoadFunc
	group singleflight.Group

	mu     sync.RWMutex
	loaded map[string]*Catalog
}

// NewLoader returns a Loader backed by Load.
func NewLoader() *Loader {
	return NewLoaderWithFunc(Load)
}

// NewLoaderWithFunc returns a Loader backed by fn.
func NewLoaderWithFunc(fn LoadFunc) *Loader {
	return &Loader{load: fn, loaded: make(map[string]*Catalog)}
}

// Load returns the memoized catalog for path, reading it on first use.
func (l *Loader) Load(ctx context.Context, path string) (*Catalog, error) {
	if c := l.Cached(path); c != nil {
		return c, nil
	}

	ch := l.group.DoChan(path, func() (interface{}, error) {
		if c := l.Cached(path); c != nil {
			return c, nil
		}
		start := time.Now()
		c, err := l.load(path)
		elapsed := time.Since(start)
		if err != nil {
			metrics.RecordCatalogLoad("error", elapsed, 0)
			logging.Error().Err(err).Str("path", path).Msg("Catalog load failed")
			return nil, err
		}
		metrics.RecordCatalogLoad("success", elapsed, c.Len())
		logging.Info().
			Str("path", path).
			Int("rows", c.Len()).
			Int("columns", len(c.Columns)).
			Dur("duration", elapsed).
			Msg("Catalog loaded")

		l.mu.Lock()
		l.loaded[path] = c
		l.mu.Unlock()
		return c, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Catalog), nil
	}
}

// Cached returns the memoized catalog for path, or nil.
func (l *Loader) Cached(path string) *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded[path]
}
