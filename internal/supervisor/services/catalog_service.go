// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// Warmer loads the catalog and builds the analytics engine.
// *dashboard.Service satisfies it.
type Warmer interface {
	Warm(ctx context.Context) error
}

// CatalogWarmupService loads the catalog at startup so the first page view
// does not pay for it. A failed load is returned to the supervisor, which
// retries with backoff; requests meanwhile still try to load on demand.
// After a successful load the service idles until shutdown.
type CatalogWarmupService struct {
	warmer  Warmer
	timeout time.Duration
	name    string
}

// NewCatalogWarmupService wraps w. A non-positive timeout means one minute.
func NewCatalogWarmupService(w Warmer, timeout time.Duration) *CatalogWarmupService {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &CatalogWarmupService{warmer: w, timeout: timeout, name: "catalog-warmup"}
}

// Serve implements suture.Service.
func (s *CatalogWarmupService) Serve(ctx context.Context) error {
	warmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	start := time.Now()
	err := s.warmer.Warm(warmCtx)
	cancel()

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Warn().Err(err).Msg("Catalog warm-up failed")
		return fmt.Errorf("catalog warm-up: %w", err)
	}

	logging.Info().Dur("duration", time.Since(start)).Msg("Catalog warm-up complete")
	<-ctx.Done()
	return ctx.Err()
}

// String names the service in supervisor events.
func (s *CatalogWarmupService) String() string {
	return s.name
}
