// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*CatalogWarmupService)(nil)

// fakeWarmer fails the first failures calls.
type fakeWarmer struct {
	failures int32
	calls    atomic.Int32
}

func (f *fakeWarmer) Warm(ctx context.Context) error {
	if n := f.calls.Add(1); n <= f.failures {
		return errors.New("catalog file missing")
	}
	return ctx.Err()
}

func TestCatalogWarmupService_Success(t *testing.T) {
	t.Parallel()

	w := &fakeWarmer{}
	svc := NewCatalogWarmupService(w, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case err := <-errCh:
		t.Fatalf("Serve returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
	if w.calls.Load() != 1 {
		t.Errorf("Warm called %d times, want 1", w.calls.Load())
	}
}

func TestCatalogWarmupService_FailureReturnsError(t *testing.T) {
	t.Parallel()

	svc := NewCatalogWarmupService(&fakeWarmer{failures: 1}, time.Second)
	if err := svc.Serve(context.Background()); err == nil {
		t.Fatal("Serve should report a failed warm-up")
	}
}

func TestCatalogWarmupService_RetriedBySupervisor(t *testing.T) {
	t.Parallel()

	w := &fakeWarmer{failures: 2}
	sup := suture.New("test", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(NewCatalogWarmupService(w, time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	done := sup.ServeBackground(ctx)

	deadline := time.After(time.Second)
	for w.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("Warm called %d times, want 3", w.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestNewCatalogWarmupService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewCatalogWarmupService(&fakeWarmer{}, 0)
	if svc.timeout != time.Minute || svc.String() != "catalog-warmup" {
		t.Errorf("timeout = %v, name = %q", svc.timeout, svc.String())
	}
}
