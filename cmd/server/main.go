// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/chart"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/dashboard"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("catalog", cfg.Catalog.Path).
		Str("engine", cfg.Analytics.Engine).
		Dur("cache_ttl", cfg.Analytics.CacheTTL).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Marquee")

	engines := newEngineFactory(cfg)
	defer engines.Close()

	svc := dashboard.NewService(dashboard.Config{
		CatalogPath:      cfg.Catalog.Path,
		PreviewRows:      cfg.Catalog.PreviewRows,
		DefaultCountries: cfg.Catalog.DefaultCountries,
		TopN:             cfg.Catalog.TopN,
	}, catalog.NewLoader(), engines.Build)

	var aggregates *cache.Cache
	if cfg.Analytics.CacheTTL > 0 {
		aggregates = cache.New(cfg.Analytics.CacheTTL)
	}

	handler := api.NewHandler(svc, chart.NewRenderer(cfg.Charts, cfg.Catalog.TopN), aggregates)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewCatalogWarmupService(svc, cfg.Server.Timeout))
	if aggregates != nil {
		tree.AddDataService(aggregates)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, s := range unstopped {
			logging.Warn().Str("service", s.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Marquee stopped")
}
