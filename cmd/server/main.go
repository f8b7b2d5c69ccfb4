// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

// Package main is the entry point for the Carolgate server.
//
// Carolgate is a proxy in front of the NTSB CAROL FileExport API. It
// exposes accident case data as a paginated JSON API with filtering,
// sorting, and aggregate statistics, plus raw ZIP passthrough downloads.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings via Koanf v2 (defaults, YAML file,
//     environment variables)
//  2. Logging: zerolog structured logging
//  3. CAROL client: rate-limited FileExport client with retries, wrapped
//     in a circuit breaker unless disabled
//  4. HTTP server: chi router with CORS, per-IP rate limits, and
//     Prometheus metrics
//  5. Supervisor tree: suture supervision with graceful shutdown
//
// # Configuration
//
// Highest priority wins:
//   - Environment variables (HTTP_PORT, CAROL_TIMEOUT, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops
// accepting connections and waits for in-flight requests up to the
// configured shutdown timeout.
//
// # Example Usage
//
//	export HTTP_PORT=8080
//	export LOG_LEVEL=debug
//	./carolgate
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/carolgate/internal/api"
	"github.com/tomtom215/carolgate/internal/carol"
	"github.com/tomtom215/carolgate/internal/config"
	"github.com/tomtom215/carolgate/internal/logging"
	"github.com/tomtom215/carolgate/internal/supervisor"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Config is not available yet, so this uses the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("carol_base_url", cfg.Carol.BaseURL).
		Bool("breaker_disabled", cfg.Carol.BreakerDisabled).
		Msg("Starting Carolgate")

	var exporter carol.Exporter = carol.NewClient(cfg.Carol)
	if cfg.Carol.BreakerDisabled {
		logging.Warn().Msg("Upstream circuit breaker disabled")
	} else {
		exporter = carol.NewBreakerClient(exporter)
	}

	handler := api.NewHandler(exporter, cfg.API, version)
	router := api.NewRouter(handler, api.RouterConfig{Security: cfg.Security})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Carolgate stopped gracefully")
}
