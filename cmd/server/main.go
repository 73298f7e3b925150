// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package main is the entry point for the Chairtime prediction server.
//
// The server loads the current model artifact at startup and serves
// appointment duration predictions over HTTP. A missing or corrupt artifact
// degrades the service to keyword estimates instead of failing startup.
//
// # Endpoints
//
//   - POST /predict  - predict the duration of one appointment
//   - GET  /health   - liveness plus model state
//   - GET  /metrics  - Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config.yaml, built-in defaults.
// Key variables:
//
//	HTTP_PORT    - listen port (default 8000)
//	MODEL_PATH   - current artifact location (default data/model.json)
//	LOG_LEVEL    - trace, debug, info, warn, error (default info)
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the listener stops
// accepting connections and in-flight requests get the configured shutdown
// timeout to finish.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chairtime/chairtime/internal/api"
	"github.com/chairtime/chairtime/internal/config"
	"github.com/chairtime/chairtime/internal/logging"
	"github.com/chairtime/chairtime/internal/metrics"
	"github.com/chairtime/chairtime/internal/predict"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("model_path", cfg.Model.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting Chairtime prediction server")

	svc := predict.NewService(cfg.Model.Path, logging.Logger())
	if svc.ModelLoaded() {
		metrics.ModelLoaded.Set(1)
		logging.Info().Str("version", svc.Version()).Msg("Serving with model artifact")
	} else {
		metrics.ModelLoaded.Set(0)
		logging.Warn().Msg("Serving degraded keyword estimates; run the retrain job to publish a model")
	}

	router := api.NewRouter(svc, cfg.Server, logging.Logger())
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
		os.Exit(1)
	}
	logging.Info().Msg("Server stopped")
}
