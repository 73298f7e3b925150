// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package main is the entry point for the Chairtime retraining job.
//
// One invocation runs one retraining round: fetch unconsumed observed
// outcomes from MongoDB (or fall back to the bootstrap CSVs), train a fresh
// regression model, publish it atomically with a single-generation backup,
// and mark the consumed records. Designed to run on a schedule (cron,
// systemd timer) next to the serving process.
//
// Exit codes: 0 on a trained or cleanly skipped round, 1 on failure. A skip
// for lack of data is a normal outcome and leaves the current artifact live.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/chairtime/chairtime/internal/artifact"
	"github.com/chairtime/chairtime/internal/config"
	"github.com/chairtime/chairtime/internal/ingest"
	"github.com/chairtime/chairtime/internal/logging"
	"github.com/chairtime/chairtime/internal/pipeline"
	"github.com/chairtime/chairtime/internal/store"
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
		Int("min_samples", cfg.Training.MinSamples).
		Msg("Starting retraining round")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var trainingStore pipeline.TrainingStore
	st, err := store.Connect(ctx, store.Config(cfg.Store), logging.Logger())
	switch {
	case err == nil:
		trainingStore = st
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				logging.Error().Err(err).Msg("Error closing store")
			}
		}()
	case errors.Is(err, store.ErrNotConfigured):
		logging.Info().Msg("No MongoDB configured, running bootstrap-only")
	default:
		// A configured but unreachable store still permits a bootstrap
		// round; observed records stay unconsumed for the next run.
		logging.Error().Err(err).Msg("Training store unavailable, running bootstrap-only")
	}

	p := pipeline.New(
		trainingStore,
		ingest.NewBootstrapLoader(cfg.Bootstrap.Primary, cfg.Bootstrap.Legacy, logging.Logger()),
		artifact.NewPublisher(cfg.Model.Path, cfg.Model.BackupPath, logging.Logger()),
		cfg.Training.MinSamples,
		logging.Logger(),
	)

	result, err := p.Run(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Retraining round failed")
		os.Exit(1)
	}

	switch result.Outcome {
	case pipeline.OutcomeTrained:
		logging.Info().
			Str("version", result.Version).
			Str("source", string(result.Source)).
			Int("samples", result.Samples).
			Float64("test_mae", result.Metrics.TestMAE).
			Float64("test_r2", result.Metrics.TestR2).
			Msg("Published new model artifact")
	case pipeline.OutcomeSkippedInsufficient:
		logging.Warn().
			Int("samples", result.Samples).
			Msg("Skipped: not enough training data, current artifact unchanged")
	case pipeline.OutcomeSkippedNoData:
		logging.Warn().Msg("Skipped: no training data from any source")
	}
}
