// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package main is the entry point for the Chairtime training-data export
// tool.
//
// It dumps the MongoDB training collection to a CSV file for offline
// inspection. Strictly read-only: nothing is marked consumed and no
// artifact is touched.
//
// Usage:
//
//	export -out training.csv [-limit 1000]
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/chairtime/chairtime/internal/config"
	"github.com/chairtime/chairtime/internal/logging"
	"github.com/chairtime/chairtime/internal/models"
	"github.com/chairtime/chairtime/internal/store"
)

func main() {
	out := flag.String("out", "training.csv", "output CSV path")
	limit := flag.Int64("limit", 0, "maximum records to export, 0 for all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	st, err := store.Connect(ctx, store.Config(cfg.Store), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Training store unavailable; set MONGODB_URI")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	records, err := st.FetchAll(ctx, *limit)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to fetch records")
	}

	if err := writeCSV(*out, records); err != nil {
		logging.Fatal().Err(err).Str("path", *out).Msg("Failed to write export")
	}
	logging.Info().Int("records", len(records)).Str("path", *out).Msg("Exported training data")
}

// writeCSV writes records in the bootstrap file column layout so exports can
// round-trip back in as bootstrap data.
func writeCSV(path string, records []models.TrainingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // flushed and closed explicitly below

	w := csv.NewWriter(f)
	header := []string{"appointment_id", "service_type", "patient_type", "day_of_week", "appointment_time", "avg_duration", "used_for_training"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range records {
		rec := &records[i]
		row := []string{
			rec.RecordID,
			rec.ProcedureType,
			rec.PatientType,
			rec.DayOfWeek,
			rec.TimePeriod,
			strconv.FormatFloat(rec.ActualDurationMinutes, 'f', -1, 64),
			strconv.FormatBool(rec.Consumed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
