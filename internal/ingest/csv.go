// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chairtime/chairtime/internal/logging"
	"github.com/chairtime/chairtime/internal/models"
)

// BootstrapLoader reads the fixed bootstrap CSV files. Primary synthetic
// sources are loaded in configured order; the single legacy file is used
// only when none of the primary sources exist.
type BootstrapLoader struct {
	Primary []string
	Legacy  string

	log zerolog.Logger
}

// NewBootstrapLoader returns a loader for the given primary and legacy
// file paths.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBootstrapLoader(primary []string, legacy string, logger zerolog.Logger) *BootstrapLoader {
	return &BootstrapLoader{
		Primary: primary,
		Legacy:  legacy,
		log:     logger.With().Str("component", "ingest").Logger(),
	}
}

// Load reads the bootstrap corpus. A missing or unreadable individual file
// is logged and skipped, never fatal: callers interpret an empty result as
// "nothing to bootstrap from".
func (l *BootstrapLoader) Load() []models.TrainingRecord {
	var corpus []models.TrainingRecord

	primaryLoaded := false
	for _, path := range l.Primary {
		if _, err := os.Stat(path); err != nil {
			l.log.Warn().Str("path", path).Msg("bootstrap file not found")
			continue
		}
		records, err := LoadCSVFile(path, filepath.Base(path))
		if err != nil {
			l.log.Error().Err(err).Str("path", path).Msg("failed to load bootstrap file")
			continue
		}
		corpus = append(corpus, records...)
		primaryLoaded = true
		l.log.Info().Str("path", path).Int("records", len(records)).Msg("loaded bootstrap file")
	}

	if primaryLoaded {
		return corpus
	}

	if l.Legacy == "" {
		l.log.Warn().Msg("no bootstrap files found")
		return corpus
	}
	records, err := LoadCSVFile(l.Legacy, "legacy")
	if err != nil {
		l.log.Warn().Err(err).Str("path", l.Legacy).Msg("legacy bootstrap file unavailable")
		return corpus
	}
	l.log.Info().Str("path", l.Legacy).Int("records", len(records)).Msg("loaded legacy bootstrap file")
	return records
}

// LoadCSVFile parses one bootstrap CSV into training records.
//
// Expected columns: service_type, patient_type, day_of_week,
// appointment_time (a time-period label, defaulting to "Afternoon"),
// avg_duration, and optionally appointment_id. When the id column is
// absent the record identity is synthesized as "<sourceName>_<rowIndex>"
// so two loads of the same file produce the same identities and
// re-ingestion stays idempotent.
func LoadCSVFile(path, sourceName string) ([]models.TrainingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", path, err)
	}

	records := make([]models.TrainingRecord, 0, len(rows))
	for i, row := range rows {
		id := field(row, "appointment_id")
		if id == "" {
			id = field(row, "appointmentId")
		}
		if id == "" {
			id = fmt.Sprintf("%s_%d", sourceName, i)
		}

		// A bad duration cell must not become a 0-minute training target.
		duration, err := strconv.ParseFloat(field(row, "avg_duration"), 64)
		if err != nil {
			logging.Warn().Str("path", path).Int("row", i).
				Str("avg_duration", field(row, "avg_duration")).
				Msg("skipping row with unparseable duration")
			continue
		}

		timePeriod := field(row, "appointment_time")
		if timePeriod == "" {
			timePeriod = models.DefaultTimePeriod
		}

		rec := models.TrainingRecord{
			RecordID:              id,
			ProcedureType:         field(row, "service_type"),
			PatientType:           field(row, "patient_type"),
			DayOfWeek:             field(row, "day_of_week"),
			TimePeriod:            timePeriod,
			ActualDurationMinutes: duration,
		}
		rec.Normalize()
		records = append(records, rec)
	}

	return records, nil
}
