// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package ingest

import (
	"errors"
	"fmt"

	"github.com/chairtime/chairtime/internal/models"
)

// ErrInsufficientData reports a deduplicated corpus below the minimum-sample
// threshold. It is a normal skip outcome, not a failure: the pipeline leaves
// the current artifact untouched and exits cleanly.
var ErrInsufficientData = errors.New("insufficient training data")

// Source identifies which corpus fed a training round.
type Source string

const (
	SourceObserved  Source = "observed"
	SourceBootstrap Source = "bootstrap"
	SourceNone      Source = "none"
)

// SelectSource applies the exclusive source-selection policy: any observed
// data means the round trains on observed data only; bootstrap files are
// used only when no observed data exists. The two are never mixed, so
// synthetic noise cannot permanently dilute real signal once live records
// start arriving.
func SelectSource(observed, bootstrap []models.TrainingRecord) ([]models.TrainingRecord, Source) {
	if len(observed) > 0 {
		return observed, SourceObserved
	}
	if len(bootstrap) > 0 {
		return bootstrap, SourceBootstrap
	}
	return nil, SourceNone
}

// Dedup removes duplicate records keeping the first occurrence by RecordID.
// Records with identical feature values but distinct ids both survive: two
// genuine appointments may look the same.
func Dedup(records []models.TrainingRecord) []models.TrainingRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.TrainingRecord, 0, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.RecordID]; dup {
			continue
		}
		seen[rec.RecordID] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// Gate enforces the minimum-sample threshold on a deduplicated corpus.
func Gate(corpusSize, minSamples int) error {
	if corpusSize < minSamples {
		return fmt.Errorf("%w: %d samples, need %d", ErrInsufficientData, corpusSize, minSamples)
	}
	return nil
}
