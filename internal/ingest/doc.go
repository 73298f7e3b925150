// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package ingest loads and prepares the training corpus for a retraining
// round.
//
// Two sources exist: bootstrap CSV files (fixed synthetic reference data)
// and freshly observed records from the external store. Source selection is
// exclusive by design: once any observed data exists, a round trains on
// observed data only, so bootstrap noise never dilutes real signal. Records
// are deduplicated by record identity, never by feature tuple, and a
// minimum-sample gate decides whether the round trains at all.
package ingest
