// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package pipeline orchestrates one retraining round: fetch, select source,
// dedup, gate, fit encoders, train, evaluate, publish, mark consumed.
//
// A round that skips (no data, or too little) is a success with a skip
// outcome, not an error. Only a publish failure is a hard error; the
// previous artifact stays live and nothing is marked consumed.
package pipeline
