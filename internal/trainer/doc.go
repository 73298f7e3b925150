// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package trainer fits the duration regressor on an encoded corpus.
//
// The regression capability is a least-squares fit (sajari/regression); the
// fitted coefficients are extracted into a plain Model so the artifact can
// serialize and reload it without any library-specific state. The split uses
// a fixed held-out fraction and a fixed seed so a round is reproducible from
// the same ordered input. Hyperparameters are constants; no search is
// performed per round.
package trainer
