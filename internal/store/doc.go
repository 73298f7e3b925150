// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package store reads observed appointment outcomes from the MongoDB
// training collection and marks them consumed after a successful publish.
//
// Consumption is at-most-once: records are marked only after the new
// artifact is live, so a failed round leaves them eligible for the next run.
// A record marked consumed is never fetched again even if the artifact is
// later lost.
package store
