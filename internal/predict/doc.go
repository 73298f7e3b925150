// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package predict implements the prediction service runtime.
//
// The runtime moves through the states Unloaded -> Loaded or Unloaded ->
// Degraded at startup; Degraded is never exited without a process restart.
// In Loaded state each request is normalized, encoded through the persisted
// registry (with per-feature static fallback for unseen values), run through
// the model and clamped to a sane duration range. In Degraded state every
// request is answered from a fixed keyword lookup table. A single bad
// request never crashes the service or affects subsequent requests.
//
// The loaded artifact is shared read-only across all concurrent requests;
// the swappable reference is guarded single-writer/many-reader so a future
// hot-reload can replace it safely.
package predict
