// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package encoding implements the categorical-to-integer encoding shared by
// training and serving.
//
// A Registry is fit once per training round over the exact corpus the
// regressor sees, assigning codes in first-seen order so the mapping is
// reproducible from the same ordered input. The registry is persisted inside
// the model artifact; the prediction service re-creates identical encodings
// from it at request time.
//
// The Encoder interface has two variants selected per feature at request
// time: TrainedEncoder backed by the fitted registry, and
// StaticFallbackEncoder backed by fixed maps for values the registry never
// saw. Values are compared case-sensitively as stored; callers normalize
// (e.g. lowercase procedure types) before fit and encode.
package encoding
