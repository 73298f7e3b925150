// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package validation wraps go-playground/validator v10 behind a thread-safe
// singleton. Field names in error messages come from the json struct tags so
// API clients see the wire names they actually sent.
package validation
