// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package api provides HTTP routing and handlers using the Chi router.
//
// The prediction endpoint never returns a bare failure: every error response
// carries a generic fallback duration so schedulers always get a usable
// estimate, whatever went wrong.
package api
