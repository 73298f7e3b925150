// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package metrics defines the Prometheus instrumentation for the prediction
// service. All collectors are registered at package init via promauto and
// exposed through the /metrics endpoint.
package metrics
