// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package models defines the shared data types for Chairtime: training
// records flowing through the retraining pipeline and the request/response
// shapes of the prediction API.
package models
