// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package config loads layered configuration: built-in defaults, then an
// optional YAML file, then environment variables. ENV > file > defaults.
package config
