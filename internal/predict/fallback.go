// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package predict

import "strings"

// DefaultDurationMinutes is the estimate for procedures no keyword matches,
// and the duration carried by handler-level error responses.
const DefaultDurationMinutes = 60

// keywordDurations maps procedure keywords to typical durations in minutes.
// Matching is ordered substring search over the lowercased procedure name,
// so "surgical extraction" hits "extraction". Order matters: the first match
// wins.
var keywordDurations = []struct {
	keyword string
	minutes float64
}{
	{"extraction", 25},
	{"cleaning", 35},
	{"filling", 30},
	{"root canal", 60},
	{"crown", 45},
	{"checkup", 20},
}

// DegradedEstimate returns the keyword-table duration for a procedure name.
// Used whenever the model cannot be consulted; it never fails.
func DegradedEstimate(procedureType string) float64 {
	procedure := strings.ToLower(procedureType)
	for _, kd := range keywordDurations {
		if strings.Contains(procedure, kd.keyword) {
			return kd.minutes
		}
	}
	return DefaultDurationMinutes
}
