// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package encoding

import "github.com/chairtime/chairtime/internal/models"

// Static fallback maps used at serving time when the fitted registry does
// not cover a value. The codes are fixed across releases and process
// restarts; hashing is deliberately not used here because hash codes carry
// no stability guarantee.
var staticMaps = map[string]map[string]int{
	models.FeatureProcedureType: {
		"extraction": 0,
		"cleaning":   1,
		"filling":    2,
		"root canal": 3,
		"crown":      4,
		"checkup":    5,
	},
	models.FeaturePatientType: {
		"Adult": 0, "Child": 1,
		"adult": 0, "child": 1,
	},
	models.FeatureDayOfWeek: {
		"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3,
		"Friday": 4, "Saturday": 5, "Sunday": 6,
		"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
		"friday": 4, "saturday": 5, "sunday": 6,
	},
	models.FeatureTimePeriod: {
		"Morning": 0, "Afternoon": 1, "Evening": 2,
		"morning": 0, "afternoon": 1, "evening": 2,
		"AM": 0, "PM": 1,
	},
}

// StaticFallbackEncoder encodes one feature through a fixed map, returning a
// default code for values outside the map. It never fails.
type StaticFallbackEncoder struct {
	mapping map[string]int
	def     int
}

// NewStaticFallbackEncoder returns the fallback Encoder for the named
// feature. Unknown feature names yield an encoder that always returns the
// default code.
func NewStaticFallbackEncoder(feature string) *StaticFallbackEncoder {
	return &StaticFallbackEncoder{mapping: staticMaps[feature], def: 0}
}

// Encode implements Encoder. It cannot return an error; unmapped values get
// the default code.
func (e *StaticFallbackEncoder) Encode(value string) (int, error) {
	if code, ok := e.mapping[value]; ok {
		return code, nil
	}
	return e.def, nil
}
