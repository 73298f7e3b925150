// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package models

import "strings"

// Feature names used for model training and prediction. The order is fixed:
// the encoder registry, the feature matrix and the serialized model all use
// this exact sequence.
const (
	FeatureProcedureType = "procedureType"
	FeaturePatientType   = "patientType"
	FeatureDayOfWeek     = "dayOfWeek"
	FeatureTimePeriod    = "timePeriod"
)

// FeatureNames returns the canonical feature order.
func FeatureNames() []string {
	return []string{FeatureProcedureType, FeaturePatientType, FeatureDayOfWeek, FeatureTimePeriod}
}

// Default values applied to absent categorical fields before encoding.
const (
	DefaultPatientType = "Adult"
	DefaultDayOfWeek   = "Monday"
	DefaultTimePeriod  = "Afternoon"
)

// TrainingRecord is one observed or synthetic appointment outcome.
//
// RecordID is the dedup key and must be unique per logical appointment.
// Two genuine appointments may share identical feature values; dedup keys on
// RecordID only, never on the feature tuple.
type TrainingRecord struct {
	RecordID              string  `json:"appointmentId" bson:"appointmentId"`
	ProcedureType         string  `json:"procedureType" bson:"procedureType"`
	PatientType           string  `json:"patientType" bson:"patientType"`
	DayOfWeek             string  `json:"dayOfWeek" bson:"dayOfWeek"`
	TimePeriod            string  `json:"timePeriod" bson:"timePeriod"`
	ActualDurationMinutes float64 `json:"actualDurationMinutes" bson:"actualDurationMinutes"`
	IsCustomProcedure     bool    `json:"isCustomProcedure" bson:"isCustomProcedure"`
	Consumed              bool    `json:"usedForTraining" bson:"usedForTraining"`
}

// Normalize applies the fixed normalization contract: procedure type is
// lowercased and absent patientType defaults to "Adult". dayOfWeek and
// timePeriod default to the empty sentinel; bootstrap and live data must
// agree on this normalization or encodings silently diverge.
func (r *TrainingRecord) Normalize() {
	r.ProcedureType = strings.ToLower(r.ProcedureType)
	if r.PatientType == "" {
		r.PatientType = DefaultPatientType
	}
}

// FeatureValue returns the record's value for the named feature, or the
// empty string for unknown feature names.
func (r *TrainingRecord) FeatureValue(feature string) string {
	switch feature {
	case FeatureProcedureType:
		return r.ProcedureType
	case FeaturePatientType:
		return r.PatientType
	case FeatureDayOfWeek:
		return r.DayOfWeek
	case FeatureTimePeriod:
		return r.TimePeriod
	default:
		return ""
	}
}
