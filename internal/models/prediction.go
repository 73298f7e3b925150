// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package models

// Confidence labels attached to prediction responses.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// PredictionRequest is the body of POST /predict.
//
// appointment_date is an ISO date ("2024-01-15") or RFC 3339 timestamp;
// appointment_time is "H:MM AM/PM" or 24-hour "HH:MM". Both are optional.
type PredictionRequest struct {
	ProcedureType   string `json:"procedure_type" validate:"required"`
	PatientType     string `json:"patient_type" validate:"required"`
	AppointmentDate string `json:"appointment_date,omitempty"`
	AppointmentTime string `json:"appointment_time,omitempty"`
}

// PredictionFeatures echoes the normalized features that fed the model.
type PredictionFeatures struct {
	ProcedureType string `json:"procedure_type"`
	PatientType   string `json:"patient_type"`
	DayOfWeek     string `json:"day_of_week"`
	TimePeriod    string `json:"time_period"`
}

// PredictionResponse is the body returned by POST /predict.
type PredictionResponse struct {
	PredictedDurationMinutes float64             `json:"predicted_duration_minutes"`
	Confidence               string              `json:"confidence"`
	ModelUsed                bool                `json:"model_used"`
	Fallback                 bool                `json:"fallback,omitempty"`
	Features                 *PredictionFeatures `json:"features,omitempty"`
}

// PredictionError is the handler-level failure response. It carries a generic
// fallback duration so callers always receive a usable estimate.
type PredictionError struct {
	Error                    string  `json:"error"`
	PredictedDurationMinutes float64 `json:"predicted_duration_minutes"`
	Confidence               string  `json:"confidence"`
	ModelUsed                bool    `json:"model_used"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
