// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package predict

import (
	"strconv"
	"strings"
	"time"

	"github.com/chairtime/chairtime/internal/models"
)

// Time-of-day buckets derived from the appointment clock time.
const (
	PeriodMorning   = "Morning"
	PeriodAfternoon = "Afternoon"
	PeriodEvening   = "Evening"
)

// dateLayouts accepted for appointment_date, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// NormalizeRequest derives the categorical feature tuple from a raw request.
// Must stay in lockstep with TrainingRecord.Normalize; the model only sees
// values produced by this function or by the ingest normalizer.
func NormalizeRequest(req *models.PredictionRequest) models.PredictionFeatures {
	patient := strings.TrimSpace(req.PatientType)
	if patient == "" {
		patient = models.DefaultPatientType
	}
	return models.PredictionFeatures{
		ProcedureType: strings.ToLower(strings.TrimSpace(req.ProcedureType)),
		PatientType:   patient,
		DayOfWeek:     DayOfWeekFromDate(req.AppointmentDate),
		TimePeriod:    TimePeriodFromClock(req.AppointmentTime),
	}
}

// DayOfWeekFromDate resolves an ISO date or RFC 3339 timestamp to a weekday
// name. Absent or unparseable dates yield the Monday default.
func DayOfWeekFromDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return models.DefaultDayOfWeek
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Weekday().String()
		}
	}
	return models.DefaultDayOfWeek
}

// TimePeriodFromClock buckets a clock time into Morning [5,12), Afternoon
// [12,17) or Evening (everything else, wrapping through the night).
//
// Accepts "H:MM AM/PM" and 24-hour "HH:MM". A 12-hour "12" maps to 0 for AM
// and stays 12 for PM. Absent or unparseable values yield the Afternoon
// default rather than an error; time of day is a soft signal.
func TimePeriodFromClock(clock string) string {
	upper := strings.ToUpper(strings.TrimSpace(clock))
	if upper == "" {
		return models.DefaultTimePeriod
	}

	pm := strings.Contains(upper, "PM")
	am := strings.Contains(upper, "AM")

	hourPart := upper
	if i := strings.IndexAny(upper, ": "); i >= 0 {
		hourPart = upper[:i]
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return models.DefaultTimePeriod
	}

	switch {
	case pm && hour != 12:
		hour += 12
	case am && hour == 12:
		hour = 0
	}

	switch {
	case hour >= 5 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 17:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}
