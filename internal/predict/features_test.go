// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package predict

import (
	"testing"

	"github.com/chairtime/chairtime/internal/models"
)

func TestTimePeriodFromClock(t *testing.T) {
	tests := []struct {
		clock string
		want  string
	}{
		{"9:00 AM", PeriodMorning},
		{"5:00 AM", PeriodMorning},
		{"11:59 AM", PeriodMorning},
		{"12:00 PM", PeriodAfternoon},
		{"2:00 PM", PeriodAfternoon},
		{"4:59 PM", PeriodAfternoon},
		{"5:00 PM", PeriodEvening},
		{"8:00 PM", PeriodEvening},
		{"12:00 AM", PeriodEvening},
		{"4:00 AM", PeriodEvening},
		{"14:30", PeriodAfternoon},
		{"09:15", PeriodMorning},
		{"17:00", PeriodEvening},
		{"00:30", PeriodEvening},
		{"", PeriodAfternoon},
		{"noonish", PeriodAfternoon},
		{"25:00", PeriodAfternoon},
		{"  9:00 am  ", PeriodMorning},
	}
	for _, tt := range tests {
		if got := TimePeriodFromClock(tt.clock); got != tt.want {
			t.Errorf("TimePeriodFromClock(%q) = %q, want %q", tt.clock, got, tt.want)
		}
	}
}

func TestDayOfWeekFromDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-15", "Monday"},
		{"2024-01-20", "Saturday"},
		{"2024-01-16T09:30:00Z", "Tuesday"},
		{"", models.DefaultDayOfWeek},
		{"not-a-date", models.DefaultDayOfWeek},
		{"15/01/2024", models.DefaultDayOfWeek},
	}
	for _, tt := range tests {
		if got := DayOfWeekFromDate(tt.date); got != tt.want {
			t.Errorf("DayOfWeekFromDate(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestNormalizeRequest(t *testing.T) {
	req := &models.PredictionRequest{
		ProcedureType:   "  Root Canal ",
		PatientType:     "",
		AppointmentDate: "2024-01-17",
		AppointmentTime: "10:00 AM",
	}

	got := NormalizeRequest(req)

	want := models.PredictionFeatures{
		ProcedureType: "root canal",
		PatientType:   models.DefaultPatientType,
		DayOfWeek:     "Wednesday",
		TimePeriod:    PeriodMorning,
	}
	if got != want {
		t.Errorf("NormalizeRequest = %+v, want %+v", got, want)
	}
}

func TestNormalizeRequestDefaultsOnEmptyOptionals(t *testing.T) {
	got := NormalizeRequest(&models.PredictionRequest{ProcedureType: "Cleaning", PatientType: "Child"})

	if got.DayOfWeek != models.DefaultDayOfWeek {
		t.Errorf("DayOfWeek = %q, want default", got.DayOfWeek)
	}
	if got.TimePeriod != models.DefaultTimePeriod {
		t.Errorf("TimePeriod = %q, want default", got.TimePeriod)
	}
	if got.PatientType != "Child" {
		t.Errorf("PatientType = %q, want Child", got.PatientType)
	}
}
