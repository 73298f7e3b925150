// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"

	"github.com/chairtime/chairtime/internal/trainer"
)

func testModel() *trainer.Model {
	return &trainer.Model{
		FeatureNames: []string{"procedureType", "patientType", "dayOfWeek", "timePeriod"},
		Weights:      []float64{8, 5, 2, 3},
		Bias:         20,
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	encoders := map[string]map[string]int{
		"procedureType": {"cleaning": 0, "extraction": 1},
	}
	art := Artifact{
		Model:    testModel(),
		Encoders: encoders,
		Metrics:  trainer.Metrics{TestMAE: 4.2, TestR2: 0.9, TrainSamples: 80, TestSamples: 20},
		Version:  "20260101_120000",
	}
	data, err := json.Marshal(&art)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Version != "20260101_120000" {
		t.Errorf("Version = %q", got.Version)
	}
	if got.Encoders["procedureType"]["extraction"] != 1 {
		t.Errorf("encoder mapping not preserved: %v", got.Encoders)
	}
	if got.Model.Bias != 20 {
		t.Errorf("Bias = %v, want 20", got.Model.Bias)
	}
}

func TestLoadLegacyBareModel(t *testing.T) {
	// A legacy file holds only the model, with no encoder/metrics wrapper.
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	data, err := json.Marshal(testModel())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Model == nil || got.Model.Bias != 20 {
		t.Fatalf("legacy model not loaded: %+v", got)
	}
	if got.Encoders == nil || len(got.Encoders) != 0 {
		t.Errorf("Encoders = %v, want empty map", got.Encoders)
	}
	if got.Version != "" {
		t.Errorf("Version = %q, want empty for legacy artifact", got.Version)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("err = nil, want read error")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("err = nil, want corrupt artifact error")
	}
}
