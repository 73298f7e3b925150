// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package artifact

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/chairtime/chairtime/internal/trainer"
)

// VersionLayout formats a trained-at timestamp into a version string that
// sorts by creation time.
const VersionLayout = "20060102_150405"

// Artifact is the atomic publishable unit: the fitted model, the encoder
// mappings it was trained against, the round's metrics and a version.
// Read-only once written.
type Artifact struct {
	Model     *trainer.Model            `json:"model"`
	Encoders  map[string]map[string]int `json:"encoders"`
	Metrics   trainer.Metrics           `json:"metrics"`
	TrainedAt time.Time                 `json:"trained_at"`
	Version   string                    `json:"version"`
}

// Load reads an artifact from disk.
//
// Readers must treat the file as a dict: a legacy file holding only a bare
// model with no encoder/metrics wrapper is accepted and yields an artifact
// with empty encoders, which serving covers with the static fallback maps.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err == nil && art.Model != nil {
		if art.Encoders == nil {
			art.Encoders = make(map[string]map[string]int)
		}
		return &art, nil
	}

	// Legacy case: the file holds the model directly.
	var model trainer.Model
	if err := json.Unmarshal(data, &model); err != nil || len(model.Weights) == 0 {
		return nil, fmt.Errorf("corrupt artifact %s", path)
	}
	return &Artifact{
		Model:    &model,
		Encoders: make(map[string]map[string]int),
	}, nil
}
