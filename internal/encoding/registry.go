// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package encoding

import (
	"errors"
	"fmt"

	"github.com/chairtime/chairtime/internal/models"
)

// ErrUnknownCategory is returned by Encode for a value never seen during
// fit. Serving catches this per feature and falls back to the static maps;
// it must never reach the caller.
var ErrUnknownCategory = errors.New("unknown category")

// Encoder maps a categorical value to its integer code.
type Encoder interface {
	Encode(value string) (int, error)
}

// Registry holds the categorical-to-integer mapping for each feature of one
// training round. It is created fresh by Fit, never mutated afterwards, and
// superseded entirely by the next round's registry.
type Registry struct {
	mappings map[string]map[string]int
}

// Fit builds a Registry from the ordered corpus. Each distinct observed
// value of each named feature is assigned the next integer code in
// first-seen order, so fitting twice on the same ordered input yields
// identical mappings.
func Fit(records []models.TrainingRecord, featureNames []string) *Registry {
	r := &Registry{mappings: make(map[string]map[string]int, len(featureNames))}
	for _, feature := range featureNames {
		r.mappings[feature] = make(map[string]int)
	}

	for i := range records {
		for _, feature := range featureNames {
			value := records[i].FeatureValue(feature)
			m := r.mappings[feature]
			if _, seen := m[value]; !seen {
				m[value] = len(m)
			}
		}
	}

	return r
}

// FromMappings reconstructs a Registry from persisted artifact mappings.
func FromMappings(mappings map[string]map[string]int) *Registry {
	if mappings == nil {
		mappings = make(map[string]map[string]int)
	}
	return &Registry{mappings: mappings}
}

// Encode returns the code for a previously-seen value of the named feature.
func (r *Registry) Encode(feature, value string) (int, error) {
	m, ok := r.mappings[feature]
	if !ok {
		return 0, fmt.Errorf("%w: no mapping for feature %q", ErrUnknownCategory, feature)
	}
	code, ok := m[value]
	if !ok {
		return 0, fmt.Errorf("%w: feature %q value %q", ErrUnknownCategory, feature, value)
	}
	return code, nil
}

// HasFeature reports whether the registry holds a non-empty mapping for the
// named feature.
func (r *Registry) HasFeature(feature string) bool {
	return len(r.mappings[feature]) > 0
}

// Mappings returns the underlying value-to-code maps for persistence in the
// model artifact. The result must be treated as read-only.
func (r *Registry) Mappings() map[string]map[string]int {
	return r.mappings
}

// TrainedEncoder adapts one feature of a Registry to the Encoder interface.
type TrainedEncoder struct {
	feature  string
	registry *Registry
}

// NewTrainedEncoder returns an Encoder for the named feature backed by the
// fitted registry.
func NewTrainedEncoder(registry *Registry, feature string) *TrainedEncoder {
	return &TrainedEncoder{feature: feature, registry: registry}
}

// Encode implements Encoder.
func (e *TrainedEncoder) Encode(value string) (int, error) {
	return e.registry.Encode(e.feature, value)
}
