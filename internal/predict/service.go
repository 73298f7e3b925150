// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package predict

import (
	"errors"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chairtime/chairtime/internal/artifact"
	"github.com/chairtime/chairtime/internal/encoding"
	"github.com/chairtime/chairtime/internal/models"
)

// State of the prediction service.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoaded   State = "loaded"
	StateDegraded State = "degraded"
)

// Duration bounds applied to every model output, in minutes.
const (
	MinDurationMinutes = 10
	MaxDurationMinutes = 180
)

// Service answers prediction requests from the loaded model artifact, or
// from the keyword table when no artifact could be loaded at startup.
type Service struct {
	mu       sync.RWMutex
	state    State
	art      *artifact.Artifact
	registry *encoding.Registry

	log zerolog.Logger
}

// NewService loads the artifact at the given path and returns a service in
// Loaded state, or in Degraded state if the artifact is missing or corrupt.
// Load failure is not an error: the service always starts and always answers.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(artifactPath string, logger zerolog.Logger) *Service {
	s := &Service{
		state: StateUnloaded,
		log:   logger.With().Str("component", "predict").Logger(),
	}

	art, err := artifact.Load(artifactPath)
	if err != nil {
		s.state = StateDegraded
		s.log.Warn().Err(err).Str("path", artifactPath).
			Msg("model artifact unavailable, serving keyword estimates")
		return s
	}

	s.art = art
	s.registry = encoding.FromMappings(art.Encoders)
	s.state = StateLoaded
	s.log.Info().
		Str("version", art.Version).
		Float64("test_mae", art.Metrics.TestMAE).
		Msg("model artifact loaded")
	return s
}

// State returns the current service state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ModelLoaded reports whether a model artifact is live.
func (s *Service) ModelLoaded() bool {
	return s.State() == StateLoaded
}

// Version returns the loaded artifact's version, or the empty string.
func (s *Service) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.art == nil {
		return ""
	}
	return s.art.Version
}

// Predict answers one request. It never fails: in Degraded state or when the
// model rejects the feature vector the response falls back to the keyword
// table with low confidence.
func (s *Service) Predict(req *models.PredictionRequest) models.PredictionResponse {
	features := NormalizeRequest(req)

	s.mu.RLock()
	state := s.state
	art := s.art
	registry := s.registry
	s.mu.RUnlock()

	if state != StateLoaded {
		return degradedResponse(features)
	}

	vector := s.encode(registry, features)

	raw, err := art.Model.Predict(vector)
	if err != nil {
		s.log.Error().Err(err).Msg("model rejected feature vector")
		return degradedResponse(features)
	}

	// Static per-feature encoding is part of normal Loaded serving: the
	// model still ran, so the answer is a full-confidence model answer.
	// The fallback flag marks degraded keyword answers only.
	return models.PredictionResponse{
		PredictedDurationMinutes: clamp(raw),
		Confidence:               models.ConfidenceHigh,
		ModelUsed:                true,
		Features:                 &features,
	}
}

// encode maps the normalized features to the model's input vector. Values
// the fitted registry has never seen are encoded through the static maps
// instead, per feature.
func (s *Service) encode(registry *encoding.Registry, features models.PredictionFeatures) []float64 {
	values := map[string]string{
		models.FeatureProcedureType: features.ProcedureType,
		models.FeaturePatientType:   features.PatientType,
		models.FeatureDayOfWeek:     features.DayOfWeek,
		models.FeatureTimePeriod:    features.TimePeriod,
	}

	vector := make([]float64, 0, len(values))
	for _, feature := range models.FeatureNames() {
		value := values[feature]
		code, err := registry.Encode(feature, value)
		if errors.Is(err, encoding.ErrUnknownCategory) {
			code, _ = encoding.NewStaticFallbackEncoder(feature).Encode(value)
			s.log.Debug().Str("feature", feature).Str("value", value).
				Msg("unseen category, using static fallback code")
		}
		vector = append(vector, float64(code))
	}
	return vector
}

// degradedResponse answers from the keyword table.
func degradedResponse(features models.PredictionFeatures) models.PredictionResponse {
	return models.PredictionResponse{
		PredictedDurationMinutes: DegradedEstimate(features.ProcedureType),
		Confidence:               models.ConfidenceLow,
		ModelUsed:                false,
		Fallback:                 true,
		Features:                 &features,
	}
}

// clamp bounds a raw model output to a plausible appointment length and
// rounds to one decimal place.
func clamp(minutes float64) float64 {
	bounded := math.Max(MinDurationMinutes, math.Min(MaxDurationMinutes, minutes))
	return math.Round(bounded*10) / 10
}
