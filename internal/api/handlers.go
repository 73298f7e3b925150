// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/chairtime/chairtime/internal/metrics"
	"github.com/chairtime/chairtime/internal/models"
	"github.com/chairtime/chairtime/internal/predict"
	"github.com/chairtime/chairtime/internal/validation"
)

// Handler holds the prediction endpoints.
type Handler struct {
	svc *predict.Service
	log zerolog.Logger
}

// NewHandler returns a handler backed by the given prediction service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(svc *predict.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: logger.With().Str("component", "api").Logger(),
	}
}

// Predict handles POST /predict.
//
// Every failure path responds with a PredictionError carrying the generic
// fallback duration; the endpoint never returns an empty error body and a
// panic in one request never takes down the server.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().Interface("panic", rec).Msg("prediction handler panicked")
			respondPredictionError(w, http.StatusInternalServerError, "Internal server error")
		}
	}()

	var req models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondPredictionError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		respondPredictionError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := h.svc.Predict(&req)
	metrics.ObservePrediction(resp.Confidence, resp.ModelUsed, resp.Fallback, resp.PredictedDurationMinutes)

	h.log.Debug().
		Str("procedure", req.ProcedureType).
		Float64("minutes", resp.PredictedDurationMinutes).
		Str("confidence", resp.Confidence).
		Bool("model_used", resp.ModelUsed).
		Msg("served prediction")

	respondJSON(w, http.StatusOK, resp)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.svc.ModelLoaded(),
	})
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondPredictionError writes the error shape with the generic fallback
// duration so callers always get a usable estimate.
func respondPredictionError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.PredictionError{
		Error:                    message,
		PredictedDurationMinutes: predict.DefaultDurationMinutes,
		Confidence:               models.ConfidenceLow,
		ModelUsed:                false,
	})
}
