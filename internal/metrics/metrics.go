// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chairtime_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chairtime_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	// Prediction metrics.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chairtime_predictions_total",
			Help: "Total number of predictions served",
		},
		[]string{"confidence", "model_used"},
	)

	PredictedDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chairtime_predicted_duration_minutes",
			Help:    "Distribution of predicted appointment durations in minutes",
			Buckets: []float64{10, 20, 30, 45, 60, 90, 120, 180},
		},
	)

	FallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chairtime_prediction_fallbacks_total",
			Help: "Predictions that needed a static or keyword fallback",
		},
	)

	// Model state metrics.
	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chairtime_model_loaded",
			Help: "Whether a model artifact is live (1) or the service is degraded (0)",
		},
	)
)

// ObservePrediction records one served prediction.
func ObservePrediction(confidence string, modelUsed, fallback bool, durationMinutes float64) {
	used := "false"
	if modelUsed {
		used = "true"
	}
	PredictionsTotal.WithLabelValues(confidence, used).Inc()
	PredictedDuration.Observe(durationMinutes)
	if fallback {
		FallbacksTotal.Inc()
	}
}
