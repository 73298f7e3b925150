// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/chairtime/chairtime/internal/config"
	"github.com/chairtime/chairtime/internal/predict"
)

// Router wires the HTTP surface of the prediction service.
type Router struct {
	handler *Handler
	cfg     config.ServerConfig
}

// NewRouter returns a router serving predictions from the given service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(svc *predict.Service, cfg config.ServerConfig, logger zerolog.Logger) *Router {
	return &Router{
		handler: NewHandler(svc, logger),
		cfg:     cfg,
	}
}

// Setup builds the route tree with the global middleware stack.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(PrometheusMetrics)

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.cfg.RateLimitReqs, rt.cfg.RateLimitWindow))
		r.Post("/predict", rt.handler.Predict)
	})

	// Health and metrics stay outside the rate limiter so monitoring
	// cannot be starved by prediction traffic.
	r.Get("/health", rt.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
