// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chairtime/chairtime/internal/encoding"
	"github.com/chairtime/chairtime/internal/ingest"
	"github.com/chairtime/chairtime/internal/models"
	"github.com/chairtime/chairtime/internal/trainer"
)

// DefaultMinSamples is the deduplicated corpus size below which a round
// skips instead of training.
const DefaultMinSamples = 50

// TrainingStore is the observed-outcome source. Implemented by store.Store;
// a nil TrainingStore means bootstrap-only operation.
type TrainingStore interface {
	FetchUnconsumed(ctx context.Context) ([]models.TrainingRecord, []primitive.ObjectID, error)
	MarkConsumed(ctx context.Context, oids []primitive.ObjectID) error
}

// ArtifactPublisher persists a trained round. Implemented by
// artifact.Publisher.
type ArtifactPublisher interface {
	Publish(model *trainer.Model, encoders map[string]map[string]int, metrics trainer.Metrics) (string, error)
}

// Outcome classifies how a round ended.
type Outcome string

const (
	OutcomeTrained             Outcome = "trained"
	OutcomeSkippedNoData       Outcome = "skipped_no_data"
	OutcomeSkippedInsufficient Outcome = "skipped_insufficient_data"
)

// Result summarizes one round.
type Result struct {
	Outcome Outcome
	Source  ingest.Source
	Samples int
	Version string
	Metrics trainer.Metrics
}

// Pipeline wires one retraining round's collaborators.
type Pipeline struct {
	Store      TrainingStore
	Bootstrap  *ingest.BootstrapLoader
	Publisher  ArtifactPublisher
	MinSamples int

	log zerolog.Logger
}

// New returns a pipeline. store may be nil for bootstrap-only operation;
// minSamples <= 0 selects the default gate.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(store TrainingStore, bootstrap *ingest.BootstrapLoader, publisher ArtifactPublisher, minSamples int, logger zerolog.Logger) *Pipeline {
	if minSamples <= 0 {
		minSamples = DefaultMinSamples
	}
	return &Pipeline{
		Store:      store,
		Bootstrap:  bootstrap,
		Publisher:  publisher,
		MinSamples: minSamples,
		log:        logger.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes one retraining round.
//
// Skip outcomes return a nil error. A non-nil error means the round failed
// after the gate: training or publishing broke, the previous artifact is
// still live and no records were consumed.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	observed, oids := p.fetchObserved(ctx)
	bootstrap := p.Bootstrap.Load()

	corpus, source := ingest.SelectSource(observed, bootstrap)
	if source == ingest.SourceNone {
		p.log.Warn().Msg("no training data from any source, keeping current artifact")
		return Result{Outcome: OutcomeSkippedNoData, Source: source}, nil
	}

	corpus = ingest.Dedup(corpus)
	if err := ingest.Gate(len(corpus), p.MinSamples); err != nil {
		p.log.Warn().Int("samples", len(corpus)).Int("min", p.MinSamples).
			Str("source", string(source)).Msg("corpus below minimum, keeping current artifact")
		return Result{Outcome: OutcomeSkippedInsufficient, Source: source, Samples: len(corpus)}, nil
	}

	featureNames := models.FeatureNames()
	registry := encoding.Fit(corpus, featureNames)

	features, targets, err := encodeCorpus(registry, corpus, featureNames)
	if err != nil {
		return Result{}, fmt.Errorf("encode corpus: %w", err)
	}

	model, metrics, err := trainer.Train(features, targets, featureNames)
	if err != nil {
		return Result{}, fmt.Errorf("train: %w", err)
	}
	p.log.Info().
		Str("source", string(source)).
		Int("samples", len(corpus)).
		Float64("test_mae", metrics.TestMAE).
		Float64("test_r2", metrics.TestR2).
		Msg("trained model")

	version, err := p.Publisher.Publish(model, registry.Mappings(), metrics)
	if err != nil {
		return Result{}, err
	}

	// Mark only after the new artifact is live. Marking everything fetched,
	// duplicates included, is intentional: the round consumed them all.
	if source == ingest.SourceObserved && p.Store != nil && len(oids) > 0 {
		if err := p.Store.MarkConsumed(ctx, oids); err != nil {
			p.log.Error().Err(err).Msg("failed to mark records consumed; they will be retrained next round")
		}
	}

	return Result{
		Outcome: OutcomeTrained,
		Source:  source,
		Samples: len(corpus),
		Version: version,
		Metrics: metrics,
	}, nil
}

// fetchObserved pulls unconsumed records, treating store absence or fetch
// failure as an empty observed source so the round can still bootstrap.
func (p *Pipeline) fetchObserved(ctx context.Context) ([]models.TrainingRecord, []primitive.ObjectID) {
	if p.Store == nil {
		return nil, nil
	}
	observed, oids, err := p.Store.FetchUnconsumed(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("fetching observed records failed, falling back to bootstrap")
		return nil, nil
	}
	return observed, oids
}

// encodeCorpus builds the feature matrix and target vector in corpus order.
func encodeCorpus(registry *encoding.Registry, corpus []models.TrainingRecord, featureNames []string) ([][]float64, []float64, error) {
	features := make([][]float64, len(corpus))
	targets := make([]float64, len(corpus))
	for i := range corpus {
		row := make([]float64, len(featureNames))
		for j, feature := range featureNames {
			code, err := registry.Encode(feature, corpus[i].FeatureValue(feature))
			if err != nil {
				// The registry was fit on this exact corpus.
				return nil, nil, err
			}
			row[j] = float64(code)
		}
		features[i] = row
		targets[i] = corpus[i].ActualDurationMinutes
	}
	if len(features) == 0 {
		return nil, nil, errors.New("empty corpus after encoding")
	}
	return features, targets, nil
}
