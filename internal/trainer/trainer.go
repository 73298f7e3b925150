// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package trainer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/sajari/regression"
	"gonum.org/v1/gonum/stat"
)

// Fixed training constants. These are deliberately not tunable per round.
const (
	// TestFraction is the held-out share of the corpus used for evaluation.
	TestFraction = 0.2

	// Seed fixes the train/test shuffle so results are reproducible across
	// runs given identical input ordering.
	Seed = 42
)

// ErrTooFewSamples is returned when the corpus cannot produce both a train
// and a test partition.
var ErrTooFewSamples = errors.New("too few samples to train")

// Model is the fitted regressor in its serializable form: a weight per
// encoded feature plus a bias. Once inside an artifact it is read-only.
type Model struct {
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
}

// Predict returns the model output for one encoded feature vector.
func (m *Model) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("feature count mismatch: got %d, model has %d", len(features), len(m.Weights))
	}
	out := m.Bias
	for i, f := range features {
		out += f * m.Weights[i]
	}
	return out, nil
}

// Metrics holds train/test evaluation results for one round.
type Metrics struct {
	TrainMAE     float64 `json:"train_mae"`
	TestMAE      float64 `json:"test_mae"`
	TrainR2      float64 `json:"train_r2"`
	TestR2       float64 `json:"test_r2"`
	TrainSamples int     `json:"train_samples"`
	TestSamples  int     `json:"test_samples"`
}

// Train fits the regressor on the encoded corpus and evaluates it on both
// partitions. features and targets must be the same length and ordered the
// same way the encoder registry was fit.
func Train(features [][]float64, targets []float64, featureNames []string) (*Model, Metrics, error) {
	n := len(features)
	if n != len(targets) {
		return nil, Metrics{}, fmt.Errorf("feature/target length mismatch: %d vs %d", n, len(targets))
	}

	testCount := int(float64(n) * TestFraction)
	trainCount := n - testCount
	if trainCount < len(featureNames)+1 || testCount < 1 {
		return nil, Metrics{}, fmt.Errorf("%w: %d samples", ErrTooFewSamples, n)
	}

	perm := rand.New(rand.NewSource(Seed)).Perm(n) //nolint:gosec // fixed seed for reproducible splits
	trainIdx := perm[:trainCount]
	testIdx := perm[trainCount:]

	var r regression.Regression
	r.SetObserved("actualDurationMinutes")
	for i, name := range featureNames {
		r.SetVar(i, name)
	}
	for _, idx := range trainIdx {
		r.Train(regression.DataPoint(targets[idx], features[idx]))
	}
	if err := r.Run(); err != nil {
		return nil, Metrics{}, fmt.Errorf("regression fit: %w", err)
	}

	coeffs := r.GetCoeffs()
	if len(coeffs) != len(featureNames)+1 {
		return nil, Metrics{}, fmt.Errorf("unexpected coefficient count %d for %d features", len(coeffs), len(featureNames))
	}
	model := &Model{
		FeatureNames: featureNames,
		Bias:         coeffs[0],
		Weights:      coeffs[1:],
	}

	metrics := Metrics{
		TrainSamples: trainCount,
		TestSamples:  testCount,
	}
	metrics.TrainMAE, metrics.TrainR2 = evaluate(model, features, targets, trainIdx)
	metrics.TestMAE, metrics.TestR2 = evaluate(model, features, targets, testIdx)

	return model, metrics, nil
}

// evaluate computes MAE and R2 for the model over the given index subset.
func evaluate(model *Model, features [][]float64, targets []float64, idx []int) (mae, r2 float64) {
	if len(idx) == 0 {
		return 0, 0
	}

	estimates := make([]float64, len(idx))
	actuals := make([]float64, len(idx))
	var absErr float64
	for i, j := range idx {
		pred, err := model.Predict(features[j])
		if err != nil {
			// Lengths were validated by Train; this cannot happen for a
			// corpus that passed the fit.
			continue
		}
		estimates[i] = pred
		actuals[i] = targets[j]
		absErr += math.Abs(pred - targets[j])
	}

	mae = absErr / float64(len(idx))
	if len(idx) > 1 {
		r2 = stat.RSquaredFrom(estimates, actuals, nil)
	}
	return mae, r2
}
