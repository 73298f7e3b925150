// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package trainer

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

// linearCorpus builds n samples whose target is an exact linear function of
// four small integer codes, mimicking an encoded appointment corpus. Codes
// are drawn from a fixed-seed source so the columns are independent and the
// corpus is identical across runs.
func linearCorpus(n int) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test fixture
	features := make([][]float64, n)
	targets := make([]float64, n)
	for i := 0; i < n; i++ {
		f := []float64{
			float64(rng.Intn(6)), // procedure code
			float64(rng.Intn(2)), // patient code
			float64(rng.Intn(7)), // day code
			float64(rng.Intn(3)), // period code
		}
		features[i] = f
		targets[i] = 20 + 8*f[0] + 5*f[1] + 2*f[2] + 3*f[3]
	}
	return features, targets
}

var featureNames = []string{"procedureType", "patientType", "dayOfWeek", "timePeriod"}

func TestTrainRecoversLinearRelationship(t *testing.T) {
	features, targets := linearCorpus(100)

	model, metrics, err := Train(features, targets, featureNames)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if metrics.TrainSamples != 80 || metrics.TestSamples != 20 {
		t.Errorf("split = %d/%d, want 80/20", metrics.TrainSamples, metrics.TestSamples)
	}

	// The corpus is exactly linear, so the fit should be near-perfect.
	if metrics.TestMAE > 0.5 {
		t.Errorf("TestMAE = %v, want near 0", metrics.TestMAE)
	}
	if metrics.TestR2 < 0.99 {
		t.Errorf("TestR2 = %v, want near 1", metrics.TestR2)
	}

	pred, err := model.Predict([]float64{3, 1, 4, 2})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	want := 20.0 + 8*3 + 5*1 + 2*4 + 3*2
	if math.Abs(pred-want) > 1.0 {
		t.Errorf("Predict = %v, want ~%v", pred, want)
	}
}

func TestTrainIsReproducible(t *testing.T) {
	features, targets := linearCorpus(60)

	m1, x1, err := Train(features, targets, featureNames)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	m2, x2, err := Train(features, targets, featureNames)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if !reflect.DeepEqual(m1, m2) {
		t.Errorf("models differ across identical runs:\n%+v\n%+v", m1, m2)
	}
	if x1 != x2 {
		t.Errorf("metrics differ across identical runs:\n%+v\n%+v", x1, x2)
	}
}

func TestTrainTooFewSamples(t *testing.T) {
	features, targets := linearCorpus(4)
	if _, _, err := Train(features, targets, featureNames); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("err = %v, want ErrTooFewSamples", err)
	}
}

func TestTrainLengthMismatch(t *testing.T) {
	features, targets := linearCorpus(60)
	if _, _, err := Train(features, targets[:59], featureNames); err == nil {
		t.Error("err = nil, want length mismatch error")
	}
}

func TestModelPredictFeatureCountMismatch(t *testing.T) {
	m := &Model{FeatureNames: featureNames, Weights: []float64{1, 2, 3, 4}, Bias: 5}
	if _, err := m.Predict([]float64{1, 2}); err == nil {
		t.Error("err = nil, want feature count mismatch")
	}
}
