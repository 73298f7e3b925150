// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chairtime/chairtime/internal/artifact"
	"github.com/chairtime/chairtime/internal/ingest"
	"github.com/chairtime/chairtime/internal/logging"
	"github.com/chairtime/chairtime/internal/models"
	"github.com/chairtime/chairtime/internal/trainer"
)

type fakeStore struct {
	records  []models.TrainingRecord
	oids     []primitive.ObjectID
	fetchErr error

	marked  []primitive.ObjectID
	markErr error
}

func (f *fakeStore) FetchUnconsumed(context.Context) ([]models.TrainingRecord, []primitive.ObjectID, error) {
	return f.records, f.oids, f.fetchErr
}

func (f *fakeStore) MarkConsumed(_ context.Context, oids []primitive.ObjectID) error {
	f.marked = append(f.marked, oids...)
	return f.markErr
}

type fakePublisher struct {
	published int
	err       error
}

func (f *fakePublisher) Publish(*trainer.Model, map[string]map[string]int, trainer.Metrics) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published++
	return "20260101_120000", nil
}

var (
	procedures = []string{"cleaning", "extraction", "filling", "crown", "checkup", "root canal"}
	patients   = []string{"Adult", "Child"}
	days       = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	periods    = []string{"Morning", "Afternoon", "Evening"}
)

// observedCorpus builds n records with varied categoricals so the regression
// design matrix has full rank.
func observedCorpus(n int) ([]models.TrainingRecord, []primitive.ObjectID) {
	rng := rand.New(rand.NewSource(3)) //nolint:gosec // test fixture
	records := make([]models.TrainingRecord, n)
	oids := make([]primitive.ObjectID, n)
	for i := range records {
		p, a, d, t := rng.Intn(len(procedures)), rng.Intn(len(patients)), rng.Intn(len(days)), rng.Intn(len(periods))
		records[i] = models.TrainingRecord{
			RecordID:              fmt.Sprintf("apt_%d", i),
			ProcedureType:         procedures[p],
			PatientType:           patients[a],
			DayOfWeek:             days[d],
			TimePeriod:            periods[t],
			ActualDurationMinutes: float64(20 + 7*p + 10*a + 2*d + 3*t),
		}
		oids[i] = primitive.NewObjectID()
	}
	return records, oids
}

// writeBootstrapCSV writes n synthetic rows and returns the file path.
func writeBootstrapCSV(t *testing.T, n int) string {
	t.Helper()
	rng := rand.New(rand.NewSource(5)) //nolint:gosec // test fixture
	var b strings.Builder
	b.WriteString("service_type,patient_type,day_of_week,appointment_time,avg_duration\n")
	for i := 0; i < n; i++ {
		p, a, d, tp := rng.Intn(len(procedures)), rng.Intn(len(patients)), rng.Intn(len(days)), rng.Intn(len(periods))
		fmt.Fprintf(&b, "%s,%s,%s,%s,%d\n", procedures[p], patients[a], days[d], periods[tp], 20+7*p+10*a+2*d+3*tp)
	}
	path := filepath.Join(t.TempDir(), "durations.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write bootstrap csv: %v", err)
	}
	return path
}

func newLoader(t *testing.T, paths ...string) *ingest.BootstrapLoader {
	t.Helper()
	return ingest.NewBootstrapLoader(paths, "", logging.NewTestLogger(os.Stderr))
}

func TestRunTrainsOnObservedAndMarksConsumed(t *testing.T) {
	records, oids := observedCorpus(80)
	store := &fakeStore{records: records, oids: oids}
	pub := &fakePublisher{}
	// Bootstrap data present but must be ignored: observed wins exclusively.
	p := New(store, newLoader(t, writeBootstrapCSV(t, 60)), pub, 0, logging.NewTestLogger(os.Stderr))

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Outcome != OutcomeTrained {
		t.Errorf("Outcome = %v, want trained", res.Outcome)
	}
	if res.Source != ingest.SourceObserved {
		t.Errorf("Source = %v, want observed", res.Source)
	}
	if res.Samples != 80 {
		t.Errorf("Samples = %d, want 80", res.Samples)
	}
	if res.Version == "" {
		t.Error("Version is empty after a trained round")
	}
	if pub.published != 1 {
		t.Errorf("published %d times, want 1", pub.published)
	}
	if len(store.marked) != len(oids) {
		t.Errorf("marked %d records, want %d", len(store.marked), len(oids))
	}
}

func TestRunFallsBackToBootstrap(t *testing.T) {
	pub := &fakePublisher{}
	p := New(nil, newLoader(t, writeBootstrapCSV(t, 60)), pub, 0, logging.NewTestLogger(os.Stderr))

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Outcome != OutcomeTrained || res.Source != ingest.SourceBootstrap {
		t.Errorf("Outcome/Source = %v/%v, want trained/bootstrap", res.Outcome, res.Source)
	}
	if res.Metrics.TrainSamples+res.Metrics.TestSamples != 60 {
		t.Errorf("train+test samples = %d, want 60", res.Metrics.TrainSamples+res.Metrics.TestSamples)
	}
}

func TestRunBootstrapOnFetchError(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("mongo down")}
	p := New(store, newLoader(t, writeBootstrapCSV(t, 60)), &fakePublisher{}, 0, logging.NewTestLogger(os.Stderr))

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Source != ingest.SourceBootstrap {
		t.Errorf("Source = %v, want bootstrap fallback on fetch error", res.Source)
	}
	if len(store.marked) != 0 {
		t.Error("marked records despite training on bootstrap")
	}
}

func TestRunSkipsBelowMinimum(t *testing.T) {
	records, oids := observedCorpus(30)
	store := &fakeStore{records: records, oids: oids}
	pub := &fakePublisher{}
	p := New(store, newLoader(t), pub, 0, logging.NewTestLogger(os.Stderr))

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Outcome != OutcomeSkippedInsufficient {
		t.Errorf("Outcome = %v, want skipped_insufficient_data", res.Outcome)
	}
	if pub.published != 0 {
		t.Error("published an artifact on a skipped round")
	}
	if len(store.marked) != 0 {
		t.Error("consumed records on a skipped round")
	}
}

func TestRunSkipsWithNoData(t *testing.T) {
	p := New(nil, newLoader(t), &fakePublisher{}, 0, logging.NewTestLogger(os.Stderr))

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcome != OutcomeSkippedNoData || res.Source != ingest.SourceNone {
		t.Errorf("Outcome/Source = %v/%v, want skipped_no_data/none", res.Outcome, res.Source)
	}
}

func TestRunPublishFailureDoesNotConsume(t *testing.T) {
	records, oids := observedCorpus(80)
	store := &fakeStore{records: records, oids: oids}
	pub := &fakePublisher{err: artifact.ErrPublishFailed}
	p := New(store, newLoader(t), pub, 0, logging.NewTestLogger(os.Stderr))

	_, err := p.Run(context.Background())
	if !errors.Is(err, artifact.ErrPublishFailed) {
		t.Fatalf("err = %v, want ErrPublishFailed", err)
	}
	if len(store.marked) != 0 {
		t.Error("consumed records after a failed publish")
	}
}

func TestRunDedupsBeforeGate(t *testing.T) {
	records, oids := observedCorpus(60)
	// Duplicate every record id once; dedup must bring the corpus back to 60.
	dupes := append(append([]models.TrainingRecord{}, records...), records...)
	store := &fakeStore{records: dupes, oids: append(oids, oids...)}
	p := New(store, newLoader(t), &fakePublisher{}, 0, logging.NewTestLogger(os.Stderr))

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Samples != 60 {
		t.Errorf("Samples = %d, want 60 after dedup", res.Samples)
	}
	// Every fetched document is consumed, duplicates included.
	if len(store.marked) != 120 {
		t.Errorf("marked %d, want 120", len(store.marked))
	}
}
