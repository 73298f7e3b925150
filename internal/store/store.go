// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chairtime/chairtime/internal/models"
)

// MarkBatchSize caps the number of ids per consumption update, keeping each
// filter document well under the server's 16MB document limit.
const MarkBatchSize = 500

// ErrNotConfigured is returned by Connect when no MongoDB URI is set.
// Retraining treats this as "no observed source available", not a failure.
var ErrNotConfigured = errors.New("training store not configured")

// Config holds the MongoDB connection settings for the training collection.
type Config struct {
	URI        string        `koanf:"uri"`
	Database   string        `koanf:"database"`
	Collection string        `koanf:"collection"`
	Timeout    time.Duration `koanf:"timeout"`
}

// Store is a handle to the observed-outcome training collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection

	log zerolog.Logger
}

// Connect opens and pings the MongoDB deployment. An empty URI yields
// ErrNotConfigured so callers can run bootstrap-only.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Connect(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	if cfg.URI == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		log:    logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close releases the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// observedDoc is the raw collection shape: the training record fields plus
// the Mongo object id, which backs the dedup key for documents written
// without an appointmentId.
type observedDoc struct {
	OID                   primitive.ObjectID `bson:"_id"`
	models.TrainingRecord `bson:",inline"`
}

// FetchUnconsumed returns every record not yet used for training, normalized,
// together with the parallel slice of object ids to pass to MarkConsumed.
// Records lacking an appointmentId get a synthetic id from the object id so
// dedup stays stable across fetches.
func (s *Store) FetchUnconsumed(ctx context.Context) ([]models.TrainingRecord, []primitive.ObjectID, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"usedForTraining": false})
	if err != nil {
		return nil, nil, fmt.Errorf("find unconsumed: %w", err)
	}

	var docs []observedDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, nil, fmt.Errorf("decode unconsumed: %w", err)
	}

	records := make([]models.TrainingRecord, 0, len(docs))
	oids := make([]primitive.ObjectID, 0, len(docs))
	for i := range docs {
		rec := docs[i].TrainingRecord
		if rec.RecordID == "" {
			rec.RecordID = "store_" + docs[i].OID.Hex()
		}
		rec.Normalize()
		records = append(records, rec)
		oids = append(oids, docs[i].OID)
	}

	s.log.Info().Int("records", len(records)).Msg("fetched unconsumed training records")
	return records, oids, nil
}

// FetchAll returns up to limit records from the collection regardless of
// consumption state, normalized. limit <= 0 means no limit. Read-only; used
// by the export tool.
func (s *Store) FetchAll(ctx context.Context, limit int64) ([]models.TrainingRecord, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}

	var docs []observedDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	records := make([]models.TrainingRecord, 0, len(docs))
	for i := range docs {
		rec := docs[i].TrainingRecord
		if rec.RecordID == "" {
			rec.RecordID = "store_" + docs[i].OID.Hex()
		}
		rec.Normalize()
		records = append(records, rec)
	}
	return records, nil
}

// MarkConsumed flags the given documents as used for training, in batches.
// A mid-batch failure leaves earlier batches marked; those records are
// simply gone from future rounds, which at-most-once consumption permits.
func (s *Store) MarkConsumed(ctx context.Context, oids []primitive.ObjectID) error {
	for _, batch := range batchOIDs(oids, MarkBatchSize) {
		res, err := s.coll.UpdateMany(ctx,
			bson.M{"_id": bson.M{"$in": batch}},
			bson.M{"$set": bson.M{"usedForTraining": true}},
		)
		if err != nil {
			return fmt.Errorf("mark consumed: %w", err)
		}
		s.log.Debug().Int64("modified", res.ModifiedCount).Msg("marked batch consumed")
	}
	s.log.Info().Int("records", len(oids)).Msg("marked training records consumed")
	return nil
}

// batchOIDs splits ids into chunks of at most size elements, preserving
// order.
func batchOIDs(oids []primitive.ObjectID, size int) [][]primitive.ObjectID {
	if size <= 0 || len(oids) == 0 {
		return nil
	}
	batches := make([][]primitive.ObjectID, 0, (len(oids)+size-1)/size)
	for start := 0; start < len(oids); start += size {
		end := start + size
		if end > len(oids) {
			end = len(oids)
		}
		batches = append(batches, oids[start:end])
	}
	return batches
}
