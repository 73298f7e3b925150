// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package artifact

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/chairtime/chairtime/internal/trainer"
)

var (
	// ErrBackupFailed reports a failure while copying the current artifact
	// to the backup slot. The current artifact is untouched.
	ErrBackupFailed = errors.New("artifact backup failed")

	// ErrPublishFailed reports a failure while writing the new artifact.
	// The backup slot has been restored over the current location on a
	// best-effort basis; callers must not assume the new artifact is live.
	ErrPublishFailed = errors.New("artifact publish failed")
)

// Publisher writes artifacts with a single-generation backup slot.
//
// Publish is not safe against concurrent invocations on the same paths;
// retraining runs must be serialized externally.
type Publisher struct {
	Path       string
	BackupPath string

	log zerolog.Logger

	// writeFile is the write seam, replaceable in tests to simulate
	// serialization/write failures.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewPublisher returns a publisher for the given current and backup paths.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPublisher(path, backupPath string, logger zerolog.Logger) *Publisher {
	return &Publisher{
		Path:       path,
		BackupPath: backupPath,
		log:        logger.With().Str("component", "publisher").Logger(),
		writeFile:  os.WriteFile,
	}
}

// Publish atomically replaces the current artifact with a new one built
// from the given model, encoders and metrics, returning the new version.
//
// Sequence: (1) copy current to the backup slot, aborting on failure with
// the current artifact untouched; (2) serialize and write the new artifact
// via a temp file + rename; (3) on write failure, restore the backup over
// the current location best-effort and report ErrPublishFailed.
func (p *Publisher) Publish(model *trainer.Model, encoders map[string]map[string]int, metrics trainer.Metrics) (string, error) {
	// Step 1: back up the current artifact, if one exists.
	current, err := os.ReadFile(p.Path)
	switch {
	case err == nil:
		if werr := p.writeFile(p.BackupPath, current, 0o644); werr != nil {
			return "", fmt.Errorf("%w: %v", ErrBackupFailed, werr)
		}
		p.log.Info().Str("backup", p.BackupPath).Msg("backed up current artifact")
	case os.IsNotExist(err):
		// First publish, nothing to back up.
	default:
		return "", fmt.Errorf("%w: read current artifact: %v", ErrBackupFailed, err)
	}

	// Step 2: serialize and write the new artifact.
	now := time.Now()
	art := Artifact{
		Model:     model,
		Encoders:  encoders,
		Metrics:   metrics,
		TrainedAt: now,
		Version:   now.Format(VersionLayout),
	}

	data, err := json.MarshalIndent(&art, "", "  ")
	if err != nil {
		p.restoreBackup()
		return "", fmt.Errorf("%w: marshal: %v", ErrPublishFailed, err)
	}

	tmp := p.Path + ".tmp"
	if err := p.writeFile(tmp, data, 0o644); err != nil {
		p.restoreBackup()
		return "", fmt.Errorf("%w: write: %v", ErrPublishFailed, err)
	}
	if err := os.Rename(tmp, p.Path); err != nil {
		os.Remove(tmp) //nolint:errcheck // best effort cleanup
		p.restoreBackup()
		return "", fmt.Errorf("%w: rename: %v", ErrPublishFailed, err)
	}

	p.log.Info().
		Str("version", art.Version).
		Float64("test_mae", metrics.TestMAE).
		Float64("test_r2", metrics.TestR2).
		Msg("published model artifact")

	return art.Version, nil
}

// restoreBackup copies the backup slot over the current location. Step 3 of
// the publish sequence; best effort only.
func (p *Publisher) restoreBackup() {
	backup, err := os.ReadFile(p.BackupPath)
	if err != nil {
		p.log.Warn().Err(err).Msg("no backup to restore after failed publish")
		return
	}
	if err := os.WriteFile(p.Path, backup, 0o644); err != nil {
		p.log.Error().Err(err).Msg("failed to restore backup artifact")
		return
	}
	p.log.Warn().Msg("restored backup artifact after failed publish")
}
