// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

package config

import (
	"fmt"
	"time"
)

// Config is the complete runtime configuration for all Chairtime binaries.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Model     ModelConfig     `koanf:"model"`
	Bootstrap BootstrapConfig `koanf:"bootstrap"`
	Store     StoreConfig     `koanf:"store"`
	Training  TrainingConfig  `koanf:"training"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// ModelConfig holds the artifact locations.
type ModelConfig struct {
	Path       string `koanf:"path"`
	BackupPath string `koanf:"backup_path"`
}

// BootstrapConfig holds the synthetic CSV sources used before any observed
// data exists. Primary files are loaded in order; the legacy file is read
// only when no primary file is present.
type BootstrapConfig struct {
	Primary []string `koanf:"primary"`
	Legacy  string   `koanf:"legacy"`
}

// StoreConfig holds the MongoDB connection settings for observed outcomes.
// An empty URI disables the store and retraining runs bootstrap-only.
type StoreConfig struct {
	URI        string        `koanf:"uri"`
	Database   string        `koanf:"database"`
	Collection string        `koanf:"collection"`
	Timeout    time.Duration `koanf:"timeout"`
}

// TrainingConfig holds the retraining gate.
type TrainingConfig struct {
	MinSamples int `koanf:"min_samples"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks the configuration for values that would only fail later
// at an inconvenient time.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("model.path must not be empty")
	}
	if c.Model.BackupPath == "" {
		return fmt.Errorf("model.backup_path must not be empty")
	}
	if c.Model.Path == c.Model.BackupPath {
		return fmt.Errorf("model.path and model.backup_path must differ")
	}
	if c.Training.MinSamples < 1 {
		return fmt.Errorf("training.min_samples must be at least 1, got %d", c.Training.MinSamples)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q must be json or console", c.Logging.Format)
	}
	return nil
}
