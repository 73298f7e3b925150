// Chairtime - Appointment Duration Prediction Service
// Copyright 2026 Chairtime contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chairtime/chairtime

// Package artifact defines the versioned model artifact and the publish
// protocol that replaces it safely.
//
// An artifact bundles the fitted model, the encoder registry mappings, the
// round's evaluation metrics and a sortable version into one JSON file.
// Exactly one artifact is current on disk at any time; the immediately
// prior artifact occupies a single backup slot. Publish copies current to
// backup, then writes the new artifact atomically, restoring the backup on
// failure. There is no history beyond the one backup generation: two
// consecutive failed publishes can lose recoverability, a deliberate
// space/simplicity trade-off.
package artifact
