// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package services

import (
	"context"
	"time"

	"github.com/tyremark/tyremark/internal/logging"
)

// Checkpointer is satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService periodically forces a database checkpoint so the WAL
// stays small even during long read-only stretches. Write paths already
// checkpoint synchronously; this loop covers idle periods.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	name     string
}

// NewCheckpointService creates a checkpoint loop with the given interval.
// An interval <= 0 falls back to 5 minutes.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CheckpointService{
		db:       db,
		interval: interval,
		name:     "db-checkpoint",
	}
}

// Serve implements suture.Service. A failed checkpoint is logged and
// retried on the next tick rather than crashing the service; the storage
// supervisor would only restart us into the same ticker loop anyway.
func (s *CheckpointService) Serve(ctx context.Context) error {
	logger := logging.WithComponent("checkpoint")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.db.Checkpoint(ctx); err != nil {
				logger.Warn().Err(err).Msg("Periodic checkpoint failed")
				continue
			}
			logger.Debug().Msg("Periodic checkpoint complete")
		}
	}
}

// String implements fmt.Stringer for suture log messages.
func (s *CheckpointService) String() string {
	return s.name
}
