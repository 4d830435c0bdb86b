// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package api

import (
	"time"

	"github.com/tyremark/tyremark/internal/config"
	"github.com/tyremark/tyremark/internal/database"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	db        *database.DB
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler backed by the given database.
func NewHandler(db *database.DB, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		config:    cfg,
		startTime: time.Now(),
	}
}
