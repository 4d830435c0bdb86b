// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package database

import (
	"errors"
	"io"
)

// ErrMarkerNotFound is returned when an operation references a marker id
// that does not exist. Handlers map it to a 404 response.
var ErrMarkerNotFound = errors.New("marker not found")

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
