// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package analytics

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned by aggregations that have no values to
// work with. Handlers map it to a 422 INSUFFICIENT_DATA response.
var ErrInsufficientData = errors.New("insufficient data")

// Mean returns the arithmetic mean of values.
// An empty input is an error, not zero: a mean of nothing is undefined and
// silently returning 0 would poison downstream annotations.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("mean of empty series: %w", ErrInsufficientData)
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// MaxWithID returns the maximum value and the id associated with it.
// Ties resolve to the first occurrence. Both slices must be index-aligned,
// as produced by the series extractors in this package.
func MaxWithID(values []float64, ids []int64) (float64, int64, error) {
	if len(values) == 0 {
		return 0, 0, fmt.Errorf("max of empty series: %w", ErrInsufficientData)
	}
	if len(values) != len(ids) {
		return 0, 0, fmt.Errorf("series length mismatch: %d values, %d ids", len(values), len(ids))
	}

	maxVal := values[0]
	maxID := ids[0]
	for i := 1; i < len(values); i++ {
		if values[i] > maxVal {
			maxVal = values[i]
			maxID = ids[i]
		}
	}
	return maxVal, maxID, nil
}

// MeanByGroup computes the mean of each group's series.
// Groups whose series is empty are reported via ErrInsufficientData so a
// caller cannot mistake a hole in the data for a zero mean.
func MeanByGroup(groups map[string][]float64) (map[string]float64, error) {
	means := make(map[string]float64, len(groups))
	for name, values := range groups {
		mean, err := Mean(values)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		means[name] = mean
	}
	return means, nil
}
