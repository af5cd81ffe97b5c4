// Package stats provides the numeric summaries behind series derivation and
// chart building: percentiles, five-number summaries and sums.
package stats

import (
	"cmp"
	"math"
	"slices"
)

// Quartile positions of the five-number summary.
const (
	PercentileLowerQuartile = 0.25
	PercentileMedian        = 0.5
	PercentileUpperQuartile = 0.75
)

// Percentile returns the p-th percentile of values using linear
// interpolation. p must be in [0, 1]. The input slice is not modified
// (a copy is sorted internally). Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return rankValue(sortedCopy(values), p)
}

// Median returns the 50th percentile of values.
// Returns 0 for an empty slice.
func Median(values []float64) float64 {
	return Percentile(values, PercentileMedian)
}

// FiveNum returns the five-number summary [min, q1, median, q3, max] of
// values, the shape a boxplot consumes. The input slice is not modified.
// Returns nil for an empty slice.
func FiveNum(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := sortedCopy(values)

	return []float64{
		sorted[0],
		rankValue(sorted, PercentileLowerQuartile),
		rankValue(sorted, PercentileMedian),
		rankValue(sorted, PercentileUpperQuartile),
		sorted[len(sorted)-1],
	}
}

// Sum returns the sum of all elements in values.
// Returns the zero value of T for an empty slice.
func Sum[T cmp.Ordered](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	slices.Sort(sorted)

	return sorted
}

// rankValue interpolates linearly between the two nearest ranks of an
// already sorted slice.
func rankValue(sorted []float64, p float64) float64 {
	count := len(sorted)
	idx := p * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper || upper >= count {
		return sorted[lower]
	}

	frac := idx - float64(lower)

	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
