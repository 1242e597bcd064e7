// Package stats holds the numeric routines behind the menu analyses:
// medians and centiles, Kendall rank correlation, k-means clustering and
// the narration of correlation results.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the middle value of xs, averaging the two middle values
// when len(xs) is even. An empty slice has median 0. xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Centile returns the percentage of values less than or equal to x.
// In this dataset a higher centile means a higher disease rate.
func Centile(values []float64, x float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if v <= x {
			n++
		}
	}
	return 100 * float64(n) / float64(len(values))
}

// ZScores standardises xs to mean 0 and unit sample standard deviation.
// A constant series maps to all zeros.
func ZScores(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) < 2 {
		return out
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if std == 0 || math.IsNaN(std) {
		return out
	}
	for i, x := range xs {
		out[i] = (x - mean) / std
	}
	return out
}
