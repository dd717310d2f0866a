package core

import "math"

// -----------------------------------------------------------------------------

// CalculateMeanStd computes mean and sample standard deviation (N-1).
func CalculateMeanStd(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	// Calculate mean
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	mean := sum / float64(len(data))

	// A single observation has no dispersion
	if len(data) == 1 {
		return mean, 0
	}

	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	std := math.Sqrt(varianceSum / float64(len(data)-1))
	return mean, std
}

// -----------------------------------------------------------------------------

// CalculateMinMax returns the smallest and largest value of the slice.
func CalculateMinMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	min, max := data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// -----------------------------------------------------------------------------

// CalculateHistogram bins the values into `bins` equal-width intervals over
// [min, max]. Values equal to max land in the last bin. A constant series
// collapses to a single bin of unit width centered on the value.
func CalculateHistogram(data []float64, bins int) ([]float64, []int) {
	if len(data) == 0 || bins <= 0 {
		return nil, nil
	}

	min, max := CalculateMinMax(data)

	if min == max {
		return []float64{min - 0.5, min + 0.5}, []int{len(data)}
	}

	width := (max - min) / float64(bins)
	edges := make([]float64, bins+1)
	for i := 0; i <= bins; i++ {
		edges[i] = min + float64(i)*width
	}
	// Guard against accumulated float error on the right edge
	edges[bins] = max

	counts := make([]int, bins)
	for _, v := range data {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	return edges, counts
}

// -----------------------------------------------------------------------------

// CalculateZScore calculates Z-Score (Standard Score).
func CalculateZScore(value, mean, std float64) float64 {
	if std == 0 {
		return 0.0
	}
	return (value - mean) / std
}
