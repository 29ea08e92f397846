// Package formulas holds the numeric building blocks used by the aggregators.
package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Median returns the middle value of data, averaging the two middle values
// when the length is even. The input is not modified.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := sortedCopy(data)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Quantile returns the p-quantile (0 <= p <= 1) of data, interpolating
// linearly between the order statistics around position p*(n-1). The input is
// not modified. Returns NaN for empty input.
func Quantile(p float64, data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	x := sortedCopy(data)
	h := p * float64(len(x)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(x)-1 {
		return x[len(x)-1]
	}
	if i < 0 {
		return x[0]
	}
	return x[i] + (h-lo)*(x[i+1]-x[i])
}

// Min returns the smallest value, or 0 for empty input.
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Min(data)
}

// Max returns the largest value, or 0 for empty input.
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Max(data)
}

// Sum returns the sum of data.
func Sum(data []float64) float64 {
	return floats.Sum(data)
}

func sortedCopy(data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	sort.Float64s(out)
	return out
}
