package services

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalizationEpsilon keeps min-max scaling finite when a column is constant
const NormalizationEpsilon = 1e-9

// Mean returns the arithmetic mean of values, or 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// SampleStdDev returns the n-1 standard deviation of values.
// Fewer than two values yield 0.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// MinMaxNormalize maps values to approximately [0,1] using the min and max of the
// finite entries: (x - min) / (max - min + eps). NaN and infinite entries are
// unknown and map to NaN.
func MinMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !finite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for i, v := range values {
		if !finite(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - lo) / (hi - lo + NormalizationEpsilon)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clip bounds v to [lo, hi]. NaN passes through unchanged.
func Clip(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

// RoundPlaces rounds v half away from zero to the given number of decimal places.
// NaN and infinities pass through unchanged.
func RoundPlaces(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	rounded, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return rounded
}

// ServiceLevelZ returns the standard normal quantile for a service level in (0,1),
// e.g. 1.645 for 0.95. Levels outside (0,1) return NaN.
func ServiceLevelZ(serviceLevel float64) float64 {
	if !(serviceLevel > 0 && serviceLevel < 1) {
		return math.NaN()
	}
	return distuv.UnitNormal.Quantile(serviceLevel)
}
