package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// PercentChanges returns the period-over-period percentage change of series.
//
// The result has the same length as series. Element 0 is always NaN (no prior
// period), and so is every element whose prior value is zero, since the change
// is undefined there. Callers must treat NaN as "no point".
//
// Changes come from talib's rate of change, which evaluates (v/prev - 1) * 100
// rather than (v - prev) / prev * 100. The two agree to within a few ulps
// (100 -> 110 yields 10.000000000000009), so compare results with a tolerance.
func PercentChanges(series []float64) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	out[0] = math.NaN()
	if len(series) < 2 {
		return out
	}

	roc := talib.Roc(series, 1)
	for i := 1; i < len(series); i++ {
		if series[i-1] == 0 {
			// talib reports 0 here; a zero base has no defined change
			out[i] = math.NaN()
			continue
		}
		out[i] = roc[i]
	}
	return out
}

// IsDefined reports whether v is a usable number (not NaN or infinite).
func IsDefined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
