package performance

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/modules/leaders"
	"github.com/aristath/industry-overview/pkg/formulas"
)

const (
	// RankingLimit is the number of companies shown in the ranking view.
	RankingLimit = 50

	lowerPercentile = 0.05
	upperPercentile = 0.95
)

// LabelledAverage is a CompanyAverage with its leader classification.
type LabelledAverage struct {
	CompanyAverage
	CompanyType leaders.Label `json:"company_type"`
}

// Label classifies every row against ref. Labels are derived from the rows
// passed in, never carried over from an earlier row set.
func Label(avgs []CompanyAverage, ref leaders.Reference) []LabelledAverage {
	out := make([]LabelledAverage, len(avgs))
	for i, a := range avgs {
		out[i] = LabelledAverage{CompanyAverage: a, CompanyType: leaders.Classify(a.Company, ref)}
	}
	return out
}

// Bounds is the inclusive value range kept by the outlier-trimmed view.
type Bounds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// OutlierBounds returns the 5th and 95th percentiles of the full sequence.
func OutlierBounds(avgs []CompanyAverage) Bounds {
	values := Values(avgs)
	return Bounds{
		Low:  formulas.Quantile(lowerPercentile, values),
		High: formulas.Quantile(upperPercentile, values),
	}
}

// TrimOutliers drops rows outside [P5, P95] of avgs. Both percentiles are
// computed once over the untrimmed sequence and both bounds are inclusive.
func TrimOutliers(avgs []CompanyAverage) domain.Result[[]CompanyAverage] {
	if len(avgs) == 0 {
		return domain.NoMatchingRows[[]CompanyAverage]("no averages to trim")
	}
	b := OutlierBounds(avgs)
	out := make([]CompanyAverage, 0, len(avgs))
	for _, a := range avgs {
		if a.AverageValue >= b.Low && a.AverageValue <= b.High {
			out = append(out, a)
		}
	}
	return domain.OK(out)
}

// Ranking takes the top limit rows by average and returns them ascending, the
// order a horizontal bar chart draws bottom-up.
func Ranking(avgs []CompanyAverage, limit int) []CompanyAverage {
	top := make([]CompanyAverage, len(avgs))
	copy(top, avgs)
	sort.SliceStable(top, func(i, j int) bool { return top[i].AverageValue > top[j].AverageValue })
	if limit >= 0 && len(top) > limit {
		top = top[:limit]
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].AverageValue < top[j].AverageValue })
	return top
}

// PositiveOnly keeps rows with a strictly positive average.
func PositiveOnly(avgs []CompanyAverage) domain.Result[[]CompanyAverage] {
	out := make([]CompanyAverage, 0, len(avgs))
	for _, a := range avgs {
		if a.AverageValue > 0 {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return domain.Empty[[]CompanyAverage](domain.StatusNoPositiveValues, "no positive-value data")
	}
	return domain.OK(out)
}

// Distribution holds the key statistics shown next to a spread chart.
type Distribution struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe summarizes avgs. Spread views need at least two points.
func Describe(avgs []CompanyAverage) domain.Result[Distribution] {
	if len(avgs) < 2 {
		return domain.Empty[Distribution](domain.StatusInsufficientSampleSize,
			"not enough data points (minimum 2)")
	}
	values := Values(avgs)
	return domain.OK(Distribution{
		Count:  len(values),
		Mean:   formulas.Mean(values),
		Median: formulas.Median(values),
		Min:    formulas.Min(values),
		Max:    formulas.Max(values),
	})
}
