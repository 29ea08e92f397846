// Package performance computes each company's trailing average of a metric and
// the distribution views derived from it.
package performance

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/modules/filter"
	"github.com/aristath/industry-overview/internal/modules/series"
	"github.com/aristath/industry-overview/pkg/formulas"
)

// TrailingWindow is the number of most recent reporting years averaged.
const TrailingWindow = 3

// CompanyAverage is one company's mean over its most recent reporting years.
type CompanyAverage struct {
	Company      string  `json:"company"`
	AverageValue float64 `json:"average_value"`
	YearsOfData  int     `json:"years_of_data"` // 1..TrailingWindow
}

// TrailingAverages computes the trailing average of the metric made of
// subCodes for every company in rows.
//
// Values are summed per (company, year) first, so YearsOfData counts distinct
// years. Gaps between years are allowed. The result is sorted by average
// descending; ties keep the order in which companies first appear in rows.
func TrailingAverages(rows []domain.MetricRecord, subCodes []string) domain.Result[[]CompanyAverage] {
	metric := filter.BySubCodes(rows, subCodes)
	if len(metric) == 0 {
		return domain.NoMatchingRows[[]CompanyAverage]("no data for the selected metric")
	}

	companies := series.AnnualSums(metric)
	out := make([]CompanyAverage, 0, len(companies))
	for _, c := range companies {
		if len(c.Points) == 0 {
			continue
		}
		latest := latestValues(c.Points, TrailingWindow)
		out = append(out, CompanyAverage{
			Company:      c.Name,
			AverageValue: formulas.Mean(latest),
			YearsOfData:  len(latest),
		})
	}
	if len(out) == 0 {
		return domain.NoMatchingRows[[]CompanyAverage]("not enough data to calculate averages")
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageValue > out[j].AverageValue
	})
	return domain.OK(out)
}

// latestValues takes up to n values from the end of an ascending series.
func latestValues(points []series.Point, n int) []float64 {
	start := len(points) - n
	if start < 0 {
		start = 0
	}
	out := make([]float64, 0, len(points)-start)
	for i := len(points) - 1; i >= start; i-- {
		out = append(out, points[i].Value)
	}
	return out
}

// Values extracts the averages, in sequence order.
func Values(avgs []CompanyAverage) []float64 {
	out := make([]float64, len(avgs))
	for i, a := range avgs {
		out[i] = a.AverageValue
	}
	return out
}
