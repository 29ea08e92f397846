// Package trends derives year-over-year percentage changes per company and
// summarizes them across companies for each year.
package trends

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/modules/filter"
	"github.com/aristath/industry-overview/internal/modules/series"
	"github.com/aristath/industry-overview/pkg/formulas"
)

// Point is one company's change into Year, relative to its previous
// reporting year. ChangePct is NaN when the previous value was zero.
type Point struct {
	Company   string
	Year      int
	ChangePct float64
}

// Defined reports whether the point may enter numeric aggregation.
func (p Point) Defined() bool {
	return formulas.IsDefined(p.ChangePct)
}

// YearlySummary aggregates the defined points ending in one year.
type YearlySummary struct {
	Year         int     `json:"year"`
	MeanChange   float64 `json:"mean_yoy_change"`
	MedianChange float64 `json:"median_yoy_change"`
	CompanyCount int     `json:"company_count"`
}

// Extreme is the year holding the highest or lowest mean change.
type Extreme struct {
	Year   int     `json:"year"`
	Change float64 `json:"change"`
}

// Report is the trend view of one metric.
type Report struct {
	Years               []YearlySummary `json:"years"`
	OverallMean         float64         `json:"overall_mean"`
	Highest             Extreme         `json:"highest"`
	Lowest              Extreme         `json:"lowest"`
	ExcludedTransitions int             `json:"excluded_transitions"`
}

// Changes computes every company's changes. A company's first year never
// yields a point, and each later year is compared with the company's
// previous present year, however many calendar years lie between them.
func Changes(rows []domain.MetricRecord, subCodes []string) []Point {
	companies := series.AnnualSums(filter.BySubCodes(rows, subCodes))
	out := make([]Point, 0)
	for _, c := range companies {
		changes := formulas.PercentChanges(c.Values())
		for i := 1; i < len(c.Points); i++ {
			out = append(out, Point{Company: c.Name, Year: c.Points[i].Year, ChangePct: changes[i]})
		}
	}
	return out
}

// YearOverYear builds the trend report of the metric made of subCodes.
func YearOverYear(rows []domain.MetricRecord, subCodes []string) domain.Result[Report] {
	if len(filter.BySubCodes(rows, subCodes)) == 0 {
		return domain.NoMatchingRows[Report]("no data for the selected metric")
	}

	byYear := make(map[int][]float64)
	excluded := 0
	for _, p := range Changes(rows, subCodes) {
		if !p.Defined() {
			excluded++
			continue
		}
		byYear[p.Year] = append(byYear[p.Year], p.ChangePct)
	}
	if len(byYear) == 0 {
		return domain.Empty[Report](domain.StatusInsufficientHistory,
			"each company needs at least 2 years of data with a non-zero base")
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	report := Report{Years: make([]YearlySummary, 0, len(years)), ExcludedTransitions: excluded}
	means := make([]float64, 0, len(years))
	for _, y := range years {
		values := byYear[y]
		s := YearlySummary{
			Year:         y,
			MeanChange:   formulas.Mean(values),
			MedianChange: formulas.Median(values),
			CompanyCount: len(values),
		}
		report.Years = append(report.Years, s)
		means = append(means, s.MeanChange)
	}

	report.OverallMean = formulas.Mean(means)
	report.Highest = Extreme{Year: report.Years[0].Year, Change: report.Years[0].MeanChange}
	report.Lowest = report.Highest
	for _, s := range report.Years[1:] {
		// strict comparisons keep the first year on ties
		if s.MeanChange > report.Highest.Change {
			report.Highest = Extreme{Year: s.Year, Change: s.MeanChange}
		}
		if s.MeanChange < report.Lowest.Change {
			report.Lowest = Extreme{Year: s.Year, Change: s.MeanChange}
		}
	}
	return domain.OK(report)
}
