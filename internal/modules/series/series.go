// Package series builds per-company annual time series from metric rows.
package series

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
)

// Point is one company's summed value for one year.
type Point struct {
	Year  int
	Value float64
}

// Company is the annual series of one company, ascending by year, with at
// most one point per year.
type Company struct {
	Name   string
	Points []Point
}

// Values returns the point values in year order.
func (c Company) Values() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Value
	}
	return out
}

// AnnualSums sums values by (company, year). Several sub-codes of one metric
// are unioned by this summation, and duplicate bundle rows merge here too.
// Companies come back in order of first appearance in rows.
func AnnualSums(rows []domain.MetricRecord) []Company {
	index := make(map[string]int)
	sums := make([]map[int]float64, 0)
	names := make([]string, 0)

	for _, r := range rows {
		i, ok := index[r.Company]
		if !ok {
			i = len(names)
			index[r.Company] = i
			names = append(names, r.Company)
			sums = append(sums, make(map[int]float64))
		}
		sums[i][r.Year] += r.Value
	}

	out := make([]Company, len(names))
	for i, name := range names {
		points := make([]Point, 0, len(sums[i]))
		for year, value := range sums[i] {
			points = append(points, Point{Year: year, Value: value})
		}
		sort.Slice(points, func(a, b int) bool { return points[a].Year < points[b].Year })
		out[i] = Company{Name: name, Points: points}
	}
	return out
}
