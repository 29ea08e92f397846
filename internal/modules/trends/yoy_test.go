package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/industry-overview/internal/domain"
)

var water = []string{"303-5-a"}

func row(company string, year int, value float64) domain.MetricRecord {
	return domain.MetricRecord{Company: company, CompanyID: company, Year: year, SubCode: "303-5-a", Value: value}
}

func TestChanges(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Acme", 2020, 100),
		row("Acme", 2021, 150),
		row("Acme", 2022, 90),
		row("Solo", 2022, 10),
	}

	points := Changes(rows, water)
	require.Len(t, points, 2, "a single-year company yields no points")

	assert.Equal(t, "Acme", points[0].Company)
	assert.Equal(t, 2021, points[0].Year)
	assert.InDelta(t, 50.0, points[0].ChangePct, 1e-9)

	assert.Equal(t, 2022, points[1].Year)
	assert.InDelta(t, -40.0, points[1].ChangePct, 1e-9)
}

func TestChanges_GapYearIsOneStep(t *testing.T) {
	rows := []domain.MetricRecord{row("Gap", 2019, 200), row("Gap", 2022, 100)}

	points := Changes(rows, water)
	require.Len(t, points, 1)
	assert.Equal(t, 2022, points[0].Year)
	assert.InDelta(t, -50.0, points[0].ChangePct, 1e-9)
}

func TestYearOverYear_Summary(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Acme", 2020, 100),
		row("Acme", 2021, 150), // +50
		row("Acme", 2022, 90),  // -40
		row("Birch", 2020, 200),
		row("Birch", 2021, 220), // +10
		row("Cedar", 2020, 10),
		row("Cedar", 2021, 13), // +30
	}

	res := YearOverYear(rows, water)
	require.True(t, res.IsOK())
	report := res.Data

	require.Len(t, report.Years, 2)
	assert.Equal(t, 2021, report.Years[0].Year)
	assert.InDelta(t, 30.0, report.Years[0].MeanChange, 1e-9)
	assert.InDelta(t, 30.0, report.Years[0].MedianChange, 1e-9)
	assert.Equal(t, 3, report.Years[0].CompanyCount)

	assert.Equal(t, 2022, report.Years[1].Year)
	assert.InDelta(t, -40.0, report.Years[1].MeanChange, 1e-9)
	assert.Equal(t, 1, report.Years[1].CompanyCount)

	assert.InDelta(t, -5.0, report.OverallMean, 1e-9)
	assert.Equal(t, 2021, report.Highest.Year)
	assert.Equal(t, 2022, report.Lowest.Year)
	assert.Equal(t, 0, report.ExcludedTransitions)
}

func TestYearOverYear_ZeroBaseExcluded(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Zero", 2020, 0),
		row("Zero", 2021, 50),
		row("Acme", 2020, 100),
		row("Acme", 2021, 110),
	}

	res := YearOverYear(rows, water)
	require.True(t, res.IsOK())
	require.Len(t, res.Data.Years, 1)

	year := res.Data.Years[0]
	assert.Equal(t, 1, year.CompanyCount, "excluded point must not inflate the count")
	assert.InDelta(t, 10.0, year.MeanChange, 1e-9)
	assert.Equal(t, 1, res.Data.ExcludedTransitions)
}

func TestYearOverYear_TiesKeepFirstYear(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Acme", 2020, 100),
		row("Acme", 2021, 110), // +10
		row("Acme", 2022, 121), // +10
	}

	res := YearOverYear(rows, water)
	require.True(t, res.IsOK())
	assert.Equal(t, 2021, res.Data.Highest.Year)
	assert.Equal(t, 2021, res.Data.Lowest.Year)
}

func TestYearOverYear_InsufficientHistory(t *testing.T) {
	rows := []domain.MetricRecord{row("Acme", 2020, 100), row("Birch", 2021, 100)}
	res := YearOverYear(rows, water)
	assert.Equal(t, domain.StatusInsufficientHistory, res.Status)

	onlyZeroBase := []domain.MetricRecord{row("Zero", 2020, 0), row("Zero", 2021, 5)}
	assert.Equal(t, domain.StatusInsufficientHistory, YearOverYear(onlyZeroBase, water).Status)
}

func TestYearOverYear_NoMatchingRows(t *testing.T) {
	assert.Equal(t, domain.StatusNoMatchingRows, YearOverYear(nil, water).Status)
	assert.Equal(t, domain.StatusNoMatchingRows, YearOverYear([]domain.MetricRecord{row("Acme", 2020, 1)}, []string{"305-1-a"}).Status)
}

func TestYearOverYear_Idempotent(t *testing.T) {
	rows := []domain.MetricRecord{row("Acme", 2020, 3), row("Acme", 2021, 7), row("Birch", 2020, 1), row("Birch", 2021, 0)}
	assert.Equal(t, YearOverYear(rows, water), YearOverYear(rows, water))
}
