package performance

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/industry-overview/internal/domain"
)

var ghg = []string{"305-1-a", "305-2-a", "305-3-a"}

func row(company string, year int, code string, value float64) domain.MetricRecord {
	return domain.MetricRecord{Company: company, CompanyID: company, Year: year, SubCode: code, Value: value}
}

func TestTrailingAverages_ThreeYears(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Acme", 2021, "305-1-a", 100),
		row("Acme", 2022, "305-1-a", 150),
		row("Acme", 2023, "305-1-a", 200),
	}

	res := TrailingAverages(rows, ghg)
	require.True(t, res.IsOK())
	require.Len(t, res.Data, 1)
	assert.InDelta(t, 150.0, res.Data[0].AverageValue, 1e-9)
	assert.Equal(t, 3, res.Data[0].YearsOfData)
}

func TestTrailingAverages_SumsCodesAndBundlesBeforeWindowing(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Acme", 2020, "305-1-a", 1000), // outside the window
		row("Acme", 2021, "305-1-a", 60),
		row("Acme", 2021, "305-2-a", 40),
		row("Acme", 2022, "305-1-a", 75),
		row("Acme", 2022, "305-1-a", 75), // second bundle, same year
		row("Acme", 2023, "305-3-a", 200),
		row("Acme", 2023, "302-1-e", 9999), // other metric
	}

	res := TrailingAverages(rows, ghg)
	require.True(t, res.IsOK())
	require.Len(t, res.Data, 1)
	assert.InDelta(t, 150.0, res.Data[0].AverageValue, 1e-9)
	assert.Equal(t, 3, res.Data[0].YearsOfData, "distinct years, not raw rows")
}

func TestTrailingAverages_GapsAndShortHistory(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Gap", 2015, "305-1-a", 10),
		row("Gap", 2019, "305-1-a", 20),
		row("Solo", 2023, "305-1-a", 7),
	}

	res := TrailingAverages(rows, ghg)
	require.True(t, res.IsOK())
	require.Len(t, res.Data, 2)

	assert.Equal(t, CompanyAverage{Company: "Gap", AverageValue: 15, YearsOfData: 2}, res.Data[0])
	assert.Equal(t, CompanyAverage{Company: "Solo", AverageValue: 7, YearsOfData: 1}, res.Data[1])
}

func TestTrailingAverages_YearsOfDataInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rows := make([]domain.MetricRecord, 0, 400)
	for i := 0; i < 400; i++ {
		company := fmt.Sprintf("c%d", rng.Intn(40))
		rows = append(rows, row(company, 2015+rng.Intn(9), ghg[rng.Intn(3)], float64(rng.Intn(1000))))
	}

	res := TrailingAverages(rows, ghg)
	require.True(t, res.IsOK())
	for _, a := range res.Data {
		assert.GreaterOrEqual(t, a.YearsOfData, 1)
		assert.LessOrEqual(t, a.YearsOfData, TrailingWindow)
	}
	for i := 1; i < len(res.Data); i++ {
		assert.GreaterOrEqual(t, res.Data[i-1].AverageValue, res.Data[i].AverageValue)
	}
}

func TestTrailingAverages_RowOrderInvariant(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Acme", 2021, "305-1-a", 10),
		row("Acme", 2021, "305-2-a", 20),
		row("Acme", 2022, "305-1-a", 30),
		row("Birch", 2022, "305-1-a", 5),
	}
	reversed := make([]domain.MetricRecord, len(rows))
	for i := range rows {
		reversed[len(rows)-1-i] = rows[i]
	}

	a := TrailingAverages(rows, ghg)
	b := TrailingAverages(reversed, ghg)
	require.True(t, a.IsOK())
	require.True(t, b.IsOK())
	assert.Equal(t, a.Data, b.Data)
}

func TestTrailingAverages_TiesKeepInputOrder(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Zeta", 2022, "305-1-a", 50),
		row("Alpha", 2022, "305-1-a", 50),
		row("Top", 2022, "305-1-a", 90),
	}

	res := TrailingAverages(rows, ghg)
	require.True(t, res.IsOK())
	assert.Equal(t, "Top", res.Data[0].Company)
	assert.Equal(t, "Zeta", res.Data[1].Company)
	assert.Equal(t, "Alpha", res.Data[2].Company)
}

func TestTrailingAverages_NoData(t *testing.T) {
	res := TrailingAverages(nil, ghg)
	assert.Equal(t, domain.StatusNoMatchingRows, res.Status)
	assert.Nil(t, res.Data)

	res = TrailingAverages([]domain.MetricRecord{row("Acme", 2022, "302-1-e", 1)}, ghg)
	assert.Equal(t, domain.StatusNoMatchingRows, res.Status)
}

func TestTrailingAverages_Idempotent(t *testing.T) {
	rows := []domain.MetricRecord{
		row("Acme", 2021, "305-1-a", 0.1),
		row("Acme", 2022, "305-1-a", 0.2),
		row("Birch", 2022, "305-2-a", 0.3),
	}
	assert.Equal(t, TrailingAverages(rows, ghg), TrailingAverages(rows, ghg))
}
