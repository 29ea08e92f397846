package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/industry-overview/internal/domain"
)

func TestAnnualSums(t *testing.T) {
	rows := []domain.MetricRecord{
		{Company: "Birch", Year: 2022, SubCode: "305-1-a", Value: 1},
		{Company: "Acme", Year: 2023, SubCode: "305-1-a", Value: 100},
		{Company: "Acme", Year: 2021, SubCode: "305-1-a", Value: 40},
		{Company: "Acme", Year: 2023, SubCode: "305-2-a", Value: 50},
		{Company: "Acme", Year: 2023, SubCode: "305-2-a", BundleID: "dup", Value: 50},
	}

	got := AnnualSums(rows)
	require.Len(t, got, 2)

	assert.Equal(t, "Birch", got[0].Name, "first appearance order")
	assert.Equal(t, []Point{{Year: 2022, Value: 1}}, got[0].Points)

	assert.Equal(t, "Acme", got[1].Name)
	assert.Equal(t, []Point{{Year: 2021, Value: 40}, {Year: 2023, Value: 200}}, got[1].Points)
	assert.Equal(t, []float64{40, 200}, got[1].Values())
}

func TestAnnualSums_Empty(t *testing.T) {
	assert.Empty(t, AnnualSums(nil))
}
