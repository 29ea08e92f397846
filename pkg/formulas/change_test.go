package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentChanges(t *testing.T) {
	got := PercentChanges([]float64{100, 150, 90})
	require.Len(t, got, 3)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, 50.0, got[1], 1e-9)
	assert.InDelta(t, -40.0, got[2], 1e-9)
}

func TestPercentChanges_MatchesDifferenceFormula(t *testing.T) {
	series := []float64{100, 110, 33.3, 1e6, 0.07}
	got := PercentChanges(series)
	for i := 1; i < len(series); i++ {
		want := (series[i] - series[i-1]) / series[i-1] * 100
		assert.InEpsilon(t, want, got[i], 1e-12, "step %d", i)
	}
}

func TestPercentChanges_ZeroBaseIsUndefined(t *testing.T) {
	got := PercentChanges([]float64{0, 50, 100})
	require.Len(t, got, 3)
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 100.0, got[2], 1e-9)
}

func TestPercentChanges_ShortSeries(t *testing.T) {
	assert.Empty(t, PercentChanges(nil))

	single := PercentChanges([]float64{42})
	require.Len(t, single, 1)
	assert.True(t, math.IsNaN(single[0]))
}

func TestIsDefined(t *testing.T) {
	assert.True(t, IsDefined(0))
	assert.True(t, IsDefined(-12.5))
	assert.False(t, IsDefined(math.NaN()))
	assert.False(t, IsDefined(math.Inf(1)))
	assert.False(t, IsDefined(math.Inf(-1)))
}
