package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	ghg, err := c.Lookup("ghg")
	require.NoError(t, err)
	assert.Equal(t, []string{"305-1-a", "305-2-a", "305-3-a"}, ghg.SubCodes)
	assert.True(t, ghg.Scoped)
	assert.Equal(t, "tCO2e", ghg.Unit)

	fuel, err := c.Lookup("energy_fuel")
	require.NoError(t, err)
	assert.Equal(t, []string{"302-1-a", "302-1-b"}, fuel.SubCodes)

	assert.Len(t, c.Group("waste"), 4)
	assert.Len(t, c.Group("water"), 2)

	keys := make([]string, 0)
	for _, m := range c.Trends() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"ghg", "energy_total", "waste_generated", "water_consumption"}, keys)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Default().Lookup("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestMetrics_ReturnsCopy(t *testing.T) {
	c := Default()
	m := c.Metrics()
	m[0].Key = "changed"
	_, err := c.Lookup("ghg")
	assert.NoError(t, err)
	assert.Equal(t, "ghg", c.Metrics()[0].Key)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		metrics []Metric
	}{
		{"blank key", []Metric{{Name: "x", SubCodes: []string{"1"}}}},
		{"duplicate", []Metric{{Key: "a", SubCodes: []string{"1"}}, {Key: "a", SubCodes: []string{"2"}}}},
		{"no codes", []Metric{{Key: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.metrics)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.yaml")
	doc := `metrics:
  - key: scope1
    name: Scope 1 only
    group: ghg
    unit: tCO2e
    sub_codes: ["305-1-a"]
    trend: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	m, err := c.Lookup("scope1")
	require.NoError(t, err)
	assert.Equal(t, []string{"305-1-a"}, m.SubCodes)
	assert.True(t, m.Trend)

	_, err = c.Lookup("ghg")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("metrics: ["))
	assert.Error(t, err)

	_, err = Parse([]byte("metrics: []"))
	assert.Error(t, err)

	c, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Metrics())
}
