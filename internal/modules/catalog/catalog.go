// Package catalog names the metrics the dashboard can aggregate and the
// disclosure sub-codes each one sums.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ErrUnknownMetric is returned for a metric key missing from the catalog.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric groups one or more sub-codes summed into a single quantity.
type Metric struct {
	Key      string   `yaml:"key" json:"key"`
	Name     string   `yaml:"name" json:"name"`
	Group    string   `yaml:"group" json:"group"`
	Unit     string   `yaml:"unit" json:"unit"`
	SubCodes []string `yaml:"sub_codes" json:"sub_codes"`
	// Scoped metrics let the caller pick a subset of their codes.
	Scoped bool `yaml:"scoped" json:"scoped"`
	// Trend metrics are offered in the year-over-year view.
	Trend bool `yaml:"trend" json:"trend"`
}

// Catalog is an ordered, immutable set of metrics.
type Catalog struct {
	metrics []Metric
	byKey   map[string]int
}

type file struct {
	Metrics []Metric `yaml:"metrics"`
}

var defaults = []Metric{
	{Key: "ghg", Name: "GHG Emissions (Scope 1, 2, 3)", Group: "ghg", Unit: "tCO2e",
		SubCodes: []string{"305-1-a", "305-2-a", "305-3-a"}, Scoped: true, Trend: true},

	{Key: "energy_total", Name: "Total energy consumption (GRI 302-1-e)", Group: "energy", Unit: "GJ",
		SubCodes: []string{"302-1-e"}, Trend: true},
	{Key: "energy_electricity", Name: "Consumption of electricity, heating, etc. (GRI 302-1-c)", Group: "energy", Unit: "GJ",
		SubCodes: []string{"302-1-c"}},
	{Key: "energy_fuel", Name: "Fuel consumption (GRI 302-1-a + 302-1-b)", Group: "energy", Unit: "GJ",
		SubCodes: []string{"302-1-a", "302-1-b"}},

	{Key: "waste_generated", Name: "Generated waste (GRI 306-3-a)", Group: "waste", Unit: "tons",
		SubCodes: []string{"306-3-a"}, Trend: true},
	{Key: "waste_recycled", Name: "Recycled waste (GRI 306-4-a)", Group: "waste", Unit: "tons",
		SubCodes: []string{"306-4-a"}},
	{Key: "waste_landfilled", Name: "Landfilled waste (GRI 306-5-c)", Group: "waste", Unit: "tons",
		SubCodes: []string{"306-5-c"}},
	{Key: "waste_incinerated", Name: "Incinerated waste (GRI 306-5-a)", Group: "waste", Unit: "tons",
		SubCodes: []string{"306-5-a"}},

	{Key: "water_consumption", Name: "Water consumption (GRI 303-5-a)", Group: "water", Unit: "m3",
		SubCodes: []string{"303-5-a"}, Trend: true},
	{Key: "water_stressed", Name: "Water consumption from water-stressed areas (GRI 303-5-b)", Group: "water", Unit: "m3",
		SubCodes: []string{"303-5-b"}},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaults)
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog, rejecting blank or duplicate keys and metrics
// without codes.
func New(metrics []Metric) (*Catalog, error) {
	c := &Catalog{metrics: make([]Metric, 0, len(metrics)), byKey: make(map[string]int, len(metrics))}
	for _, m := range metrics {
		if m.Key == "" {
			return nil, fmt.Errorf("metric %q has no key", m.Name)
		}
		if _, dup := c.byKey[m.Key]; dup {
			return nil, fmt.Errorf("duplicate metric key %q", m.Key)
		}
		if len(m.SubCodes) == 0 {
			return nil, fmt.Errorf("metric %q has no sub-codes", m.Key)
		}
		m.SubCodes = append([]string(nil), m.SubCodes...)
		c.byKey[m.Key] = len(c.metrics)
		c.metrics = append(c.metrics, m)
	}
	return c, nil
}

// Load reads a YAML catalog from path. An empty path yields the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metric catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse metric catalog: %w", err)
	}
	if len(f.Metrics) == 0 {
		return nil, fmt.Errorf("metric catalog defines no metrics")
	}
	return New(f.Metrics)
}

// Lookup returns the metric with key.
func (c *Catalog) Lookup(key string) (Metric, error) {
	i, ok := c.byKey[key]
	if !ok {
		return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return c.metrics[i], nil
}

// Metrics returns every metric in catalog order.
func (c *Catalog) Metrics() []Metric {
	return append([]Metric(nil), c.metrics...)
}

// Group returns the metrics of one group in catalog order.
func (c *Catalog) Group(group string) []Metric {
	out := make([]Metric, 0)
	for _, m := range c.metrics {
		if m.Group == group {
			out = append(out, m)
		}
	}
	return out
}

// Trends returns the metrics offered in the year-over-year view.
func (c *Catalog) Trends() []Metric {
	out := make([]Metric, 0)
	for _, m := range c.metrics {
		if m.Trend {
			out = append(out, m)
		}
	}
	return out
}
