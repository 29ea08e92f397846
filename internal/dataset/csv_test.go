package dataset

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/industry-overview/internal/domain"
)

const metricsCSV = `company,company_id,bundle_id,country,country_iso3,industry,company_size,year,sub_code,value
Acme,c1,b1,Kazakhstan,KAZ,Oil,large,2021,305-1-a,100
Acme,c1,b2,Kazakhstan,KAZ,Oil,large,2022.0,305-1-a,"1,500.5"
Birch,c2,b3,Armenia,ARM,Mining,small,2022,303-5-a,
`

func TestParseMetrics(t *testing.T) {
	rows, err := ParseMetrics(strings.NewReader(metricsCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.MetricRecord{
		Company: "Acme", CompanyID: "c1", BundleID: "b1", Country: "Kazakhstan", CountryISO3: "KAZ",
		Industry: "Oil", CompanySize: domain.CompanySizeLarge, Year: 2021, SubCode: "305-1-a", Value: 100,
	}, rows[0])
	assert.Equal(t, 2022, rows[1].Year)
	assert.InDelta(t, 1500.5, rows[1].Value, 1e-9)
	assert.Equal(t, 0.0, rows[2].Value, "blank value counts as zero")
}

func TestParseMetrics_MissingValues(t *testing.T) {
	header := "company,company_id,bundle_id,country,country_iso3,industry,company_size,year,sub_code,value\n"
	tests := []struct {
		name string
		cell string
	}{
		{"NA", "NA"},
		{"N/A", "N/A"},
		{"NaN", "NaN"},
		{"nan", "nan"},
		{"null", "null"},
		{"NULL", "NULL"},
		{"None", "None"},
		{"pandas NA", "<NA>"},
		{"excel NA", "#N/A"},
		{"padded NA", " NA "},
		{"infinity", "Inf"},
		{"negative infinity", "-inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := header +
				"Acme,c1,b1,Kazakhstan,KAZ,Oil,large,2021,305-1-a,100\n" +
				"Acme,c1,b1,Kazakhstan,KAZ,Oil,large,2021,305-2-a," + tt.cell + "\n"
			rows, err := ParseMetrics(strings.NewReader(doc))
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, 0.0, rows[1].Value)
			assert.False(t, math.IsNaN(rows[1].Value))

			body, err := json.Marshal(rows)
			require.NoError(t, err)
			assert.Contains(t, string(body), `"value":0`)
		})
	}
}

func TestParseMetrics_ColumnOrderAndCase(t *testing.T) {
	doc := "\ufeffValue,Year,Sub_Code,Company,Company_ID,Bundle_ID,Country,Country_ISO3,Industry,Company_Size\n" +
		"42,2020,305-2-a,Acme,c1,b1,Kazakhstan,KAZ,Oil,medium\n"
	rows, err := ParseMetrics(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 42.0, rows[0].Value)
	assert.Equal(t, domain.CompanySizeMedium, rows[0].CompanySize)
}

func TestParseMetrics_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"missing column", "company,year\nAcme,2021\n", ErrMissingColumn},
		{"bad year", strings.Replace(metricsCSV, "2021,", "soon,", 1), nil},
		{"fractional year", strings.Replace(metricsCSV, "2021,", "2021.5,", 1), nil},
		{"bad value", strings.Replace(metricsCSV, ",100\n", ",lots\n", 1), nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMetrics(strings.NewReader(tt.doc))
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}

func TestParseTopicsAndLeaders(t *testing.T) {
	topics, err := ParseTopics(strings.NewReader("company,country,category_name,topic_name\nAcme,Kazakhstan,Environment,Emissions\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.TopicRecord{{Company: "Acme", Country: "Kazakhstan", CategoryName: "Environment", TopicName: "Emissions"}}, topics)

	leaders, err := ParseLeaders(strings.NewReader("company,country,tier,year\nAcme,Kazakhstan,a,2022\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderRecord{{Company: "Acme", Country: "Kazakhstan", Tier: domain.TierA, Year: 2022}}, leaders)

	_, err = ParseLeaders(strings.NewReader("company,country,year\nAcme,Kazakhstan,2022\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}
