package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aristath/industry-overview/internal/domain"
)

// ErrMissingColumn is returned when a table header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var (
	metricColumns = []string{"company", "company_id", "bundle_id", "country", "country_iso3",
		"industry", "company_size", "year", "sub_code", "value"}
	topicColumns  = []string{"company", "country", "category_name", "topic_name"}
	leaderColumns = []string{"company", "country", "tier", "year"}
)

// missingTokens are the cell values spreadsheet and dataframe exports write
// for a missing number.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// row gives access to one CSV record by column name.
type row struct {
	index  map[string]int
	record []string
	line   int
}

func (r row) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r row) year() (int, error) {
	raw := r.get("year")
	if y, err := strconv.Atoi(raw); err == nil {
		return y, nil
	}
	// spreadsheets sometimes export integer columns as "2021.0"
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("line %d: invalid year %q", r.line, raw)
	}
	return int(f), nil
}

// value parses the value column. A missing or non-finite cell counts as zero,
// the same contribution it makes to a per-year sum.
func (r row) value() (float64, error) {
	raw := r.get("value")
	if _, missing := missingTokens[raw]; missing {
		return 0, nil
	}
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid value %q", r.line, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	return v, nil
}

// readTable reads a header-led CSV and calls fn for every data record.
func readTable(src io.Reader, required []string, fn func(row) error) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}
		if err := fn(row{index: index, record: record, line: line}); err != nil {
			return err
		}
	}
}

// ParseMetrics reads the long-format metrics table.
func ParseMetrics(src io.Reader) ([]domain.MetricRecord, error) {
	out := make([]domain.MetricRecord, 0)
	err := readTable(src, metricColumns, func(r row) error {
		year, err := r.year()
		if err != nil {
			return err
		}
		value, err := r.value()
		if err != nil {
			return err
		}
		out = append(out, domain.MetricRecord{
			Company:     r.get("company"),
			CompanyID:   r.get("company_id"),
			BundleID:    r.get("bundle_id"),
			Country:     r.get("country"),
			CountryISO3: r.get("country_iso3"),
			Industry:    r.get("industry"),
			CompanySize: domain.CompanySize(r.get("company_size")),
			Year:        year,
			SubCode:     r.get("sub_code"),
			Value:       value,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("metrics table: %w", err)
	}
	return out, nil
}

// ParseTopics reads the material topics table. Company sizes are not part of
// the table; see Enrich.
func ParseTopics(src io.Reader) ([]domain.TopicRecord, error) {
	out := make([]domain.TopicRecord, 0)
	err := readTable(src, topicColumns, func(r row) error {
		out = append(out, domain.TopicRecord{
			Company:      r.get("company"),
			Country:      r.get("country"),
			CategoryName: r.get("category_name"),
			TopicName:    r.get("topic_name"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("topics table: %w", err)
	}
	return out, nil
}

// ParseLeaders reads the industry leaders table.
func ParseLeaders(src io.Reader) ([]domain.LeaderRecord, error) {
	out := make([]domain.LeaderRecord, 0)
	err := readTable(src, leaderColumns, func(r row) error {
		year, err := r.year()
		if err != nil {
			return err
		}
		out = append(out, domain.LeaderRecord{
			Company: r.get("company"),
			Country: r.get("country"),
			Tier:    domain.Tier(strings.ToUpper(r.get("tier"))),
			Year:    year,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("leaders table: %w", err)
	}
	return out, nil
}
