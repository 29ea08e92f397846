// Package domain provides the core record types and result variants shared by
// the filter engine, the aggregators and the presentation adapters.
package domain

// CompanySize is the size class a company is reported under.
type CompanySize string

const (
	CompanySizeSmall  CompanySize = "small"
	CompanySizeMedium CompanySize = "medium"
	CompanySizeLarge  CompanySize = "large"
)

// Tier is the industry-leader distinction of a company. Tier A is the higher one.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
)

// MetricRecord is one row of the long-format metrics table.
//
// (Company, Year, SubCode) is not unique: several bundles may report the same
// quantity, so every aggregation sums by (Company, Year) first.
type MetricRecord struct {
	Company     string      `json:"company"`
	CompanyID   string      `json:"company_id"`
	BundleID    string      `json:"bundle_id"`
	Country     string      `json:"country"`
	CountryISO3 string      `json:"country_iso3"`
	Industry    string      `json:"industry"`
	CompanySize CompanySize `json:"company_size"`
	Year        int         `json:"year"`
	SubCode     string      `json:"sub_code"` // disclosure-standard code, e.g. "305-1-a"
	Value       float64     `json:"value"`
}

// TopicRecord is one disclosed topic of one company. Repeated rows for the
// same company and topic are expected and collapse to distinct-company counts.
type TopicRecord struct {
	Company      string      `json:"company"`
	Country      string      `json:"country"`
	CompanySize  CompanySize `json:"company_size"`
	CategoryName string      `json:"category_name"`
	TopicName    string      `json:"topic_name"`
}

// LeaderRecord marks a company as an industry leader of a tier in a year.
type LeaderRecord struct {
	Company     string      `json:"company"`
	Country     string      `json:"country"`
	CompanySize CompanySize `json:"company_size"`
	Tier        Tier        `json:"tier"`
	Year        int         `json:"year"`
}
