// Package overview computes the headline figures and the report listing of
// the current selection.
package overview

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
)

// KPIs are the database statistics of a selection. UniqueCompanies is the
// total every disclosure share is computed against.
type KPIs struct {
	DataPoints       int `json:"total_data_points"`
	UniqueReports    int `json:"unique_reports"`
	UniqueCompanies  int `json:"unique_companies"`
	CountriesCovered int `json:"countries_covered"`
	FirstYear        int `json:"first_year"`
	LastYear         int `json:"last_year"`
}

// Report is one distinct report behind the selection.
type Report struct {
	Company  string `json:"company"`
	Country  string `json:"country"`
	Industry string `json:"industry"`
	Year     int    `json:"year"`
}

// Overview pairs the KPIs with the report listing.
type Overview struct {
	KPIs    KPIs     `json:"kpis"`
	Reports []Report `json:"reports"`
}

// Compute returns the KPIs of rows.
func Compute(rows []domain.MetricRecord) domain.Result[KPIs] {
	if len(rows) == 0 {
		return domain.NoMatchingRows[KPIs]("no data for the selected filters")
	}

	bundles := make(map[string]struct{})
	companies := make(map[string]struct{})
	countries := make(map[string]struct{})
	k := KPIs{DataPoints: len(rows), FirstYear: rows[0].Year, LastYear: rows[0].Year}
	for _, r := range rows {
		bundles[r.BundleID] = struct{}{}
		companies[r.CompanyID] = struct{}{}
		countries[r.Country] = struct{}{}
		if r.Year < k.FirstYear {
			k.FirstYear = r.Year
		}
		if r.Year > k.LastYear {
			k.LastYear = r.Year
		}
	}
	k.UniqueReports = len(bundles)
	k.UniqueCompanies = len(companies)
	k.CountriesCovered = len(countries)
	return domain.OK(k)
}

// Reports lists distinct (company, country, industry, year) tuples ordered by
// company then year.
func Reports(rows []domain.MetricRecord) []Report {
	seen := make(map[Report]struct{})
	out := make([]Report, 0)
	for _, r := range rows {
		rep := Report{Company: r.Company, Country: r.Country, Industry: r.Industry, Year: r.Year}
		if _, ok := seen[rep]; ok {
			continue
		}
		seen[rep] = struct{}{}
		out = append(out, rep)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Company != out[j].Company {
			return out[i].Company < out[j].Company
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// Build returns KPIs and reports together.
func Build(rows []domain.MetricRecord) domain.Result[Overview] {
	kpis := Compute(rows)
	if !kpis.IsOK() {
		return domain.Empty[Overview](kpis.Status, kpis.Message)
	}
	return domain.OK(Overview{KPIs: kpis.Data, Reports: Reports(rows)})
}
