// Package geography counts companies per country.
package geography

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
)

// CountryCount is the number of distinct companies reporting from a country.
type CountryCount struct {
	Country      string `json:"country"`
	CountryISO3  string `json:"country_iso3"`
	CompanyCount int    `json:"company_count"`
}

type country struct {
	name string
	iso3 string
}

// CountByCountry counts distinct company ids per (country, iso3), ordered by
// country then iso3.
func CountByCountry(rows []domain.MetricRecord) domain.Result[[]CountryCount] {
	if len(rows) == 0 {
		return domain.NoMatchingRows[[]CountryCount]("no data for the selected filters")
	}

	companies := make(map[country]map[string]struct{})
	for _, r := range rows {
		k := country{name: r.Country, iso3: r.CountryISO3}
		if companies[k] == nil {
			companies[k] = make(map[string]struct{})
		}
		companies[k][r.CompanyID] = struct{}{}
	}

	out := make([]CountryCount, 0, len(companies))
	for k, ids := range companies {
		out = append(out, CountryCount{Country: k.name, CountryISO3: k.iso3, CompanyCount: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].CountryISO3 < out[j].CountryISO3
	})
	return domain.OK(out)
}
