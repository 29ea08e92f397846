package filter

import (
	"github.com/aristath/industry-overview/internal/domain"
)

// Options lists the selectable values of the sidebar, as offered to the user.
type Options struct {
	Countries []string `json:"countries"`
	Sizes     []string `json:"sizes"`
}

// OptionsOf collects the distinct countries and sizes of the metrics table,
// each sorted ascending.
func OptionsOf(rows []domain.MetricRecord) Options {
	countries := make(Set)
	sizes := make(Set)
	for _, r := range rows {
		countries[r.Country] = struct{}{}
		sizes[string(r.CompanySize)] = struct{}{}
	}
	return Options{Countries: countries.Values(), Sizes: sizes.Values()}
}

// FromRequest turns a view request into predicates. "All" selections expand
// to every value offered by the metrics table.
func FromRequest(req domain.ViewRequest, metrics []domain.MetricRecord) Predicates {
	opts := Options{}
	if req.AllCountries || req.AllSizes {
		opts = OptionsOf(metrics)
	}

	p := Predicates{
		Countries: NewSet(req.Countries...),
		Sizes:     NewSet(req.Sizes...),
	}
	if req.AllCountries {
		p.Countries = NewSet(opts.Countries...)
	}
	if req.AllSizes {
		p.Sizes = NewSet(opts.Sizes...)
	}
	if req.SubCodes != nil {
		p.SubCodes = NewSet(req.SubCodes...)
	}
	if req.Tiers != nil {
		p.Tiers = NewSet(req.Tiers...)
	}
	return p
}

// Sidebar drops the optional predicates, keeping only countries and sizes.
func (p Predicates) Sidebar() Predicates {
	return Predicates{Countries: p.Countries, Sizes: p.Sizes}
}

// Intersect keeps the codes of metric that the predicates allow, preserving
// the metric's order. A nil SubCodes set allows every code.
func (p Predicates) Intersect(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if p.SubCodes.allows(c) {
			out = append(out, c)
		}
	}
	return out
}

// DistinctCompanies counts distinct company ids among rows.
func DistinctCompanies(rows []domain.MetricRecord) int {
	seen := make(Set)
	for _, r := range rows {
		seen[r.CompanyID] = struct{}{}
	}
	return len(seen)
}
