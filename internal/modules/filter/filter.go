// Package filter implements the predicate engine that narrows the raw tables
// to the rows matching the user's selections.
//
// Predicates combine with logical AND across columns and membership within a
// column. Countries and sizes are required selections: an empty set matches
// nothing. Sub-codes and tiers are optional: a nil set places no restriction,
// while a non-nil empty set still matches nothing.
package filter

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
)

// Set is a membership predicate over one column.
type Set map[string]struct{}

// NewSet builds a non-nil set from values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set has no members.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// allows treats a nil set as unrestricted.
func (s Set) allows(v string) bool {
	if s == nil {
		return true
	}
	return s.Has(v)
}

// Values returns the members in ascending order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Predicates is the full selection applied to the raw tables.
type Predicates struct {
	Countries Set // required
	Sizes     Set // required
	SubCodes  Set // optional, nil = all codes
	Tiers     Set // optional, nil = all tiers
}

func (p Predicates) matchesSidebar(country string, size domain.CompanySize) bool {
	return p.Countries.Has(country) && p.Sizes.Has(string(size))
}

// Metrics returns the metric rows matching p, in input order.
func Metrics(rows []domain.MetricRecord, p Predicates) []domain.MetricRecord {
	out := make([]domain.MetricRecord, 0)
	for _, r := range rows {
		if p.matchesSidebar(r.Country, r.CompanySize) && p.SubCodes.allows(r.SubCode) {
			out = append(out, r)
		}
	}
	return out
}

// Topics returns the topic rows matching the country and size selections.
func Topics(rows []domain.TopicRecord, p Predicates) []domain.TopicRecord {
	out := make([]domain.TopicRecord, 0)
	for _, r := range rows {
		if p.matchesSidebar(r.Country, r.CompanySize) {
			out = append(out, r)
		}
	}
	return out
}

// Leaders returns the leader rows matching the country, size and tier selections.
func Leaders(rows []domain.LeaderRecord, p Predicates) []domain.LeaderRecord {
	out := make([]domain.LeaderRecord, 0)
	for _, r := range rows {
		if p.matchesSidebar(r.Country, r.CompanySize) && p.Tiers.allows(string(r.Tier)) {
			out = append(out, r)
		}
	}
	return out
}

// BySubCodes restricts metric rows to one metric's sub-code union. It is the
// second stage after Metrics, so no sidebar predicate is applied here.
func BySubCodes(rows []domain.MetricRecord, subCodes []string) []domain.MetricRecord {
	codes := NewSet(subCodes...)
	out := make([]domain.MetricRecord, 0)
	for _, r := range rows {
		if codes.Has(r.SubCode) {
			out = append(out, r)
		}
	}
	return out
}
