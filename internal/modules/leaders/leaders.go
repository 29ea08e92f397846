// Package leaders classifies companies against the curated industry-leader
// list and builds the leaders table.
package leaders

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/modules/filter"
)

// Label is the classification of a company against the reference list.
type Label string

const (
	LabelTierALeader Label = "tier_a_leader"
	LabelOther       Label = "other"
)

// Reference is the set of leader company names a row set is classified against.
type Reference struct {
	names filter.Set
}

// NewReference builds a reference list from company names.
func NewReference(names ...string) Reference {
	return Reference{names: filter.NewSet(names...)}
}

// Names returns the reference companies in ascending order.
func (r Reference) Names() []string {
	return r.names.Values()
}

// Len returns the number of reference companies.
func (r Reference) Len() int {
	return len(r.names)
}

// Classify labels one company. It is a pure function of its inputs; callers
// apply it to whatever row set is currently displayed instead of storing
// labels next to rows.
func Classify(company string, ref Reference) Label {
	if ref.names.Has(company) {
		return LabelTierALeader
	}
	return LabelOther
}

// TierA builds the reference list from the leaders matching the sidebar
// selection (countries and sizes). The tier checkboxes of the leaders table
// do not apply: only tier A companies are ever reference leaders.
func TierA(rows []domain.LeaderRecord, p filter.Predicates) Reference {
	sidebar := p.Sidebar()
	sidebar.Tiers = filter.NewSet(string(domain.TierA))

	names := make([]string, 0)
	for _, r := range filter.Leaders(rows, sidebar) {
		names = append(names, r.Company)
	}
	return NewReference(names...)
}

// Row is one line of the leaders table.
type Row struct {
	Company string      `json:"company"`
	Country string      `json:"country"`
	Year    int         `json:"year"`
	Tier    domain.Tier `json:"tier"`
}

// Table lists the distinct (company, country, year, tier) leader rows matching
// p, sorted by company then year.
func Table(rows []domain.LeaderRecord, p filter.Predicates) domain.Result[[]Row] {
	filtered := filter.Leaders(rows, p)
	if len(filtered) == 0 {
		return domain.NoMatchingRows[[]Row]("no leaders match the selected filters")
	}

	seen := make(map[Row]struct{}, len(filtered))
	out := make([]Row, 0, len(filtered))
	for _, r := range filtered {
		row := Row{Company: r.Company, Country: r.Country, Year: r.Year, Tier: r.Tier}
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Company != out[j].Company {
			return out[i].Company < out[j].Company
		}
		return out[i].Year < out[j].Year
	})
	return domain.OK(out)
}
