// Package disclosures measures how widely categories and topics are
// disclosed, as a share of the companies in the current selection.
package disclosures

import (
	"sort"

	"github.com/aristath/industry-overview/internal/domain"
)

// TopN caps both rankings.
const TopN = 10

// Share is the disclosure frequency of a category or a (category, topic) pair.
type Share struct {
	Category     string  `json:"category_name"`
	Topic        string  `json:"topic_name,omitempty"`
	CompanyCount int     `json:"company_count"`
	SharePct     float64 `json:"share_pct"`
}

// View is the disclosure frequency of one selection.
type View struct {
	Total      int     `json:"total_companies"`
	Category   string  `json:"selected_category"`
	Categories []Share `json:"categories"`
	Topics     []Share `json:"topics"`
}

type groupKey struct {
	category string
	topic    string
}

// count groups rows by key, counting distinct companies. Groups come back in
// order of first appearance.
func count(rows []domain.TopicRecord, key func(domain.TopicRecord) groupKey) ([]groupKey, map[groupKey]int) {
	seen := make(map[groupKey]map[string]struct{})
	order := make([]groupKey, 0)
	for _, r := range rows {
		k := key(r)
		companies, ok := seen[k]
		if !ok {
			companies = make(map[string]struct{})
			seen[k] = companies
			order = append(order, k)
		}
		companies[r.Company] = struct{}{}
	}
	counts := make(map[groupKey]int, len(seen))
	for k, companies := range seen {
		counts[k] = len(companies)
	}
	return order, counts
}

func shares(rows []domain.TopicRecord, total int, key func(domain.TopicRecord) groupKey) []Share {
	order, counts := count(rows, key)
	out := make([]Share, 0, len(order))
	for _, k := range order {
		n := counts[k]
		out = append(out, Share{
			Category:     k.category,
			Topic:        k.topic,
			CompanyCount: n,
			SharePct:     100 * float64(n) / float64(total),
		})
	}
	return out
}

// top sorts by share descending, keeping input order on ties, and caps at n.
func top(s []Share, n int) []Share {
	out := make([]Share, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SharePct > out[j].SharePct })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Categories returns the top categories by share of total companies.
// total must be positive.
func Categories(rows []domain.TopicRecord, total int) []Share {
	return top(shares(rows, total, func(r domain.TopicRecord) groupKey {
		return groupKey{category: r.CategoryName}
	}), TopN)
}

// Topics returns every (category, topic) pair with its share of total
// companies, unranked. total must be positive.
func Topics(rows []domain.TopicRecord, total int) []Share {
	return shares(rows, total, func(r domain.TopicRecord) groupKey {
		return groupKey{category: r.CategoryName, topic: r.TopicName}
	})
}

// Select restricts topic shares to category and ranks what remains.
// domain.CategoryAll keeps every category.
func Select(topics []Share, category string) []Share {
	if category == domain.CategoryAll {
		return top(topics, TopN)
	}
	selected := make([]Share, 0)
	for _, s := range topics {
		if s.Category == category {
			selected = append(selected, s)
		}
	}
	return top(selected, TopN)
}

// Build computes the disclosure view for topics already filtered by the
// sidebar. total is the distinct-company count of the same selection.
func Build(rows []domain.TopicRecord, total int, category string) domain.Result[View] {
	if total <= 0 || len(rows) == 0 {
		return domain.NoMatchingRows[View]("no topic data for the selected filters")
	}
	return domain.OK(View{
		Total:      total,
		Category:   category,
		Categories: Categories(rows, total),
		Topics:     Select(Topics(rows, total), category),
	})
}
