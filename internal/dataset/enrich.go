package dataset

import (
	"github.com/aristath/industry-overview/internal/domain"
)

// sizesByCompany maps each company to its distinct sizes in the metrics
// table, in order of first appearance.
func sizesByCompany(metrics []domain.MetricRecord) map[string][]domain.CompanySize {
	out := make(map[string][]domain.CompanySize)
	seen := make(map[string]map[domain.CompanySize]struct{})
	for _, m := range metrics {
		if seen[m.Company] == nil {
			seen[m.Company] = make(map[domain.CompanySize]struct{})
		}
		if _, ok := seen[m.Company][m.CompanySize]; ok {
			continue
		}
		seen[m.Company][m.CompanySize] = struct{}{}
		out[m.Company] = append(out[m.Company], m.CompanySize)
	}
	return out
}

// EnrichTopics attaches company sizes from the metrics table. A company
// reported under several sizes yields one topic row per size; a company absent
// from the metrics keeps an empty size and matches no size selection.
func EnrichTopics(topics []domain.TopicRecord, metrics []domain.MetricRecord) []domain.TopicRecord {
	sizes := sizesByCompany(metrics)
	out := make([]domain.TopicRecord, 0, len(topics))
	for _, t := range topics {
		known := sizes[t.Company]
		if len(known) == 0 {
			t.CompanySize = ""
			out = append(out, t)
			continue
		}
		for _, s := range known {
			t.CompanySize = s
			out = append(out, t)
		}
	}
	return out
}

// EnrichLeaders attaches company sizes the same way EnrichTopics does.
func EnrichLeaders(leaders []domain.LeaderRecord, metrics []domain.MetricRecord) []domain.LeaderRecord {
	sizes := sizesByCompany(metrics)
	out := make([]domain.LeaderRecord, 0, len(leaders))
	for _, l := range leaders {
		known := sizes[l.Company]
		if len(known) == 0 {
			l.CompanySize = ""
			out = append(out, l)
			continue
		}
		for _, s := range known {
			l.CompanySize = s
			out = append(out, l)
		}
	}
	return out
}
