package handlers

import (
	"net/http"
	"strings"

	"github.com/aristath/industry-overview/internal/domain"
)

// parseList splits a comma separated query value. ok is false when the
// parameter is absent; a present but empty parameter yields an empty,
// non-nil list.
func parseList(r *http.Request, key string) (values []string, ok bool) {
	q := r.URL.Query()
	if _, present := q[key]; !present {
		return nil, false
	}
	values = make([]string, 0)
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values, true
}

// parseViewRequest reads the selection of one request. Absent countries or
// sizes select everything; absent scopes or tiers place no restriction.
func parseViewRequest(r *http.Request) (domain.ViewRequest, error) {
	req := domain.ViewRequest{
		Category:  r.URL.Query().Get("category"),
		MetricKey: strings.TrimSpace(r.URL.Query().Get("metric")),
	}

	if countries, ok := parseList(r, "countries"); ok {
		req.Countries = countries
	} else {
		req.AllCountries = true
	}
	if sizes, ok := parseList(r, "sizes"); ok {
		req.Sizes = sizes
	} else {
		req.AllSizes = true
	}
	if scopes, ok := parseList(r, "scopes"); ok {
		req.SubCodes = scopes
	}
	if tiers, ok := parseList(r, "tiers"); ok {
		for i, t := range tiers {
			tiers[i] = strings.ToUpper(t)
		}
		req.Tiers = tiers
	}

	if err := req.Validate(); err != nil {
		return domain.ViewRequest{}, err
	}
	return req, nil
}
