package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CategoryAll selects every category in the disclosure view.
const CategoryAll = "all"

// ViewRequest carries the selections of one recomputation. It is built once
// per request by the presentation layer and never mutated by the core.
type ViewRequest struct {
	// AllCountries / AllSizes select every value present in the dataset and
	// take precedence over the explicit lists.
	AllCountries bool     `json:"all_countries"`
	Countries    []string `json:"countries" validate:"dive,required,max=128"`
	AllSizes     bool     `json:"all_sizes"`
	Sizes        []string `json:"sizes" validate:"dive,required,max=64"`

	// SubCodes restricts a metric to some of its sub-codes (GHG scopes).
	// Nil means "all codes of the metric".
	SubCodes []string `json:"sub_codes,omitempty" validate:"omitempty,dive,required,max=32"`

	// Tiers restricts the leaders table. Nil means both tiers.
	Tiers []string `json:"tiers,omitempty" validate:"omitempty,dive,oneof=A B"`

	Category  string `json:"category,omitempty" validate:"max=256"`
	MetricKey string `json:"metric,omitempty" validate:"omitempty,max=64"`
}

var requestValidator = validator.New()

// Validate checks the request for malformed selections.
func (r ViewRequest) Validate() error {
	if err := requestValidator.Struct(r); err != nil {
		return fmt.Errorf("invalid view request: %w", err)
	}
	return nil
}

// SelectedCategory returns the normalized category selection, CategoryAll when
// nothing specific is selected.
func (r ViewRequest) SelectedCategory() string {
	c := strings.TrimSpace(r.Category)
	if c == "" || strings.EqualFold(c, CategoryAll) {
		return CategoryAll
	}
	return c
}
