package performance

import (
	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/modules/leaders"
)

// Report bundles every view of one metric's averages. Each view is labelled
// from its own row set.
type Report struct {
	Averages     []LabelledAverage                `json:"averages"`
	Bounds       Bounds                           `json:"bounds"`
	Trimmed      domain.Result[[]LabelledAverage] `json:"trimmed"`
	Ranking      []LabelledAverage                `json:"ranking"`
	Positive     domain.Result[[]LabelledAverage] `json:"positive"`
	Distribution domain.Result[Distribution]      `json:"distribution"`
}

// BuildReport derives all views from one ok TrailingAverages result.
func BuildReport(avgs []CompanyAverage, ref leaders.Reference) Report {
	return Report{
		Averages:     Label(avgs, ref),
		Bounds:       OutlierBounds(avgs),
		Trimmed:      labelResult(TrimOutliers(avgs), ref),
		Ranking:      Label(Ranking(avgs, RankingLimit), ref),
		Positive:     labelResult(PositiveOnly(avgs), ref),
		Distribution: Describe(avgs),
	}
}

func labelResult(res domain.Result[[]CompanyAverage], ref leaders.Reference) domain.Result[[]LabelledAverage] {
	if !res.IsOK() {
		return domain.Empty[[]LabelledAverage](res.Status, res.Message)
	}
	return domain.OK(Label(res.Data, ref))
}
