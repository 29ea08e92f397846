// Package dashboard composes the filter engine and the aggregators into the
// views served to the dashboard. Every call reads one dataset snapshot and
// recomputes its view from scratch.
package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/industry-overview/internal/dataset"
	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/exporter"
	"github.com/aristath/industry-overview/internal/modules/catalog"
	"github.com/aristath/industry-overview/internal/modules/disclosures"
	"github.com/aristath/industry-overview/internal/modules/filter"
	"github.com/aristath/industry-overview/internal/modules/geography"
	"github.com/aristath/industry-overview/internal/modules/leaders"
	"github.com/aristath/industry-overview/internal/modules/overview"
	"github.com/aristath/industry-overview/internal/modules/performance"
	"github.com/aristath/industry-overview/internal/modules/trends"
)

// Snapshots provides the active dataset.
type Snapshots interface {
	Current() (*dataset.Snapshot, error)
}

// Observer records aggregation timings.
type Observer interface {
	ObserveAggregation(view, status string, d time.Duration)
}

// Service computes dashboard views.
type Service struct {
	snapshots Snapshots
	catalog   *catalog.Catalog
	observer  Observer
	log       zerolog.Logger
}

// NewService creates a dashboard service. observer may be nil.
func NewService(snapshots Snapshots, cat *catalog.Catalog, observer Observer, log zerolog.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		catalog:   cat,
		observer:  observer,
		log:       log.With().Str("service", "dashboard").Logger(),
	}
}

// MetricView is a view of one catalog metric.
type MetricView[T any] struct {
	Metric catalog.Metric   `json:"metric"`
	Codes  []string         `json:"sub_codes"`
	Result domain.Result[T] `json:"result"`
}

// Summary is the landing view: KPIs, geography and disclosures of one selection.
type Summary struct {
	Overview    domain.Result[overview.Overview]        `json:"overview"`
	Geography   domain.Result[[]geography.CountryCount] `json:"geography"`
	Disclosures domain.Result[disclosures.View]         `json:"disclosures"`
}

// selection is one request resolved against one snapshot.
type selection struct {
	snap       *dataset.Snapshot
	predicates filter.Predicates
	metrics    []domain.MetricRecord // sidebar-filtered
}

func (s *Service) resolve(req domain.ViewRequest) (selection, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return selection{}, err
	}
	p := filter.FromRequest(req, snap.MetricRows())
	return selection{
		snap:       snap,
		predicates: p,
		metrics:    filter.Metrics(snap.MetricRows(), p.Sidebar()),
	}, nil
}

func (s *Service) observe(view string, status domain.Status, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveAggregation(view, string(status), time.Since(start))
	}
}

// Catalog returns the metric catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Options lists the selectable countries and sizes of the active dataset.
func (s *Service) Options() (filter.Options, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return filter.Options{}, err
	}
	return filter.OptionsOf(snap.MetricRows()), nil
}

// Overview returns the KPIs and reports of the selection.
func (s *Service) Overview(req domain.ViewRequest) (domain.Result[overview.Overview], error) {
	sel, err := s.resolve(req)
	if err != nil {
		return domain.Result[overview.Overview]{}, err
	}
	return s.overview(sel), nil
}

func (s *Service) overview(sel selection) domain.Result[overview.Overview] {
	start := time.Now()
	res := overview.Build(sel.metrics)
	s.observe("overview", res.Status, start)
	return res
}

// Geography counts companies per country.
func (s *Service) Geography(req domain.ViewRequest) (domain.Result[[]geography.CountryCount], error) {
	sel, err := s.resolve(req)
	if err != nil {
		return domain.Result[[]geography.CountryCount]{}, err
	}
	return s.geography(sel), nil
}

func (s *Service) geography(sel selection) domain.Result[[]geography.CountryCount] {
	start := time.Now()
	res := geography.CountByCountry(sel.metrics)
	s.observe("geography", res.Status, start)
	return res
}

// Disclosures computes category and topic shares. The total is the
// distinct-company count of the metrics selection, the same figure the KPIs
// report.
func (s *Service) Disclosures(req domain.ViewRequest) (domain.Result[disclosures.View], error) {
	sel, err := s.resolve(req)
	if err != nil {
		return domain.Result[disclosures.View]{}, err
	}
	return s.disclosures(sel, req.SelectedCategory()), nil
}

func (s *Service) disclosures(sel selection, category string) domain.Result[disclosures.View] {
	start := time.Now()
	topics := filter.Topics(sel.snap.TopicRows(), sel.predicates.Sidebar())
	res := disclosures.Build(topics, filter.DistinctCompanies(sel.metrics), category)
	s.observe("disclosures", res.Status, start)
	return res
}

// Summary computes overview, geography and disclosures concurrently. The
// three aggregators are independent and read the same immutable snapshot.
func (s *Service) Summary(ctx context.Context, req domain.ViewRequest) (Summary, error) {
	sel, err := s.resolve(req)
	if err != nil {
		return Summary{}, err
	}

	var out Summary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Overview = s.overview(sel)
		return ctx.Err()
	})
	g.Go(func() error {
		out.Geography = s.geography(sel)
		return ctx.Err()
	})
	g.Go(func() error {
		out.Disclosures = s.disclosures(sel, req.SelectedCategory())
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}

// Leaders returns the leaders table for the selected countries, sizes and tiers.
func (s *Service) Leaders(req domain.ViewRequest) (domain.Result[[]leaders.Row], error) {
	sel, err := s.resolve(req)
	if err != nil {
		return domain.Result[[]leaders.Row]{}, err
	}
	start := time.Now()
	res := leaders.Table(sel.snap.LeaderRows(), sel.predicates)
	s.observe("leaders", res.Status, start)
	return res, nil
}

// codes resolves the sub-codes of the requested metric. Scoped metrics keep
// only the requested scopes.
func (s *Service) codes(sel selection, key string) (catalog.Metric, []string, error) {
	metric, err := s.catalog.Lookup(key)
	if err != nil {
		return catalog.Metric{}, nil, err
	}
	if !metric.Scoped {
		return metric, metric.SubCodes, nil
	}
	return metric, sel.predicates.Intersect(metric.SubCodes), nil
}

// Performance computes the trailing averages of the requested metric and
// their views, labelled against the tier A leaders of the sidebar selection.
func (s *Service) Performance(req domain.ViewRequest) (MetricView[performance.Report], error) {
	sel, err := s.resolve(req)
	if err != nil {
		return MetricView[performance.Report]{}, err
	}
	metric, codes, err := s.codes(sel, req.MetricKey)
	if err != nil {
		return MetricView[performance.Report]{}, err
	}
	return MetricView[performance.Report]{Metric: metric, Codes: codes, Result: s.performance(sel, codes)}, nil
}

func (s *Service) performance(sel selection, codes []string) domain.Result[performance.Report] {
	start := time.Now()
	var res domain.Result[performance.Report]
	if len(codes) == 0 {
		res = domain.NoMatchingRows[performance.Report]("select at least one scope")
	} else if avgs := performance.TrailingAverages(sel.metrics, codes); !avgs.IsOK() {
		res = domain.Empty[performance.Report](avgs.Status, avgs.Message)
	} else {
		ref := leaders.TierA(sel.snap.LeaderRows(), sel.predicates)
		res = domain.OK(performance.BuildReport(avgs.Data, ref))
	}
	s.observe("performance", res.Status, start)
	return res
}

// Trends computes the year-over-year report of the requested metric.
func (s *Service) Trends(req domain.ViewRequest) (MetricView[trends.Report], error) {
	sel, err := s.resolve(req)
	if err != nil {
		return MetricView[trends.Report]{}, err
	}
	metric, codes, err := s.codes(sel, req.MetricKey)
	if err != nil {
		return MetricView[trends.Report]{}, err
	}
	return MetricView[trends.Report]{Metric: metric, Codes: codes, Result: s.trends(sel, codes)}, nil
}

func (s *Service) trends(sel selection, codes []string) domain.Result[trends.Report] {
	start := time.Now()
	var res domain.Result[trends.Report]
	if len(codes) == 0 {
		res = domain.NoMatchingRows[trends.Report]("select at least one scope")
	} else {
		res = trends.YearOverYear(sel.metrics, codes)
	}
	s.observe("trends", res.Status, start)
	return res
}

// Workbook gathers the detailed tables of the requested metric for export.
// Averages are the full, untrimmed list.
func (s *Service) Workbook(req domain.ViewRequest) (exporter.MetricWorkbook, error) {
	sel, err := s.resolve(req)
	if err != nil {
		return exporter.MetricWorkbook{}, err
	}
	metric, codes, err := s.codes(sel, req.MetricKey)
	if err != nil {
		return exporter.MetricWorkbook{}, err
	}

	wb := exporter.MetricWorkbook{Metric: metric, Trend: s.trends(sel, codes)}
	if perf := s.performance(sel, codes); perf.IsOK() {
		wb.Averages = perf.Data.Averages
	}
	return wb, nil
}
