// Package dataset loads the metrics, topics and leaders tables and serves
// immutable snapshots of them to the aggregators.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/industry-overview/internal/domain"
)

// ErrNoDataset is returned before the first successful load.
var ErrNoDataset = errors.New("dataset not loaded")

// Files names the three tables within a source.
type Files struct {
	Metrics string
	Topics  string
	Leaders string
}

// Snapshot is one fully loaded dataset. It is never mutated after Load.
type Snapshot struct {
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Source   string    `json:"source"`

	metrics []domain.MetricRecord
	topics  []domain.TopicRecord
	leaders []domain.LeaderRecord
}

// NewSnapshot wraps in-memory tables, enriching topics and leaders with
// company sizes from the metrics.
func NewSnapshot(source string, metrics []domain.MetricRecord, topics []domain.TopicRecord, leaders []domain.LeaderRecord) *Snapshot {
	return &Snapshot{
		Version:  uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Source:   source,
		metrics:  metrics,
		topics:   EnrichTopics(topics, metrics),
		leaders:  EnrichLeaders(leaders, metrics),
	}
}

var _ domain.Tables = (*Snapshot)(nil)

func (s *Snapshot) MetricRows() []domain.MetricRecord { return s.metrics }
func (s *Snapshot) TopicRows() []domain.TopicRecord   { return s.topics }
func (s *Snapshot) LeaderRows() []domain.LeaderRecord { return s.leaders }

// Stats summarizes the snapshot size.
type Stats struct {
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Source   string    `json:"source"`
	Metrics  int       `json:"metric_rows"`
	Topics   int       `json:"topic_rows"`
	Leaders  int       `json:"leader_rows"`
}

func (s *Snapshot) Stats() Stats {
	return Stats{
		Version:  s.Version,
		LoadedAt: s.LoadedAt,
		Source:   s.Source,
		Metrics:  len(s.metrics),
		Topics:   len(s.topics),
		Leaders:  len(s.leaders),
	}
}

// Load reads all three tables from src.
func Load(ctx context.Context, src Source, files Files) (*Snapshot, error) {
	metrics, err := parseFrom(ctx, src, files.Metrics, ParseMetrics)
	if err != nil {
		return nil, err
	}
	topics, err := parseFrom(ctx, src, files.Topics, ParseTopics)
	if err != nil {
		return nil, err
	}
	leaders, err := parseFrom(ctx, src, files.Leaders, ParseLeaders)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(src.String(), metrics, topics, leaders), nil
}

func parseFrom[T any](ctx context.Context, src Source, name string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}

// Store holds the current snapshot. Reloads build a new snapshot completely
// before swapping it in, so readers never see a partial dataset.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot

	source Source
	files  Files
	log    zerolog.Logger
}

// NewStore creates an empty store reading from src.
func NewStore(src Source, files Files, log zerolog.Logger) *Store {
	return &Store{
		source: src,
		files:  files,
		log:    log.With().Str("component", "dataset").Logger(),
	}
}

// Current returns the active snapshot.
func (s *Store) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoDataset
	}
	return s.current, nil
}

// Swap replaces the active snapshot.
func (s *Store) Swap(snap *Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
}

// Reload loads a fresh snapshot from the source and swaps it in. On failure
// the previous snapshot stays active.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	snap, err := Load(ctx, s.source, s.files)
	if err != nil {
		s.log.Error().Err(err).Str("source", s.source.String()).Msg("Failed to load dataset")
		return nil, fmt.Errorf("failed to reload dataset: %w", err)
	}
	s.Swap(snap)

	stats := snap.Stats()
	s.log.Info().
		Str("version", stats.Version).
		Str("source", stats.Source).
		Int("metric_rows", stats.Metrics).
		Int("topic_rows", stats.Topics).
		Int("leader_rows", stats.Leaders).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")
	return snap, nil
}
