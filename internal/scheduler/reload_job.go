package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/industry-overview/internal/dataset"
	"github.com/aristath/industry-overview/internal/events"
)

// Reloader loads a fresh dataset snapshot and makes it current.
type Reloader interface {
	Reload(ctx context.Context) (*dataset.Snapshot, error)
}

// ReloadJob refreshes the dataset and announces the outcome on the event bus.
type ReloadJob struct {
	store   Reloader
	events  *events.Manager
	timeout time.Duration
	log     zerolog.Logger

	// serializes scheduled and manual reloads
	mu sync.Mutex
}

// NewReloadJob creates the dataset reload job
func NewReloadJob(store Reloader, eventManager *events.Manager, timeout time.Duration, log zerolog.Logger) *ReloadJob {
	return &ReloadJob{
		store:   store,
		events:  eventManager,
		timeout: timeout,
		log:     log.With().Str("job", "dataset_reload").Logger(),
	}
}

// Name returns the job name
func (j *ReloadJob) Name() string {
	return "dataset_reload"
}

// Run reloads on the cron schedule
func (j *ReloadJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	_, err := j.Trigger(ctx, "schedule")
	return err
}

// Trigger reloads immediately. trigger names the caller in the emitted event.
func (j *ReloadJob) Trigger(ctx context.Context, trigger string) (*dataset.Snapshot, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	snap, err := j.store.Reload(ctx)
	if err != nil {
		j.events.Emit("dataset", &events.ReloadFailedData{Error: err.Error(), Trigger: trigger})
		return nil, err
	}

	stats := snap.Stats()
	j.events.Emit("dataset", &events.DatasetReloadedData{
		Version:    stats.Version,
		Source:     stats.Source,
		MetricRows: stats.Metrics,
		TopicRows:  stats.Topics,
		LeaderRows: stats.Leaders,
		Trigger:    trigger,
	})
	j.log.Info().Str("trigger", trigger).Str("version", stats.Version).Msg("Dataset reloaded")
	return snap, nil
}
