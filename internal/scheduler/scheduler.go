// Package scheduler refreshes the dataset in the background. Reloads run on a
// cron expression with a seconds field; an overrunning reload makes the next
// tick skip rather than queue behind it.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// scheduleParser accepts six-field expressions ("0 0 */6 * * *") and
// descriptors ("@hourly", "@every 30m").
var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSchedule validates a reload schedule without registering anything.
func ParseSchedule(spec string) (cron.Schedule, error) {
	sched, err := scheduleParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return sched, nil
}

// Job is a unit of background work such as a dataset reload.
type Job interface {
	Run() error
	Name() string
}

// Scheduler runs registered jobs on their schedules.
type Scheduler struct {
	cron    *cron.Cron
	entries map[string]cron.EntryID
	log     zerolog.Logger
}

// New creates a stopped scheduler.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(scheduleParser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		entries: make(map[string]cron.EntryID),
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Start begins firing jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.entries)).Msg("Scheduler started")
}

// Stop halts the scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers job under spec. A failed run is logged; the job keeps its
// slot and fires again on the next tick.
func (s *Scheduler) AddJob(spec string, job Job) error {
	sched, err := ParseSchedule(spec)
	if err != nil {
		return fmt.Errorf("job %s: %w", job.Name(), err)
	}

	id := s.cron.Schedule(sched, cron.FuncJob(func() {
		start := time.Now()
		if err := job.Run(); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Dur("duration", time.Since(start)).Msg("Job failed")
			return
		}
		s.log.Debug().Str("job", job.Name()).Dur("duration", time.Since(start)).Msg("Job completed")
	}))
	s.entries[job.Name()] = id

	s.log.Info().
		Str("schedule", spec).
		Str("job", job.Name()).
		Time("next_run", sched.Next(time.Now())).
		Msg("Job registered")
	return nil
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// NextRun returns when the named job fires next. ok is false for unknown jobs
// and before Start.
func (s *Scheduler) NextRun(name string) (next time.Time, ok bool) {
	id, found := s.entries[name]
	if !found {
		return time.Time{}, false
	}
	entry := s.cron.Entry(id)
	if entry.Next.IsZero() {
		return time.Time{}, false
	}
	return entry.Next, true
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("Running job immediately")
	return job.Run()
}
