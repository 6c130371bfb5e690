package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"confhub-backend/internal/service"
)

// Generator creates reminder notifications for a point in time.
type Generator interface {
	GenerateReminders(ctx context.Context, now time.Time) (service.ReminderReport, error)
}

// Purger removes sign-in codes that can no longer be used.
type Purger interface {
	PurgeExpiredCodes(ctx context.Context) (int64, error)
}

// Scheduler runs the reminder job on a cron schedule. Expired sign-in
// codes are purged on the same tick.
type Scheduler struct {
	cron      *cron.Cron
	generator Generator
	purger    Purger
	timeout   time.Duration
	now       func() time.Time
	log       *slog.Logger
}

const defaultJobTimeout = 5 * time.Minute

// New parses the cron schedule and registers the job. purger may be nil.
func New(log *slog.Logger, schedule string, loc *time.Location, generator Generator, purger Purger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		generator: generator,
		purger:    purger,
		timeout:   defaultJobTimeout,
		now:       time.Now,
		log:       log.With("component", "reminder"),
	}
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("parse reminder schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce executes a single job pass and reports whether it completed.
func (s *Scheduler) RunOnce(ctx context.Context) (service.ReminderReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	report, err := s.generator.GenerateReminders(ctx, start)
	if err != nil {
		s.log.ErrorContext(ctx, "reminder job failed", slog.String("error", err.Error()))
		return report, err
	}

	if s.purger != nil {
		if _, err := s.purger.PurgeExpiredCodes(ctx); err != nil {
			s.log.WarnContext(ctx, "purge expired codes failed", slog.String("error", err.Error()))
		}
	}

	s.log.InfoContext(ctx, "reminder job finished",
		slog.Int("created", report.Created),
		slog.Duration("took", s.now().Sub(start)),
	)
	return report, nil
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("reminder scheduler started", slog.Time("next", s.Next()))

	<-ctx.Done()

	done := s.cron.Stop()
	<-done.Done()
	s.log.Info("reminder scheduler stopped")
	return nil
}

// SetClock replaces the time source used for job runs.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// Next reports the next scheduled run, or the zero time before Run.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
