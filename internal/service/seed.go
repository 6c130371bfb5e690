package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"confhub-backend/internal/events"
	"confhub-backend/internal/models"
)

const (
	DefaultSeedBatchSize  = 5
	DefaultSeedBatchPause = 500 * time.Millisecond
)

type Seeder struct {
	store      EventStore
	normalizer *events.Normalizer
	batchSize  int
	pause      time.Duration
	wait       func(ctx context.Context, d time.Duration) error
	log        *slog.Logger
}

func NewSeeder(log *slog.Logger, store EventStore, normalizer *events.Normalizer, batchSize int, pause time.Duration) *Seeder {
	if batchSize <= 0 {
		batchSize = DefaultSeedBatchSize
	}
	if pause < 0 {
		pause = 0
	}
	return &Seeder{
		store:      store,
		normalizer: normalizer,
		batchSize:  batchSize,
		pause:      pause,
		wait:       sleepCtx,
		log:        log.With("service", "seed"),
	}
}

type SeedReport struct {
	AlreadySeeded bool
	Import        events.Report
	Batches       int
	FailedBatches int
	Inserted      int
}

// Prepare parses and normalizes the raw table without touching the store.
func (s *Seeder) Prepare(r io.Reader) ([]models.Event, events.Report, error) {
	records, err := events.ParseCSV(r)
	if err != nil {
		return nil, events.Report{}, err
	}
	evs, report := s.normalizer.Normalize(records)
	return evs, report, nil
}

// Seed imports the table into an empty store. A store that already holds
// events is left untouched. Failed batches are logged and skipped.
func (s *Seeder) Seed(ctx context.Context, r io.Reader) (*SeedReport, error) {
	has, err := s.store.HasAny(ctx)
	if err != nil {
		return nil, fmt.Errorf("check existing events: %w", err)
	}
	if has {
		s.log.InfoContext(ctx, "events already seeded, skipping")
		return &SeedReport{AlreadySeeded: true}, nil
	}

	evs, imp, err := s.Prepare(r)
	if err != nil {
		return nil, err
	}
	report := &SeedReport{Import: imp}

	for start := 0; start < len(evs); start += s.batchSize {
		if start > 0 {
			if err := s.wait(ctx, s.pause); err != nil {
				return report, err
			}
		}
		end := min(start+s.batchSize, len(evs))
		batch := evs[start:end]
		report.Batches++

		if err := s.store.InsertBatch(ctx, batch); err != nil {
			report.FailedBatches++
			s.log.ErrorContext(ctx, "insert batch failed",
				slog.Int("batch", report.Batches),
				slog.Int("size", len(batch)),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Inserted += len(batch)
		s.log.InfoContext(ctx, "batch inserted", slog.Int("batch", report.Batches), slog.Int("size", len(batch)))
	}

	s.log.InfoContext(ctx, "seeding finished",
		slog.Int("read", imp.Read),
		slog.Int("accepted", imp.Accepted),
		slog.Int("rejected", len(imp.Rejected)),
		slog.Int("inserted", report.Inserted),
		slog.Int("failed_batches", report.FailedBatches),
	)
	return report, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
