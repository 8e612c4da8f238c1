// Package scheduler runs the periodic analytics recompute that keeps net worth
// history growing for users who do not edit their profile.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Recomputer refreshes the analytics of every stored profile.
type Recomputer interface {
	RecomputeEveryProfile(ctx context.Context) (ok int, failed int, err error)
}

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a standard 5-field cron expression (e.g., "0 2 * * *" for 02:00 daily)
	Schedule string
	// Timeout bounds a complete pass over all profiles
	Timeout time.Duration
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule: "0 2 * * *",
		Timeout:  10 * time.Minute,
		Enabled:  false,
	}
}

// Scheduler manages the snapshot job
type Scheduler struct {
	cron       *cron.Cron
	recomputer Recomputer
	config     Config
	logger     *slog.Logger
	entryID    cron.EntryID
}

func New(cfg Config, recomputer Recomputer, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		recomputer: recomputer,
		config:     cfg,
		logger:     logger,
	}
}

// Start registers the job and starts the cron loop. It is a no-op when disabled.
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Snapshot scheduler is disabled, skipping start")
		return nil
	}

	// 5-field expressions get a leading seconds field.
	schedule := "0 " + s.config.Schedule

	entryID, err := s.cron.AddFunc(schedule, s.runSnapshotJob)
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Snapshot scheduler started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("timeout", s.config.Timeout),
	)

	return nil
}

// Stop halts the cron loop; the returned context is done once a running job finishes.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping snapshot scheduler...")
	return s.cron.Stop()
}

// RunNow triggers an immediate pass in the background.
func (s *Scheduler) RunNow() {
	go s.runSnapshotJob()
}

func (s *Scheduler) runSnapshotJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Info("Starting scheduled analytics snapshot",
		slog.Time("start_time", startTime),
	)

	ok, failed, err := s.recomputer.RecomputeEveryProfile(ctx)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Analytics snapshot failed",
			slog.String("error", err.Error()),
			slog.Int("profiles_recomputed", ok),
			slog.Int("profiles_failed", failed),
			slog.Duration("duration", duration),
		)
		return
	}

	s.logger.Info("Analytics snapshot completed",
		slog.Int("profiles_recomputed", ok),
		slog.Int("profiles_failed", failed),
		slog.Duration("duration", duration),
	)
}

// GetNextRunTime returns the next scheduled run time
func (s *Scheduler) GetNextRunTime() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}
