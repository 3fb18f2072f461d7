// Package scheduler runs the membership sweeps on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron runner. Overlapping runs of one sweep are skipped.
type Scheduler struct {
	cron   *cron.Cron
	sweep  portssvc.SweepSvc
	logger *slog.Logger
}

// New registers the expiry and monthly-reset sweeps on the given specs, evaluated in loc.
func New(sweep portssvc.SweepSvc, expirySpec, monthlySpec string, loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		sweep:  sweep,
		logger: logger.With(slog.String("job", "scheduler")),
	}
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger), cron.Recover(cron.DiscardLogger)),
	)

	if _, err := s.cron.AddFunc(expirySpec, func() { s.run("expiry", s.sweep.RunExpirySweep) }); err != nil {
		return nil, fmt.Errorf("invalid expiry schedule %q: %w", expirySpec, err)
	}
	if _, err := s.cron.AddFunc(monthlySpec, func() { s.run("monthly_reset", s.sweep.RunMonthlyResetSweep) }); err != nil {
		return nil, fmt.Errorf("invalid monthly reset schedule %q: %w", monthlySpec, err)
	}
	return s, nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for running jobs.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("Scheduler started", slog.Int("jobs", len(s.cron.Entries())))
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) run(name string, fn func(ctx context.Context, asOf time.Time) (*portssvc.SweepReport, error)) {
	logger := s.logger.With(slog.String("sweep", name))
	ctx := middleware.WithLogger(context.Background(), logger)

	start := time.Now()
	report, err := fn(ctx, time.Time{})
	if err != nil {
		logger.Error("Sweep failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("Sweep finished",
		slog.Time("as_of", report.AsOf),
		slog.Int("due", report.Due),
		slog.Int("processed", report.Processed),
		slog.Int("failed", report.Failed),
		slog.Duration("took", time.Since(start)))
}
