// Command cowork_sweep runs the membership sweeps once, optionally as of a past day, and
// prints the reports as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/SscSPs/cowork_membership_app/internal/platform/bootstrap"
	"github.com/SscSPs/cowork_membership_app/internal/platform/config"
	flag "github.com/spf13/pflag"
)

func main() {
	var (
		date  = flag.StringP("date", "d", "", "day to sweep as of (YYYY-MM-DD); defaults to today")
		which = flag.StringP("sweep", "s", "all", "sweep to run: expiry, monthly-reset or all")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(*date, *which, logger); err != nil {
		logger.Error("Sweep failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(date, which string, logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var clock gateways.Clock
	if date != "" {
		day, err := parseSweepDay(date, cfg.Location, time.Now())
		if err != nil {
			return err
		}
		// Noon keeps the day stable across offsets
		clock = &gateways.FixedClock{At: day.Add(12 * time.Hour)}
	}

	ctx := middleware.WithLogger(context.Background(), logger.With(slog.String("job", "cowork_sweep")))
	app, err := bootstrap.Build(ctx, cfg, clock, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	sweeps := map[string]func(context.Context, time.Time) (*portssvc.SweepReport, error){
		"expiry":        app.Services.Sweep.RunExpirySweep,
		"monthly-reset": app.Services.Sweep.RunMonthlyResetSweep,
	}
	order := []string{"expiry", "monthly-reset"}
	if which != "all" {
		if _, ok := sweeps[which]; !ok {
			return fmt.Errorf("unknown sweep %q", which)
		}
		order = []string{which}
	}

	reports := make(map[string]*portssvc.SweepReport, len(order))
	for _, name := range order {
		report, err := sweeps[name](ctx, time.Time{})
		if err != nil {
			return fmt.Errorf("%s sweep: %w", name, err)
		}
		reports[name] = report
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// parseSweepDay reads a --date value; days after now are refused.
func parseSweepDay(date string, loc *time.Location, now time.Time) (time.Time, error) {
	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", date, err)
	}
	if domain.IsFutureDay(day, now.In(loc)) {
		return time.Time{}, fmt.Errorf("invalid --date %q: sweeps cannot run ahead of today", date)
	}
	return domain.DateOf(day), nil
}
