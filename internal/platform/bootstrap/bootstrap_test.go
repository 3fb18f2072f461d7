package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuild_MemoryStorage(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StorageMemory, RenewalReminderDays: 7, Location: time.UTC}
	clock := &gateways.FixedClock{At: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}

	app, err := Build(context.Background(), cfg, clock, discard)
	require.NoError(t, err)
	defer app.Close()

	report, err := app.Services.Sweep.RunExpirySweep(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Due)

	plans, err := app.Services.Plan.ListPlans(context.Background(), dto.ListPlansParams{})
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestBuild_UnknownDriver(t *testing.T) {
	_, err := Build(context.Background(), &config.Config{StorageDriver: "sqlite"}, nil, discard)

	assert.ErrorContains(t, err, "unknown storage driver")
}
