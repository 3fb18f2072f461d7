package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSweep struct {
	mock.Mock
}

func (m *mockSweep) RunExpirySweep(ctx context.Context, asOf time.Time) (*portssvc.SweepReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SweepReport), args.Error(1)
}

func (m *mockSweep) RunMonthlyResetSweep(ctx context.Context, asOf time.Time) (*portssvc.SweepReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SweepReport), args.Error(1)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNew_RegistersBothSweeps(t *testing.T) {
	s, err := New(new(mockSweep), "0 2 * * *", "30 2 * * *", time.UTC, discard)

	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)
}

func TestNew_RejectsBadSpec(t *testing.T) {
	_, err := New(new(mockSweep), "every night", "30 2 * * *", time.UTC, discard)

	assert.ErrorContains(t, err, "invalid expiry schedule")
}

func TestRun_SweepsAsOfNow(t *testing.T) {
	sweep := new(mockSweep)
	sweep.On("RunExpirySweep", mock.Anything, time.Time{}).Return(&portssvc.SweepReport{Due: 1, Processed: 1}, nil).Once()
	sweep.On("RunMonthlyResetSweep", mock.Anything, time.Time{}).Return(nil, errors.New("db down")).Once()
	s, err := New(sweep, "0 2 * * *", "30 2 * * *", nil, discard)
	require.NoError(t, err)

	s.run("expiry", sweep.RunExpirySweep)
	s.run("monthly_reset", sweep.RunMonthlyResetSweep)

	sweep.AssertExpectations(t)
}

func TestRun_StopsWithContext(t *testing.T) {
	s, err := New(new(mockSweep), "0 2 * * *", "30 2 * * *", time.UTC, discard)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
