package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSweepDay(t *testing.T) {
	west := time.FixedZone("WEST", 60*60)
	// 00:30 on the 17th in WEST
	now := time.Date(2026, time.October, 16, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{"past day", "2026-09-30", time.UTC, time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC), false},
		{"today", "2026-10-16", time.UTC, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow", "2026-10-17", time.UTC, time.Time{}, true},
		{"today in the configured zone", "2026-10-17", west, time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC), false},
		{"malformed", "16/10/2026", time.UTC, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSweepDay(tt.date, tt.loc, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
