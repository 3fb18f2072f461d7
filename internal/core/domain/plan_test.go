package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestMembershipPlan_DurationDays(t *testing.T) {
	tests := []struct {
		name  string
		unit  domain.DurationUnit
		value int
		want  int
	}{
		{name: "one day", unit: domain.DurationDaily, value: 1, want: 1},
		{name: "two weeks", unit: domain.DurationWeekly, value: 2, want: 14},
		{name: "quarter", unit: domain.DurationMonthly, value: 3, want: 90},
		{name: "annual", unit: domain.DurationAnnual, value: 1, want: 365},
		{name: "zero multiplier counts once", unit: domain.DurationMonthly, value: 0, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := domain.MembershipPlan{DurationUnit: tt.unit, DurationValue: tt.value}
			assert.Equal(t, tt.want, plan.DurationDays())
		})
	}
}

func TestMembershipPlan_EndDate(t *testing.T) {
	plan := domain.MembershipPlan{DurationUnit: domain.DurationMonthly, DurationValue: 1}
	start := time.Date(2026, time.January, 31, 17, 45, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), plan.EndDate(start))
}

func TestMembershipPlan_AllowsResource(t *testing.T) {
	cowork := domain.MembershipPlan{SpaceType: domain.SpaceCoworking}
	coliving := domain.MembershipPlan{SpaceType: domain.SpaceColiving, AllowsExclusiveFloor: true}

	assert.True(t, cowork.AllowsResource(domain.ResourceDesk))
	assert.False(t, cowork.AllowsResource(domain.ResourceBed))
	assert.False(t, cowork.AllowsResource(domain.ResourceFloor))
	assert.True(t, coliving.AllowsResource(domain.ResourceBed))
	assert.True(t, coliving.AllowsResource(domain.ResourceFloor))
	assert.Equal(t, domain.ResourceBed, coliving.DeskOrBedKind())
}

func TestAddYears(t *testing.T) {
	leap := time.Date(2028, time.February, 29, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2029, time.March, 1, 0, 0, 0, 0, time.UTC), domain.AddYears(leap, 1))
	assert.Equal(t, time.Date(2032, time.February, 29, 0, 0, 0, 0, time.UTC), domain.AddYears(leap, 4))
}

func TestIsFutureDay(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.False(t, domain.IsFutureDay(now.Add(-24*time.Hour), now))
	assert.False(t, domain.IsFutureDay(time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC), now), "later the same day")
	assert.True(t, domain.IsFutureDay(time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC), now))
}
