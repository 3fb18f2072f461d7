package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from domain.MembershipState
		to   domain.MembershipState
		want bool
	}{
		{domain.MembershipDraft, domain.MembershipConfirmed, true},
		{domain.MembershipDraft, domain.MembershipActive, false},
		{domain.MembershipConfirmed, domain.MembershipActive, true},
		{domain.MembershipConfirmed, domain.MembershipDraft, false},
		{domain.MembershipActive, domain.MembershipExpired, true},
		{domain.MembershipActive, domain.MembershipConfirmed, false},
		{domain.MembershipExpired, domain.MembershipCancelled, false},
		{domain.MembershipCancelled, domain.MembershipActive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestMembership_Transition(t *testing.T) {
	m := domain.Membership{Reference: "MEM-000001", State: domain.MembershipExpired}

	err := m.Transition(domain.MembershipActive)

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	assert.Equal(t, domain.MembershipExpired, m.State)
}

func TestMembership_RenewalDraft(t *testing.T) {
	desk := "desk-1"
	invoice := "inv-1"
	plan := domain.MembershipPlan{DurationUnit: domain.DurationWeekly, DurationValue: 2}
	m := domain.Membership{
		MembershipID:     "m-1",
		MemberID:         "member-1",
		PlanID:           "plan-1",
		ResourceID:       &desk,
		DateStart:        time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:          time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		State:            domain.MembershipActive,
		PoliciesAccepted: true,
		InvoiceIDs:       []string{invoice},
	}

	next := m.RenewalDraft("m-2", plan)

	assert.Equal(t, "m-2", next.MembershipID)
	assert.Equal(t, domain.MembershipDraft, next.State)
	assert.Equal(t, m.DateEnd, next.DateStart)
	assert.Equal(t, time.Date(2026, time.March, 29, 0, 0, 0, 0, time.UTC), next.DateEnd)
	require.NotNil(t, next.RenewedFromID)
	assert.Equal(t, "m-1", *next.RenewedFromID)
	assert.Equal(t, &desk, next.ResourceID)
	assert.True(t, next.PoliciesAccepted)
	assert.Empty(t, next.InvoiceIDs)
}

func TestMonthlyResetDue(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		start time.Time
		today time.Time
		want  bool
	}{
		{name: "same day of month", start: day(2026, time.January, 10), today: day(2026, time.February, 10), want: true},
		{name: "other day", start: day(2026, time.January, 10), today: day(2026, time.February, 11), want: false},
		{name: "31st resets on last day of February", start: day(2026, time.January, 31), today: day(2026, time.February, 28), want: true},
		{name: "30th resets on 29th in leap February", start: day(2027, time.November, 30), today: day(2028, time.February, 29), want: true},
		{name: "31st does not reset on the 30th of a long month", start: day(2026, time.January, 31), today: day(2026, time.March, 30), want: false},
		{name: "31st resets on 30th of April", start: day(2026, time.January, 31), today: day(2026, time.April, 30), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MonthlyResetDue(tt.start, tt.today))
		})
	}
}
