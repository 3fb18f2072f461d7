package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipRating_Rate(t *testing.T) {
	on := time.Date(2026, time.March, 10, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		score   int
		wantErr bool
	}{
		{"lowest", 1, false},
		{"highest", 5, false},
		{"zero", 0, true},
		{"above scale", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.MembershipRating{Score: 3, Feedback: "before"}

			err := r.Rate(tt.score, "Quiet floor", on)

			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Equal(t, 3, r.Score, "a rejected score leaves the rating untouched")
				assert.Equal(t, "before", r.Feedback)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, "Quiet floor", r.Feedback)
			assert.Equal(t, domain.DateOf(on), r.RatedOn)
		})
	}
}

func TestMembershipState_CanBeRated(t *testing.T) {
	assert.False(t, domain.MembershipDraft.CanBeRated())
	for _, s := range []domain.MembershipState{
		domain.MembershipConfirmed, domain.MembershipActive, domain.MembershipExpired, domain.MembershipCancelled,
	} {
		assert.True(t, s.CanBeRated(), s)
	}
}
