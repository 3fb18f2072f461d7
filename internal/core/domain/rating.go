package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
)

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// MembershipRating is the member's score of their stay, one per membership.
type MembershipRating struct {
	RatingID     string    `json:"ratingID"`
	MembershipID string    `json:"membershipID"`
	MemberID     string    `json:"memberID"`
	SpaceType    SpaceType `json:"spaceType"`
	Score        int       `json:"score"`
	Feedback     string    `json:"feedback,omitempty"`
	RatedOn      time.Time `json:"ratedOn"`
	AuditFields
}

// Rate sets the score and feedback, dated on the given day.
func (r *MembershipRating) Rate(score int, feedback string, on time.Time) error {
	if score < MinRatingScore || score > MaxRatingScore {
		return fmt.Errorf("%w: rating must be between %d and %d, got %d", apperrors.ErrValidation, MinRatingScore, MaxRatingScore, score)
	}
	r.Score = score
	r.Feedback = feedback
	r.RatedOn = DateOf(on)
	return nil
}

// CanBeRated reports whether members may rate a membership in state s.
func (s MembershipState) CanBeRated() bool {
	return s != MembershipDraft
}
