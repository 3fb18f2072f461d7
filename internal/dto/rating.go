package dto

import (
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// RateMembershipRequest carries the member's score, 1 to 5.
type RateMembershipRequest struct {
	Score    int    `json:"score" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// RatingResponse defines the data returned for a membership rating.
type RatingResponse struct {
	RatingID     string           `json:"ratingID"`
	MembershipID string           `json:"membershipID"`
	MemberID     string           `json:"memberID"`
	SpaceType    domain.SpaceType `json:"spaceType"`
	Score        int              `json:"score"`
	Feedback     string           `json:"feedback,omitempty"`
	RatedOn      time.Time        `json:"ratedOn"`
}

// ToRatingResponse converts a domain.MembershipRating to RatingResponse DTO.
func ToRatingResponse(r *domain.MembershipRating) RatingResponse {
	return RatingResponse{
		RatingID:     r.RatingID,
		MembershipID: r.MembershipID,
		MemberID:     r.MemberID,
		SpaceType:    r.SpaceType,
		Score:        r.Score,
		Feedback:     r.Feedback,
		RatedOn:      r.RatedOn,
	}
}
