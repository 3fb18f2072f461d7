package repositories

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// RatingRepositoryFacade defines persistence for membership ratings
type RatingRepositoryFacade interface {
	FindRatingByMembership(ctx context.Context, membershipID string) (*domain.MembershipRating, error)
	SaveRating(ctx context.Context, rating domain.MembershipRating) error
	UpdateRating(ctx context.Context, rating domain.MembershipRating) error
}
