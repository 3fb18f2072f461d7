package repositories

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// PlanReader defines read operations for membership plans
type PlanReader interface {
	// FindPlanByID retrieves a plan by its identifier.
	FindPlanByID(ctx context.Context, planID string) (*domain.MembershipPlan, error)

	// ListPlans retrieves plans, optionally restricted to one space type and to active plans.
	ListPlans(ctx context.Context, spaceType domain.SpaceType, activeOnly bool) ([]domain.MembershipPlan, error)
}

// PlanWriter defines write operations for membership plans
type PlanWriter interface {
	SavePlan(ctx context.Context, plan domain.MembershipPlan) error
	UpdatePlan(ctx context.Context, plan domain.MembershipPlan) error
}

// PlanRepositoryFacade combines all plan-related repository interfaces
type PlanRepositoryFacade interface {
	PlanReader
	PlanWriter
}
