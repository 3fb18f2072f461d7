package services

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
)

// PlanReaderSvc defines read operations for membership plans
type PlanReaderSvc interface {
	GetPlanByID(ctx context.Context, planID string) (*domain.MembershipPlan, error)
	ListPlans(ctx context.Context, params dto.ListPlansParams) ([]domain.MembershipPlan, error)
}

// PlanWriterSvc defines write operations for membership plans
type PlanWriterSvc interface {
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest, userID string) (*domain.MembershipPlan, error)

	// UpdatePlan applies changes and refreshes the billable product when name, price,
	// product or currency changed.
	UpdatePlan(ctx context.Context, planID string, req dto.UpdatePlanRequest, userID string) (*domain.MembershipPlan, error)
}

// PlanSvcFacade combines all plan service interfaces
type PlanSvcFacade interface {
	PlanReaderSvc
	PlanWriterSvc
}
