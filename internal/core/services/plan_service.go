package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/google/uuid"
)

type planService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	planRepo       portsrepo.PlanRepositoryFacade
	membershipRepo portsrepo.MembershipReader
	billing        gateways.BillingGateway
	clock          gateways.Clock
}

// NewPlanService creates a new plan service.
func NewPlanService(repos portsrepo.RepositoryProvider, billing gateways.BillingGateway, clock gateways.Clock) portssvc.PlanSvcFacade {
	return &planService{
		txManager:      repos.TxManager,
		planRepo:       repos.PlanRepo,
		membershipRepo: repos.MembershipRepo,
		billing:        billing,
		clock:          clock,
	}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

func (s *planService) GetPlanByID(ctx context.Context, planID string) (*domain.MembershipPlan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find plan", slog.String("plan_id", planID))
		return nil, err
	}
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context, params dto.ListPlansParams) ([]domain.MembershipPlan, error) {
	return s.planRepo.ListPlans(ctx, params.SpaceType, params.ActiveOnly)
}

func validatePlan(p domain.MembershipPlan) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: plan name is required", apperrors.ErrValidation)
	case !p.SpaceType.Valid():
		return fmt.Errorf("%w: unknown space type %q", apperrors.ErrValidation, p.SpaceType)
	case !p.DurationUnit.Valid():
		return fmt.Errorf("%w: unknown duration unit %q", apperrors.ErrValidation, p.DurationUnit)
	case p.DurationValue < 1:
		return fmt.Errorf("%w: duration multiplier must be at least 1", apperrors.ErrValidation)
	case p.Price.IsNegative() || p.DepositAmount.IsNegative() || p.CallRoomHoursIncluded.IsNegative():
		return fmt.Errorf("%w: prices and included hours cannot be negative", apperrors.ErrValidation)
	case p.CreditsIncluded < 0 || p.PassesIncluded < 0:
		return fmt.Errorf("%w: included credits and passes cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

// syncProduct registers the plan's billable product and stores the id the billing system returns.
func (s *planService) syncProduct(ctx context.Context, p *domain.MembershipPlan) error {
	product := domain.BillableProduct{
		Name:         p.Name,
		ListPrice:    p.Price,
		CurrencyCode: p.CurrencyCode,
		IsService:    true,
	}
	if p.ProductID != nil {
		product.ProductID = *p.ProductID
	}
	productID, err := s.billing.UpsertProduct(ctx, product)
	if err != nil {
		return err
	}
	p.ProductID = &productID
	return nil
}

func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest, userID string) (*domain.MembershipPlan, error) {
	now := s.clock.Now()
	plan := domain.MembershipPlan{
		PlanID:                uuid.NewString(),
		Name:                  req.Name,
		Description:           req.Description,
		SpaceType:             req.SpaceType,
		DurationUnit:          req.DurationUnit,
		DurationValue:         req.DurationValue,
		Price:                 req.Price,
		CurrencyCode:          strings.ToUpper(req.CurrencyCode),
		CreditsIncluded:       req.CreditsIncluded,
		PassesIncluded:        req.PassesIncluded,
		CallRoomHoursIncluded: req.CallRoomHoursIncluded,
		IsRecurring:           req.IsRecurring,
		AutoRenew:             req.AutoRenew,
		RequiresDeposit:       req.RequiresDeposit,
		DepositAmount:         req.DepositAmount,
		AllowsExclusiveFloor:  req.AllowsExclusiveFloor,
		PolicyIDs:             req.PolicyIDs,
		ProductID:             req.ProductID,
		IsActive:              true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if plan.PolicyIDs == nil {
		plan.PolicyIDs = []string{}
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.syncProduct(ctx, &plan); err != nil {
			return err
		}
		return s.planRepo.SavePlan(ctx, plan)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create plan", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Plan created",
		slog.String("plan_id", plan.PlanID),
		slog.String("name", plan.Name))
	return &plan, nil
}

// UpdatePlan refuses entitlement changes while the plan has confirmed or active memberships;
// name and price corrections are always allowed and flow to the billable product.
func (s *planService) UpdatePlan(ctx context.Context, planID string, req dto.UpdatePlanRequest, userID string) (*domain.MembershipPlan, error) {
	var updated domain.MembershipPlan
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.planRepo.FindPlanByID(ctx, planID)
		if err != nil {
			return err
		}
		plan := *current

		entitlementsChanged := (req.CreditsIncluded != nil && *req.CreditsIncluded != plan.CreditsIncluded) ||
			(req.PassesIncluded != nil && *req.PassesIncluded != plan.PassesIncluded) ||
			(req.CallRoomHoursIncluded != nil && !req.CallRoomHoursIncluded.Equal(plan.CallRoomHoursIncluded)) ||
			(req.IsRecurring != nil && *req.IsRecurring != plan.IsRecurring)
		if entitlementsChanged {
			inUse, err := s.membershipRepo.CountActiveByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if inUse > 0 {
				return fmt.Errorf("%w: plan %s is used by %d memberships; create a new plan instead", apperrors.ErrValidation, plan.Name, inUse)
			}
		}

		productChanged := false
		if req.Name != nil && *req.Name != plan.Name {
			plan.Name = *req.Name
			productChanged = true
		}
		if req.Price != nil && !req.Price.Equal(plan.Price) {
			plan.Price = *req.Price
			productChanged = true
		}
		if req.CurrencyCode != nil && !strings.EqualFold(*req.CurrencyCode, plan.CurrencyCode) {
			plan.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
			productChanged = true
		}
		if req.ProductID != nil && (plan.ProductID == nil || *req.ProductID != *plan.ProductID) {
			productID := *req.ProductID
			plan.ProductID = &productID
			productChanged = true
		}
		if req.Description != nil {
			plan.Description = *req.Description
		}
		if req.CreditsIncluded != nil {
			plan.CreditsIncluded = *req.CreditsIncluded
		}
		if req.PassesIncluded != nil {
			plan.PassesIncluded = *req.PassesIncluded
		}
		if req.CallRoomHoursIncluded != nil {
			plan.CallRoomHoursIncluded = *req.CallRoomHoursIncluded
		}
		if req.IsRecurring != nil {
			plan.IsRecurring = *req.IsRecurring
		}
		if req.AutoRenew != nil {
			plan.AutoRenew = *req.AutoRenew
		}
		if req.IsActive != nil {
			plan.IsActive = *req.IsActive
		}
		if err := validatePlan(plan); err != nil {
			return err
		}

		if productChanged {
			if err := s.syncProduct(ctx, &plan); err != nil {
				return err
			}
		}
		plan.LastUpdatedAt = s.clock.Now()
		plan.LastUpdatedBy = userID
		if err := s.planRepo.UpdatePlan(ctx, plan); err != nil {
			return err
		}
		updated = plan
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update plan", slog.String("plan_id", planID))
		return nil, err
	}
	return &updated, nil
}
