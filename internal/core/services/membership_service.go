package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const portalTokenLength = 24

// membershipService owns the membership lifecycle, the resource bound to it and the plan
// benefits it grants into the ledger.
type membershipService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	membershipRepo portsrepo.MembershipRepositoryFacade
	planRepo       portsrepo.PlanReader
	resourceRepo   portsrepo.ResourceRepositoryFacade
	noteRepo       portsrepo.NoteRepositoryFacade
	ratingRepo     portsrepo.RatingRepositoryFacade
	ledgerSvc      portssvc.LedgerSvcFacade
	billing        gateways.BillingGateway
	sequence       gateways.SequenceGenerator
	clock          gateways.Clock
}

// NewMembershipService creates a new membership service.
func NewMembershipService(
	repos portsrepo.RepositoryProvider,
	ledgerSvc portssvc.LedgerSvcFacade,
	billing gateways.BillingGateway,
	sequence gateways.SequenceGenerator,
	clock gateways.Clock,
) portssvc.MembershipSvcFacade {
	return &membershipService{
		txManager:      repos.TxManager,
		membershipRepo: repos.MembershipRepo,
		planRepo:       repos.PlanRepo,
		resourceRepo:   repos.ResourceRepo,
		noteRepo:       repos.NoteRepo,
		ratingRepo:     repos.RatingRepo,
		ledgerSvc:      ledgerSvc,
		billing:        billing,
		sequence:       sequence,
		clock:          clock,
	}
}

var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

func (s *membershipService) GetMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	membership, err := s.membershipRepo.FindMembershipByID(ctx, membershipID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find membership", slog.String("membership_id", membershipID))
		return nil, err
	}
	return membership, nil
}

func (s *membershipService) GetMembershipSummary(ctx context.Context, membershipID string) (*domain.MembershipSummary, error) {
	membership, err := s.GetMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, *membership)
}

func (s *membershipService) summarize(ctx context.Context, membership domain.Membership) (*domain.MembershipSummary, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, membership.PlanID)
	if err != nil {
		return nil, err
	}
	balances, err := s.ledgerSvc.MembershipBalances(ctx, membership, *plan)
	if err != nil {
		return nil, err
	}
	invoices, err := s.billing.FindInvoices(ctx, membership.InvoiceIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load membership invoices", slog.String("membership_id", membership.MembershipID))
		return nil, err
	}
	amounts := domain.MembershipAmounts{Total: decimal.Zero, Due: decimal.Zero}
	for _, inv := range invoices {
		amounts.Total = amounts.Total.Add(inv.AmountTotal)
		amounts.Due = amounts.Due.Add(inv.AmountResidual)
	}
	amounts.Paid = amounts.Total.Sub(amounts.Due)

	return &domain.MembershipSummary{
		Membership: membership,
		Plan:       *plan,
		Balances:   balances,
		Amounts:    amounts,
	}, nil
}

func (s *membershipService) ListMemberships(ctx context.Context, params dto.ListMembershipsParams) (*dto.ListMembershipsResponse, error) {
	filter := domain.MembershipFilter{MemberID: params.MemberID, PlanID: params.PlanID, State: params.State}
	memberships, nextToken, err := s.membershipRepo.ListMemberships(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships")
		return nil, err
	}
	return &dto.ListMembershipsResponse{
		Memberships: dto.ToMembershipResponses(memberships),
		NextToken:   nextToken,
	}, nil
}

func (s *membershipService) ListNotes(ctx context.Context, membershipID string) ([]domain.RecordNote, error) {
	if _, err := s.membershipRepo.FindMembershipByID(ctx, membershipID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListNotes(ctx, domain.NoteOnMembership, membershipID)
}

// checkBinding validates an optional resource binding against the plan.
func (s *membershipService) checkBinding(ctx context.Context, plan domain.MembershipPlan, resourceID *string) error {
	if resourceID == nil {
		return nil
	}
	resource, err := s.resourceRepo.FindResourceByID(ctx, *resourceID)
	if err != nil {
		return err
	}
	if !plan.AllowsResource(resource.Kind) {
		return fmt.Errorf("%w: plan %s cannot hold a %s", apperrors.ErrValidation, plan.Name, resource.Kind)
	}
	return nil
}

func (s *membershipService) activePlan(ctx context.Context, planID string) (*domain.MembershipPlan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: plan %s is inactive", apperrors.ErrValidation, plan.Name)
	}
	return plan, nil
}

func (s *membershipService) CreateMembership(ctx context.Context, req dto.CreateMembershipRequest, userID string) (*domain.Membership, error) {
	var created domain.Membership
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		plan, err := s.activePlan(ctx, req.PlanID)
		if err != nil {
			return err
		}
		if err := s.checkBinding(ctx, *plan, req.ResourceID); err != nil {
			return err
		}
		reference, err := s.sequence.NextReference(ctx, domain.SequenceMembership)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		start := domain.DateOf(req.DateStart)
		created = domain.Membership{
			MembershipID: uuid.NewString(),
			Reference:    reference,
			MemberID:     req.MemberID,
			PlanID:       plan.PlanID,
			ResourceID:   req.ResourceID,
			DateStart:    start,
			DateEnd:      plan.EndDate(start),
			State:        domain.MembershipDraft,
			LeadID:       req.LeadID,
			InvoiceIDs:   []string{},
			Notes:        req.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		return s.membershipRepo.SaveMembership(ctx, created)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create membership",
			slog.String("member_id", req.MemberID),
			slog.String("plan_id", req.PlanID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Membership created",
		slog.String("membership_id", created.MembershipID),
		slog.String("reference", created.Reference))
	return &created, nil
}

// mutate loads the membership for update, applies fn and persists the result with audit fields.
func (s *membershipService) mutate(ctx context.Context, membershipID, userID string, fn func(ctx context.Context, m *domain.Membership) error) (*domain.Membership, error) {
	var out domain.Membership
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		m, err := s.membershipRepo.FindMembershipByIDForUpdate(ctx, membershipID)
		if err != nil {
			return err
		}
		if err := fn(ctx, m); err != nil {
			return err
		}
		m.LastUpdatedAt = s.clock.Now()
		m.LastUpdatedBy = userID
		if err := s.membershipRepo.UpdateMembership(ctx, *m); err != nil {
			return err
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *membershipService) UpdateMembership(ctx context.Context, membershipID string, req dto.UpdateMembershipRequest, userID string) (*domain.Membership, error) {
	updated, err := s.mutate(ctx, membershipID, userID, func(ctx context.Context, m *domain.Membership) error {
		if m.State != domain.MembershipDraft {
			return fmt.Errorf("%w: only draft memberships can be edited, %s is %s", apperrors.ErrInvalidTransition, m.Reference, m.State)
		}
		if req.PlanID != nil {
			m.PlanID = *req.PlanID
		}
		if req.ResourceID != nil {
			resourceID := *req.ResourceID
			m.ResourceID = &resourceID
			if resourceID == "" {
				m.ResourceID = nil
			}
		}
		if req.DateStart != nil {
			m.DateStart = domain.DateOf(*req.DateStart)
		}
		if req.Notes != nil {
			m.Notes = *req.Notes
		}

		plan, err := s.activePlan(ctx, m.PlanID)
		if err != nil {
			return err
		}
		if err := s.checkBinding(ctx, *plan, m.ResourceID); err != nil {
			return err
		}
		m.DateEnd = plan.EndDate(m.DateStart)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update membership",
			slog.String("membership_id", membershipID),
			slog.String("user_id", userID))
		return nil, err
	}
	return updated, nil
}

func (s *membershipService) AcceptPolicies(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	updated, err := s.mutate(ctx, membershipID, userID, func(_ context.Context, m *domain.Membership) error {
		if m.State == domain.MembershipExpired || m.State == domain.MembershipCancelled {
			return fmt.Errorf("%w: membership %s is %s", apperrors.ErrInvalidTransition, m.Reference, m.State)
		}
		m.PoliciesAccepted = true
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to accept policies", slog.String("membership_id", membershipID))
		return nil, err
	}
	return updated, nil
}

// reserveResource binds the membership's resource, or the first available desk or bed of
// the plan's space when none was chosen.
func (s *membershipService) reserveResource(ctx context.Context, m *domain.Membership, plan domain.MembershipPlan, userID string) error {
	var (
		resource *domain.Resource
		err      error
	)
	if m.ResourceID != nil {
		resource, err = s.resourceRepo.FindResourceByIDForUpdate(ctx, *m.ResourceID)
		if err != nil {
			return err
		}
		if !plan.AllowsResource(resource.Kind) {
			return fmt.Errorf("%w: plan %s cannot hold a %s", apperrors.ErrValidation, plan.Name, resource.Kind)
		}
	} else {
		resource, err = s.resourceRepo.FindFirstAvailable(ctx, plan.DeskOrBedKind())
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no %s is available", apperrors.ErrResourceUnavailable, plan.DeskOrBedKind())
		}
		if err != nil {
			return err
		}
	}

	if err := resource.Reserve(m.MemberID, m.MembershipID, m.DateStart, m.DateEnd); err != nil {
		return err
	}
	resource.LastUpdatedAt = s.clock.Now()
	resource.LastUpdatedBy = userID
	if err := s.resourceRepo.UpdateResourceAllocation(ctx, *resource); err != nil {
		return err
	}
	m.ResourceID = &resource.ResourceID
	return nil
}

// releaseResource frees the membership's resource unless another membership holds it by now.
func (s *membershipService) releaseResource(ctx context.Context, m domain.Membership, userID string) error {
	if m.ResourceID == nil {
		return nil
	}
	resource, err := s.resourceRepo.FindResourceByIDForUpdate(ctx, *m.ResourceID)
	if err != nil {
		return err
	}
	if resource.MembershipID != nil && *resource.MembershipID != m.MembershipID {
		return nil
	}
	resource.Release()
	resource.LastUpdatedAt = s.clock.Now()
	resource.LastUpdatedBy = userID
	return s.resourceRepo.UpdateResourceAllocation(ctx, *resource)
}

// grantBenefits appends the plan's credits, passes and call-room hours for one period.
func (s *membershipService) grantBenefits(ctx context.Context, m domain.Membership, plan domain.MembershipPlan, kind domain.LedgerEntryKind, now time.Time, userID string) error {
	grants := []struct {
		entitlement domain.Entitlement
		amount      decimal.Decimal
	}{
		{domain.EntitlementCredits, decimal.NewFromInt(plan.CreditsIncluded)},
		{domain.EntitlementPasses, decimal.NewFromInt(plan.PassesIncluded)},
		{domain.EntitlementCallRoomHours, plan.CallRoomHoursIncluded},
	}
	membershipID := m.MembershipID
	for _, g := range grants {
		if !g.amount.IsPositive() {
			continue
		}
		if _, err := s.ledgerSvc.Append(ctx, domain.LedgerEntry{
			MemberID:     m.MemberID,
			MembershipID: &membershipID,
			Entitlement:  g.entitlement,
			Kind:         kind,
			Amount:       g.amount,
			Description:  fmt.Sprintf("%s %s from plan %s (%s)", g.amount, g.entitlement, plan.Name, m.Reference),
			OccurredAt:   now,
			CreatedBy:    userID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Confirm reserves a resource and grants the plan benefits for the first period.
func (s *membershipService) Confirm(ctx context.Context, membershipID string, userID string) (result *domain.Membership, err error) {
	ctx, span := s.StartSpan(ctx, "membership.confirm", membershipID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.mutate(ctx, membershipID, userID, func(ctx context.Context, m *domain.Membership) error {
		if err := m.Transition(domain.MembershipConfirmed); err != nil {
			return err
		}
		plan, err := s.planRepo.FindPlanByID(ctx, m.PlanID)
		if err != nil {
			return err
		}
		if plan.RequiresPolicies() && !m.PoliciesAccepted {
			return fmt.Errorf("%w: membership %s must accept the plan policies first", apperrors.ErrValidation, m.Reference)
		}
		if err := s.reserveResource(ctx, m, *plan, userID); err != nil {
			return err
		}
		now := s.clock.Now()
		if err := s.grantBenefits(ctx, *m, *plan, domain.LedgerGranted, now, userID); err != nil {
			return err
		}
		m.BenefitPeriodStart = &now
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to confirm membership",
			slog.String("membership_id", membershipID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Membership confirmed",
		slog.String("membership_id", result.MembershipID),
		slog.String("resource_id", derefString(result.ResourceID)))
	return result, nil
}

// Activate marks the membership's desk or bed as occupied.
func (s *membershipService) Activate(ctx context.Context, membershipID string, userID string) (result *domain.Membership, err error) {
	ctx, span := s.StartSpan(ctx, "membership.activate", membershipID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.mutate(ctx, membershipID, userID, func(ctx context.Context, m *domain.Membership) error {
		if err := m.Transition(domain.MembershipActive); err != nil {
			return err
		}
		if m.ResourceID == nil {
			return nil
		}
		resource, err := s.resourceRepo.FindResourceByIDForUpdate(ctx, *m.ResourceID)
		if err != nil {
			return err
		}
		resource.Occupy()
		resource.LastUpdatedAt = s.clock.Now()
		resource.LastUpdatedBy = userID
		return s.resourceRepo.UpdateResourceAllocation(ctx, *resource)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to activate membership",
			slog.String("membership_id", membershipID),
			slog.String("user_id", userID))
		return nil, err
	}
	return result, nil
}

// end moves the membership to a terminal state and frees its resource.
func (s *membershipService) end(ctx context.Context, membershipID, userID string, next domain.MembershipState) (*domain.Membership, error) {
	return s.mutate(ctx, membershipID, userID, func(ctx context.Context, m *domain.Membership) error {
		if err := m.Transition(next); err != nil {
			return err
		}
		return s.releaseResource(ctx, *m, userID)
	})
}

func (s *membershipService) Expire(ctx context.Context, membershipID string, userID string) (result *domain.Membership, err error) {
	ctx, span := s.StartSpan(ctx, "membership.expire", membershipID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.end(ctx, membershipID, userID, domain.MembershipExpired)
	if err != nil {
		s.LogError(ctx, err, "Failed to expire membership", slog.String("membership_id", membershipID))
		return nil, err
	}
	s.LogInfo(ctx, "Membership expired", slog.String("membership_id", membershipID))
	return result, nil
}

func (s *membershipService) Cancel(ctx context.Context, membershipID string, userID string) (result *domain.Membership, err error) {
	ctx, span := s.StartSpan(ctx, "membership.cancel", membershipID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.end(ctx, membershipID, userID, domain.MembershipCancelled)
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel membership", slog.String("membership_id", membershipID))
		return nil, err
	}
	s.LogInfo(ctx, "Membership cancelled", slog.String("membership_id", membershipID))
	return result, nil
}

func (s *membershipService) Renew(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	var renewed domain.Membership
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		m, err := s.membershipRepo.FindMembershipByID(ctx, membershipID)
		if err != nil {
			return err
		}
		if m.State == domain.MembershipDraft {
			return fmt.Errorf("%w: draft membership %s cannot be renewed", apperrors.ErrInvalidTransition, m.Reference)
		}
		plan, err := s.planRepo.FindPlanByID(ctx, m.PlanID)
		if err != nil {
			return err
		}
		reference, err := s.sequence.NextReference(ctx, domain.SequenceMembership)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		renewed = m.RenewalDraft(uuid.NewString(), *plan)
		renewed.Reference = reference
		renewed.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		return s.membershipRepo.SaveMembership(ctx, renewed)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to renew membership", slog.String("membership_id", membershipID))
		return nil, err
	}

	s.LogInfo(ctx, "Membership renewed",
		slog.String("membership_id", membershipID),
		slog.String("renewal_id", renewed.MembershipID))
	return &renewed, nil
}

// RenewMonthlyBenefits starts a new benefit period. Unused passes and call-room hours lapse
// and are re-granted; the plan's credits are added on top of the running balance.
func (s *membershipService) RenewMonthlyBenefits(ctx context.Context, membershipID string, userID string) (result *domain.Membership, err error) {
	ctx, span := s.StartSpan(ctx, "membership.renew_monthly_benefits", membershipID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.mutate(ctx, membershipID, userID, func(ctx context.Context, m *domain.Membership) error {
		if m.State != domain.MembershipActive {
			return fmt.Errorf("%w: membership %s is %s", apperrors.ErrInvalidTransition, m.Reference, m.State)
		}
		plan, err := s.planRepo.FindPlanByID(ctx, m.PlanID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		membershipID := m.MembershipID
		for _, e := range []domain.Entitlement{domain.EntitlementPasses, domain.EntitlementCallRoomHours} {
			leftover, err := s.ledgerSvc.BalanceOf(ctx, domain.LedgerFilter{
				MembershipID: membershipID, Entitlement: e, IgnoreExpired: true, AsOf: now,
			})
			if err != nil {
				return err
			}
			if leftover.IsZero() {
				continue
			}
			if _, err := s.ledgerSvc.Append(ctx, domain.LedgerEntry{
				MemberID:     m.MemberID,
				MembershipID: &membershipID,
				Entitlement:  e,
				Kind:         domain.LedgerExpired,
				Amount:       leftover.Neg(),
				Description:  fmt.Sprintf("Unused %s lapsed at period end (%s)", e, m.Reference),
				OccurredAt:   now,
				CreatedBy:    userID,
			}); err != nil {
				return err
			}
		}
		if err := s.grantBenefits(ctx, *m, *plan, domain.LedgerRenewal, now, userID); err != nil {
			return err
		}
		m.BenefitPeriodStart = &now
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to renew monthly benefits", slog.String("membership_id", membershipID))
		return nil, err
	}
	s.LogInfo(ctx, "Monthly benefits renewed", slog.String("membership_id", membershipID))
	return result, nil
}

// planLine builds the single billing line for the membership's plan.
func (s *membershipService) planLine(ctx context.Context, m domain.Membership) ([]domain.InvoiceLine, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, m.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.ProductID == nil || *plan.ProductID == "" {
		return nil, fmt.Errorf("%w: plan %s has no billable product", apperrors.ErrMissingConfiguration, plan.Name)
	}
	return []domain.InvoiceLine{{
		ProductID:   *plan.ProductID,
		Description: fmt.Sprintf("%s (%s)", plan.Name, m.Reference),
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   plan.Price,
	}}, nil
}

func (s *membershipService) CreateInvoice(ctx context.Context, membershipID string, userID string) (*domain.Invoice, error) {
	var invoice *domain.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		m, err := s.membershipRepo.FindMembershipByIDForUpdate(ctx, membershipID)
		if err != nil {
			return err
		}
		lines, err := s.planLine(ctx, *m)
		if err != nil {
			return err
		}
		if invoice, err = s.billing.CreateInvoice(ctx, m.MemberID, m.Reference, lines); err != nil {
			return err
		}
		return s.membershipRepo.LinkInvoice(ctx, m.MembershipID, invoice.InvoiceID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to invoice membership",
			slog.String("membership_id", membershipID),
			slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Membership invoiced",
		slog.String("membership_id", membershipID),
		slog.String("invoice_id", invoice.InvoiceID))
	return invoice, nil
}

func (s *membershipService) CreateSubscription(ctx context.Context, membershipID string, userID string) (*domain.BillingRequest, error) {
	m, err := s.membershipRepo.FindMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	lines, err := s.planLine(ctx, *m)
	if err != nil {
		s.LogError(ctx, err, "Failed to open subscription", slog.String("membership_id", membershipID))
		return nil, err
	}
	request, err := s.billing.CreateBillingRequest(ctx, m.MemberID, m.Reference, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to open subscription", slog.String("membership_id", membershipID))
		return nil, err
	}
	s.LogInfo(ctx, "Subscription billing request opened",
		slog.String("membership_id", membershipID),
		slog.String("billing_request_id", request.BillingRequestID),
		slog.String("user_id", userID))
	return request, nil
}

func (s *membershipService) IssuePortalToken(ctx context.Context, membershipID string, userID string) (string, error) {
	token, err := utils.NewPortalToken(portalTokenLength)
	if err != nil {
		return "", err
	}
	hash, err := utils.HashSecret(token)
	if err != nil {
		return "", err
	}
	if _, err := s.mutate(ctx, membershipID, userID, func(_ context.Context, m *domain.Membership) error {
		m.PortalTokenHash = &hash
		return nil
	}); err != nil {
		s.LogError(ctx, err, "Failed to issue portal token", slog.String("membership_id", membershipID))
		return "", err
	}
	return token, nil
}

func (s *membershipService) GetSummaryWithToken(ctx context.Context, membershipID, token string) (*domain.MembershipSummary, error) {
	m, err := s.membershipRepo.FindMembershipByID(ctx, membershipID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	if m.PortalTokenHash == nil || !utils.CheckSecretHash(token, *m.PortalTokenHash) {
		return nil, apperrors.ErrForbidden
	}
	return s.summarize(ctx, *m)
}

func (s *membershipService) RateMembership(ctx context.Context, membershipID string, req dto.RateMembershipRequest, userID string) (*domain.MembershipRating, error) {
	var rating domain.MembershipRating
	_, err := s.mutate(ctx, membershipID, userID, func(ctx context.Context, m *domain.Membership) error {
		if !m.State.CanBeRated() {
			return fmt.Errorf("%w: %s membership %s cannot be rated", apperrors.ErrInvalidTransition, m.State, m.Reference)
		}
		now := s.clock.Now()

		existing, err := s.ratingRepo.FindRatingByMembership(ctx, m.MembershipID)
		switch {
		case err == nil:
			rating = *existing
			if err := rating.Rate(req.Score, req.Feedback, now); err != nil {
				return err
			}
			rating.LastUpdatedAt = now
			rating.LastUpdatedBy = userID
			if err := s.ratingRepo.UpdateRating(ctx, rating); err != nil {
				return err
			}
		case errors.Is(err, apperrors.ErrNotFound):
			plan, err := s.planRepo.FindPlanByID(ctx, m.PlanID)
			if err != nil {
				return err
			}
			rating = domain.MembershipRating{
				RatingID:     uuid.NewString(),
				MembershipID: m.MembershipID,
				MemberID:     m.MemberID,
				SpaceType:    plan.SpaceType,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}
			if err := rating.Rate(req.Score, req.Feedback, now); err != nil {
				return err
			}
			if err := s.ratingRepo.SaveRating(ctx, rating); err != nil {
				return err
			}
		default:
			return err
		}

		ratingID := rating.RatingID
		m.RatingID = &ratingID
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to rate membership",
			slog.String("membership_id", membershipID),
			slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Membership rated",
		slog.String("membership_id", membershipID),
		slog.Int("score", rating.Score))
	return &rating, nil
}

func (s *membershipService) GetRating(ctx context.Context, membershipID string) (*domain.MembershipRating, error) {
	if _, err := s.GetMembershipByID(ctx, membershipID); err != nil {
		return nil, err
	}
	return s.ratingRepo.FindRatingByMembership(ctx, membershipID)
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
