package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/google/uuid"
)

type leadService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	leadRepo      portsrepo.LeadRepositoryFacade
	membershipSvc portssvc.MembershipWriterSvc
	clock         gateways.Clock
}

// NewLeadService creates a new lead service.
func NewLeadService(repos portsrepo.RepositoryProvider, membershipSvc portssvc.MembershipWriterSvc, clock gateways.Clock) portssvc.LeadSvcFacade {
	return &leadService{
		txManager:     repos.TxManager,
		leadRepo:      repos.LeadRepo,
		membershipSvc: membershipSvc,
		clock:         clock,
	}
}

var _ portssvc.LeadSvcFacade = (*leadService)(nil)

func (s *leadService) SubmitIntake(ctx context.Context, req dto.IntakeRequest) (*domain.Lead, error) {
	if !req.SpaceType.Valid() {
		return nil, fmt.Errorf("%w: unknown space type %q", apperrors.ErrValidation, req.SpaceType)
	}
	lead := domain.Lead{
		LeadID:                uuid.NewString(),
		ContactName:           req.ContactName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		SpaceType:             req.SpaceType,
		PreferredResourceType: req.PreferredResourceType,
		City:                  req.City,
		RequestedStart:        req.RequestedStart,
		Requirements:          req.Requirements,
		IsCoworkLead:          true,
		CreatedAt:             s.clock.Now(),
	}
	if err := s.leadRepo.SaveLead(ctx, lead); err != nil {
		s.LogError(ctx, err, "Failed to save intake lead", slog.String("email", req.Email))
		return nil, err
	}
	s.LogInfo(ctx, "Intake lead captured",
		slog.String("lead_id", lead.LeadID),
		slog.String("space_type", string(lead.SpaceType)))
	return &lead, nil
}

func (s *leadService) GetLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	return s.leadRepo.FindLeadByID(ctx, leadID)
}

func (s *leadService) ListLeads(ctx context.Context, params dto.PageParams) (*dto.ListLeadsResponse, error) {
	leads, nextToken, err := s.leadRepo.ListLeads(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list leads")
		return nil, err
	}
	responses := make([]dto.LeadResponse, len(leads))
	for i := range leads {
		responses[i] = dto.ToLeadResponse(&leads[i])
	}
	return &dto.ListLeadsResponse{Leads: responses, NextToken: nextToken}, nil
}

func (s *leadService) CreateMembershipFromLead(ctx context.Context, leadID string, req dto.CreateMembershipFromLeadRequest, userID string) (*domain.Membership, error) {
	var created *domain.Membership
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		lead, err := s.leadRepo.FindLeadByID(ctx, leadID)
		if err != nil {
			return err
		}
		if lead.MembershipID != nil {
			return fmt.Errorf("%w: lead %s already has membership %s", apperrors.ErrDuplicate, leadID, *lead.MembershipID)
		}
		memberID := lead.MemberID
		if req.MemberID != nil && *req.MemberID != "" {
			memberID = req.MemberID
		}
		if memberID == nil || *memberID == "" {
			return fmt.Errorf("%w: a member is required to convert lead %s", apperrors.ErrValidation, leadID)
		}

		start := domain.DateOf(s.clock.Now())
		switch {
		case req.DateStart != nil:
			start = *req.DateStart
		case lead.RequestedStart != nil:
			start = *lead.RequestedStart
		}

		created, err = s.membershipSvc.CreateMembership(ctx, dto.CreateMembershipRequest{
			MemberID:   *memberID,
			PlanID:     req.PlanID,
			ResourceID: req.ResourceID,
			DateStart:  start,
			Notes:      lead.Requirements,
			LeadID:     &lead.LeadID,
		}, userID)
		if err != nil {
			return err
		}

		lead.MemberID = memberID
		lead.MembershipID = &created.MembershipID
		return s.leadRepo.UpdateLead(ctx, *lead)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to convert lead", slog.String("lead_id", leadID))
		return nil, err
	}
	s.LogInfo(ctx, "Lead converted",
		slog.String("lead_id", leadID),
		slog.String("membership_id", created.MembershipID))
	return created, nil
}
