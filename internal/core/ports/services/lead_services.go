package services

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
)

// LeadSvcFacade handles public intake and lead conversion
type LeadSvcFacade interface {
	SubmitIntake(ctx context.Context, req dto.IntakeRequest) (*domain.Lead, error)
	GetLeadByID(ctx context.Context, leadID string) (*domain.Lead, error)
	ListLeads(ctx context.Context, params dto.PageParams) (*dto.ListLeadsResponse, error)

	// CreateMembershipFromLead opens a draft membership for the lead and links it.
	CreateMembershipFromLead(ctx context.Context, leadID string, req dto.CreateMembershipFromLeadRequest, userID string) (*domain.Membership, error)
}
