package repositories

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// LeadRepositoryFacade defines persistence for intake leads
type LeadRepositoryFacade interface {
	FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error)
	ListLeads(ctx context.Context, limit int, nextToken *string) ([]domain.Lead, *string, error)
	SaveLead(ctx context.Context, lead domain.Lead) error
	UpdateLead(ctx context.Context, lead domain.Lead) error
}
