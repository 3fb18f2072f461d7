package repositories

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// DepositRepositoryFacade defines persistence for security deposits
type DepositRepositoryFacade interface {
	FindDepositByID(ctx context.Context, depositID string) (*domain.SecurityDeposit, error)
	FindDepositByMembership(ctx context.Context, membershipID string) (*domain.SecurityDeposit, error)
	SaveDeposit(ctx context.Context, deposit domain.SecurityDeposit) error
	UpdateDeposit(ctx context.Context, deposit domain.SecurityDeposit) error
}
