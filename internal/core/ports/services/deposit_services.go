package services

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// DepositSvcFacade manages security deposits
type DepositSvcFacade interface {
	// CreateDeposit opens the deposit a membership's plan requires.
	CreateDeposit(ctx context.Context, membershipID string, userID string) (*domain.SecurityDeposit, error)
	GetDepositByID(ctx context.Context, depositID string) (*domain.SecurityDeposit, error)
	MarkPaid(ctx context.Context, depositID string, userID string) (*domain.SecurityDeposit, error)
	Return(ctx context.Context, depositID string, userID string) (*domain.SecurityDeposit, error)
	Withhold(ctx context.Context, depositID string, reason string, userID string) (*domain.SecurityDeposit, error)
}
