package services

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
)

// CreditPackageSvcFacade sells credits and books confirmed purchases into the ledger
type CreditPackageSvcFacade interface {
	ListPackages(ctx context.Context) []domain.CreditPackage
	// SyncProducts registers every package's product with the billing system.
	SyncProducts(ctx context.Context) error

	// SellPackage opens a pending billing request for quantity packages.
	SellPackage(ctx context.Context, code string, req dto.SellCreditPackageRequest, userID string) (*domain.BillingRequest, error)

	// ApplyConfirmedOrder appends a purchased entry for every line whose product is a known package.
	ApplyConfirmedOrder(ctx context.Context, order domain.ConfirmedOrder) ([]domain.LedgerEntry, error)

	// PurchaseCredits invoices and appends a direct credit purchase.
	PurchaseCredits(ctx context.Context, memberID string, req dto.PurchaseCreditsRequest, userID string) (*domain.LedgerEntry, error)
}
