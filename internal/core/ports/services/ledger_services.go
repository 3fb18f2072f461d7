package services

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines balance queries over the entitlement ledger
type LedgerReaderSvc interface {
	// Balance folds a member's non-expired entries of one entitlement as of now.
	Balance(ctx context.Context, memberID string, entitlement domain.Entitlement) (decimal.Decimal, error)

	// BalanceOf folds the entries selected by an explicit filter.
	BalanceOf(ctx context.Context, filter domain.LedgerFilter) (decimal.Decimal, error)

	// MembershipBalances derives granted/used/remaining for every entitlement of a membership.
	MembershipBalances(ctx context.Context, membership domain.Membership, plan domain.MembershipPlan) (domain.MembershipBalances, error)

	// ListEntries retrieves a page of a member's ledger history.
	ListEntries(ctx context.Context, memberID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)
}

// LedgerWriterSvc defines appends to the entitlement ledger
type LedgerWriterSvc interface {
	// Append stamps id and timestamp on the entry and stores it. The resulting balance is not checked.
	Append(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)

	// GrantBonus appends a goodwill credit grant.
	GrantBonus(ctx context.Context, memberID string, req dto.GrantBonusRequest, userID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
