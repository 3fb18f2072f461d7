package repositories

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations on the entitlement ledger
type LedgerReader interface {
	// SumEntries folds the amounts of the entries selected by filter.
	SumEntries(ctx context.Context, filter domain.LedgerFilter) (decimal.Decimal, error)

	// ListEntries retrieves a page of entries selected by filter, newest first.
	ListEntries(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines the only write operation on the append-only ledger
type LedgerWriter interface {
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) error

	// LockSaleOrder holds an exclusive lock on orderRef until the enclosing transaction ends.
	// It fails outside a transaction.
	LockSaleOrder(ctx context.Context, orderRef string) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
