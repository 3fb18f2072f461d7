package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) SumEntries(ctx context.Context, filter domain.LedgerFilter) (decimal.Decimal, error) {
	total := decimal.Zero
	err := s.read(ctx, func() error {
		total = domain.FoldBalance(s.ledger, filter)
		return nil
	})
	return total, err
}

func (s *Store) ListEntries(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	var matched []domain.LedgerEntry
	err := s.read(ctx, func() error {
		for _, e := range s.ledger {
			if filter.Matches(e) {
				matched = append(matched, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return page(matched, func(e domain.LedgerEntry) (time.Time, string) { return e.OccurredAt, e.EntryID }, limit, nextToken)
}

func (s *Store) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return s.write(ctx, func() error {
		for _, e := range s.ledger {
			if e.EntryID == entry.EntryID {
				return fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, entry.EntryID)
			}
		}
		s.ledger = append(s.ledger, entry)
		return nil
	})
}

// LockSaleOrder only checks that ctx carries a transaction: transactions are already serialized.
func (s *Store) LockSaleOrder(ctx context.Context, orderRef string) error {
	if !inTx(ctx) {
		return fmt.Errorf("sale order %s can only be locked inside a transaction", orderRef)
	}
	return ctx.Err()
}
