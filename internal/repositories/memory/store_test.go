package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bonus(memberID, amount string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     memberID + "-" + amount,
		MemberID:    memberID,
		Entitlement: domain.EntitlementCredits,
		Kind:        domain.LedgerBonus,
		Amount:      decimal.RequireFromString(amount),
		OccurredAt:  time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AppendEntry(ctx, bonus("m-1", "5")))
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.AppendEntry(ctx, bonus("m-1", "7")); err != nil {
			return err
		}
		if _, err := s.NextReference(ctx, domain.SequenceMembership); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	sum, err := s.SumEntries(ctx, domain.LedgerFilter{MemberID: "m-1", Entitlement: domain.EntitlementCredits})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(sum), "got %s", sum)

	ref, err := s.NextReference(ctx, domain.SequenceMembership)
	require.NoError(t, err)
	assert.Equal(t, domain.SequenceMembership.FormatReference(1), ref, "the sequence bump was rolled back")
}

func TestWithinTransaction_NestedCallsJoinOuter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, s.WithinTransaction(ctx, func(ctx context.Context) error {
			return s.AppendEntry(ctx, bonus("m-1", "3"))
		}))
		return errors.New("outer fails")
	})

	assert.Error(t, err)
	sum, err := s.SumEntries(ctx, domain.LedgerFilter{MemberID: "m-1"})
	require.NoError(t, err)
	assert.True(t, sum.IsZero(), "inner work belongs to the outer transaction")
}

func TestCreateInvoice_RequiresKnownProducts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	productID, err := s.UpsertProduct(ctx, domain.BillableProduct{Name: "Meeting room", ListPrice: decimal.NewFromInt(30)})
	require.NoError(t, err)

	_, err = s.CreateInvoice(ctx, "m-1", "AR-00001", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = s.CreateInvoice(ctx, "m-1", "AR-00001", []domain.InvoiceLine{{ProductID: "nope", Quantity: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, apperrors.ErrMissingConfiguration)

	inv, err := s.CreateInvoice(ctx, "m-1", "AR-00001", []domain.InvoiceLine{{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: decimal.NewFromInt(30),
	}})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePosted, inv.State)
	assert.True(t, decimal.NewFromInt(60).Equal(inv.AmountResidual))
}

func TestWithinTransaction_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()

	err := s.WithinTransaction(ctx, func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLockSaleOrder_NeedsTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.Error(t, s.LockSaleOrder(ctx, "SO-0001"))

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.LockSaleOrder(ctx, "SO-0001")
	})
	assert.NoError(t, err)
}
