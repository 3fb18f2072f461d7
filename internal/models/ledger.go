package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the entitlement_ledger row. Rows are never updated.
type LedgerEntry struct {
	EntryID         string           `db:"entry_id"`
	MemberID        string           `db:"member_id"`
	MembershipID    *string          `db:"membership_id"`     // Nullable
	AccessRequestID *string          `db:"access_request_id"` // Nullable
	Entitlement     string           `db:"entitlement"`
	Kind            string           `db:"kind"`
	Amount          decimal.Decimal  `db:"amount"`
	Description     string           `db:"description"`
	OccurredAt      time.Time        `db:"occurred_at"`
	ExpiresOn       *time.Time       `db:"expires_on"`     // Nullable
	PricePerUnit    *decimal.Decimal `db:"price_per_unit"` // Nullable
	InvoiceID       *string          `db:"invoice_id"`     // Nullable
	SaleOrderRef    *string          `db:"sale_order_ref"` // Nullable
	CreatedBy       string           `db:"created_by"`
}
