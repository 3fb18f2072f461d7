package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entitlement keys the unified ledger: every consumable benefit shares one log.
type Entitlement string

const (
	EntitlementCredits       Entitlement = "credits"
	EntitlementPasses        Entitlement = "passes"
	EntitlementCallRoomHours Entitlement = "call_room_hours"
)

// Valid reports whether e is a known entitlement.
func (e Entitlement) Valid() bool {
	return e == EntitlementCredits || e == EntitlementPasses || e == EntitlementCallRoomHours
}

// LedgerEntryKind says why an entry was appended.
type LedgerEntryKind string

const (
	LedgerGranted   LedgerEntryKind = "granted"
	LedgerPurchased LedgerEntryKind = "purchased"
	LedgerUsed      LedgerEntryKind = "used"
	LedgerRefund    LedgerEntryKind = "refund"
	LedgerBonus     LedgerEntryKind = "bonus"
	LedgerRenewal   LedgerEntryKind = "renewal"
	LedgerExpired   LedgerEntryKind = "expired"
)

// Valid reports whether k is a known entry kind.
func (k LedgerEntryKind) Valid() bool {
	switch k {
	case LedgerGranted, LedgerPurchased, LedgerUsed, LedgerRefund, LedgerBonus, LedgerRenewal, LedgerExpired:
		return true
	}
	return false
}

// ConsumptionKinds are the kinds whose sum, negated, is the amount consumed.
var ConsumptionKinds = []LedgerEntryKind{LedgerUsed, LedgerRefund}

// LedgerEntry is one immutable change to a member's entitlement. Positive amounts add to
// the balance, negative amounts consume it.
type LedgerEntry struct {
	EntryID         string           `json:"entryID"`
	MemberID        string           `json:"memberID"`
	MembershipID    *string          `json:"membershipID,omitempty"`
	AccessRequestID *string          `json:"accessRequestID,omitempty"`
	Entitlement     Entitlement      `json:"entitlement"`
	Kind            LedgerEntryKind  `json:"kind"`
	Amount          decimal.Decimal  `json:"amount"`
	Description     string           `json:"description"`
	OccurredAt      time.Time        `json:"occurredAt"`
	ExpiresOn       *time.Time       `json:"expiresOn,omitempty"`
	PricePerUnit    *decimal.Decimal `json:"pricePerUnit,omitempty"`
	InvoiceID       *string          `json:"invoiceID,omitempty"`
	SaleOrderRef    *string          `json:"saleOrderRef,omitempty"`
	CreatedBy       string           `json:"createdBy"`
}

// IsExpired reports whether the entry's expiration date lies strictly before today.
func (e LedgerEntry) IsExpired(today time.Time) bool {
	return e.ExpiresOn != nil && DateOf(*e.ExpiresOn).Before(DateOf(today))
}

// TotalAmount is the purchase value of a priced entry, zero otherwise.
func (e LedgerEntry) TotalAmount() decimal.Decimal {
	if e.PricePerUnit == nil {
		return decimal.Zero
	}
	return e.Amount.Mul(*e.PricePerUnit)
}

// LedgerFilter selects the entries folded into a balance.
type LedgerFilter struct {
	MemberID     string
	MembershipID string
	Entitlement  Entitlement
	Kinds        []LedgerEntryKind
	SaleOrderRef string
	Since        *time.Time
	// IgnoreExpired drops entries whose expiration is before AsOf.
	IgnoreExpired bool
	AsOf          time.Time
}

// Matches reports whether e is selected by the filter.
func (f LedgerFilter) Matches(e LedgerEntry) bool {
	if f.MemberID != "" && e.MemberID != f.MemberID {
		return false
	}
	if f.MembershipID != "" && (e.MembershipID == nil || *e.MembershipID != f.MembershipID) {
		return false
	}
	if f.Entitlement != "" && e.Entitlement != f.Entitlement {
		return false
	}
	if len(f.Kinds) > 0 {
		found := false
		for _, k := range f.Kinds {
			if e.Kind == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.SaleOrderRef != "" && (e.SaleOrderRef == nil || *e.SaleOrderRef != f.SaleOrderRef) {
		return false
	}
	if f.Since != nil && e.OccurredAt.Before(*f.Since) {
		return false
	}
	if f.IgnoreExpired && e.IsExpired(f.AsOf) {
		return false
	}
	return true
}

// FoldBalance sums the amounts of the entries selected by f.
func FoldBalance(entries []LedgerEntry, f LedgerFilter) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if f.Matches(e) {
			total = total.Add(e.Amount)
		}
	}
	return total
}
