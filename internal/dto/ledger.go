package dto

import (
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID         string                 `json:"entryID"`
	MemberID        string                 `json:"memberID"`
	MembershipID    *string                `json:"membershipID,omitempty"`
	AccessRequestID *string                `json:"accessRequestID,omitempty"`
	Entitlement     domain.Entitlement     `json:"entitlement"`
	Kind            domain.LedgerEntryKind `json:"kind"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     string                 `json:"description"`
	OccurredAt      time.Time              `json:"occurredAt"`
	ExpiresOn       *time.Time             `json:"expiresOn,omitempty"`
	PricePerUnit    *decimal.Decimal       `json:"pricePerUnit,omitempty"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	InvoiceID       *string                `json:"invoiceID,omitempty"`
	SaleOrderRef    *string                `json:"saleOrderRef,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		MemberID:        e.MemberID,
		MembershipID:    e.MembershipID,
		AccessRequestID: e.AccessRequestID,
		Entitlement:     e.Entitlement,
		Kind:            e.Kind,
		Amount:          e.Amount,
		Description:     e.Description,
		OccurredAt:      e.OccurredAt,
		ExpiresOn:       e.ExpiresOn,
		PricePerUnit:    e.PricePerUnit,
		TotalAmount:     e.TotalAmount(),
		InvoiceID:       e.InvoiceID,
		SaleOrderRef:    e.SaleOrderRef,
	}
}

// ToLedgerEntryResponses converts a slice of ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}

// ListLedgerEntriesParams defines query parameters for a member's ledger history.
type ListLedgerEntriesParams struct {
	Entitlement  domain.Entitlement `form:"entitlement" binding:"omitempty,oneof=credits passes call_room_hours"`
	MembershipID string             `form:"membershipID"`
	PageParams
}

// ListLedgerEntriesResponse is a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// BalanceResponse reports a member's balance for one entitlement.
type BalanceResponse struct {
	MemberID    string             `json:"memberID"`
	Entitlement domain.Entitlement `json:"entitlement"`
	Balance     decimal.Decimal    `json:"balance"`
	AsOf        time.Time          `json:"asOf"`
}

// GrantBonusRequest defines a goodwill credit grant.
type GrantBonusRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description" binding:"required"`
	MembershipID *string         `json:"membershipID"`
	ExpiresOn    *time.Time      `json:"expiresOn"`
}

// PurchaseCreditsRequest defines a direct credit purchase billed by invoice.
type PurchaseCreditsRequest struct {
	Amount         int64           `json:"amount" binding:"required,min=1"`
	PricePerCredit decimal.Decimal `json:"pricePerCredit"`
	ValidityYears  int             `json:"validityYears" binding:"omitempty,min=1"`
	ProductID      string          `json:"productID" binding:"required"`
}
