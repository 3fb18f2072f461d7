package mapping

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		MemberID:        d.MemberID,
		MembershipID:    d.MembershipID,
		AccessRequestID: d.AccessRequestID,
		Entitlement:     string(d.Entitlement),
		Kind:            string(d.Kind),
		Amount:          d.Amount,
		Description:     d.Description,
		OccurredAt:      d.OccurredAt,
		ExpiresOn:       d.ExpiresOn,
		PricePerUnit:    d.PricePerUnit,
		InvoiceID:       d.InvoiceID,
		SaleOrderRef:    d.SaleOrderRef,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		MemberID:        m.MemberID,
		MembershipID:    m.MembershipID,
		AccessRequestID: m.AccessRequestID,
		Entitlement:     domain.Entitlement(m.Entitlement),
		Kind:            domain.LedgerEntryKind(m.Kind),
		Amount:          m.Amount,
		Description:     m.Description,
		OccurredAt:      m.OccurredAt,
		ExpiresOn:       m.ExpiresOn,
		PricePerUnit:    m.PricePerUnit,
		InvoiceID:       m.InvoiceID,
		SaleOrderRef:    m.SaleOrderRef,
		CreatedBy:       m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainLedgerEntry(m)
	}
	return entries
}
