package mapping

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/models"
)

// ToModelInvoiceLines converts domain invoice lines to their stored JSON form
func ToModelInvoiceLines(lines []domain.InvoiceLine) []models.InvoiceLine {
	out := make([]models.InvoiceLine, len(lines))
	for i, l := range lines {
		out[i] = models.InvoiceLine{
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return out
}

// ToDomainInvoiceLines converts stored invoice lines to domain lines
func ToDomainInvoiceLines(lines []models.InvoiceLine) []domain.InvoiceLine {
	out := make([]domain.InvoiceLine, len(lines))
	for i, l := range lines {
		out[i] = domain.InvoiceLine{
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return out
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:      m.InvoiceID,
		PartnerID:      m.PartnerID,
		Origin:         m.Origin,
		State:          domain.InvoiceState(m.State),
		AmountTotal:    m.AmountTotal,
		AmountResidual: m.AmountResidual,
		Lines:          ToDomainInvoiceLines(m.Lines),
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainBillingRequest converts a model BillingRequest to a domain BillingRequest
func ToDomainBillingRequest(m models.BillingRequest) domain.BillingRequest {
	return domain.BillingRequest{
		BillingRequestID: m.BillingRequestID,
		PartnerID:        m.PartnerID,
		Origin:           m.Origin,
		State:            domain.BillingRequestState(m.State),
		Lines:            ToDomainInvoiceLines(m.Lines),
		AmountTotal:      m.AmountTotal,
		CreatedAt:        m.CreatedAt,
	}
}
