package gateways

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// BillingGateway is the invoicing and sales system. Calls made with a transactional ctx
// take part in the caller's transaction when the adapter shares the store.
type BillingGateway interface {
	// UpsertProduct updates the product with p.ProductID or creates one when it is empty,
	// returning the product id.
	UpsertProduct(ctx context.Context, p domain.BillableProduct) (string, error)

	// CreateInvoice posts an invoice for the partner.
	CreateInvoice(ctx context.Context, partnerID, origin string, lines []domain.InvoiceLine) (*domain.Invoice, error)

	// FindInvoices retrieves invoices by id.
	FindInvoices(ctx context.Context, invoiceIDs []string) ([]domain.Invoice, error)

	// CreateBillingRequest opens a pending sale order for the partner.
	CreateBillingRequest(ctx context.Context, partnerID, origin string, lines []domain.InvoiceLine) (*domain.BillingRequest, error)
}
