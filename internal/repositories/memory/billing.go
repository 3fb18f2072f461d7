package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/google/uuid"
)

func (s *Store) UpsertProduct(ctx context.Context, p domain.BillableProduct) (string, error) {
	err := s.write(ctx, func() error {
		if p.ProductID == "" {
			p.ProductID = uuid.NewString()
		}
		s.products[p.ProductID] = p
		return nil
	})
	return p.ProductID, err
}

func (s *Store) checkProducts(lines []domain.InvoiceLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: a billing document needs at least one line", apperrors.ErrValidation)
	}
	for _, l := range lines {
		if _, ok := s.products[l.ProductID]; !ok {
			return fmt.Errorf("%w: unknown billable product %q", apperrors.ErrMissingConfiguration, l.ProductID)
		}
	}
	return nil
}

func (s *Store) CreateInvoice(ctx context.Context, partnerID, origin string, lines []domain.InvoiceLine) (*domain.Invoice, error) {
	var out *domain.Invoice
	err := s.write(ctx, func() error {
		if err := s.checkProducts(lines); err != nil {
			return err
		}
		total := domain.TotalOf(lines)
		inv := domain.Invoice{
			InvoiceID:      uuid.NewString(),
			PartnerID:      partnerID,
			Origin:         origin,
			State:          domain.InvoicePosted,
			AmountTotal:    total,
			AmountResidual: total,
			Lines:          lines,
			CreatedAt:      s.now(),
		}
		s.invoices[inv.InvoiceID] = inv
		out = &inv
		return nil
	})
	return out, err
}

func (s *Store) FindInvoices(ctx context.Context, invoiceIDs []string) ([]domain.Invoice, error) {
	out := make([]domain.Invoice, 0, len(invoiceIDs))
	err := s.read(ctx, func() error {
		for _, id := range invoiceIDs {
			if inv, ok := s.invoices[id]; ok {
				out = append(out, inv)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) CreateBillingRequest(ctx context.Context, partnerID, origin string, lines []domain.InvoiceLine) (*domain.BillingRequest, error) {
	var out *domain.BillingRequest
	err := s.write(ctx, func() error {
		if err := s.checkProducts(lines); err != nil {
			return err
		}
		req := domain.BillingRequest{
			BillingRequestID: uuid.NewString(),
			PartnerID:        partnerID,
			Origin:           origin,
			State:            domain.BillingRequestPending,
			Lines:            lines,
			AmountTotal:      domain.TotalOf(lines),
			CreatedAt:        s.now(),
		}
		s.billingRequests[req.BillingRequestID] = req
		out = &req
		return nil
	})
	return out, err
}
