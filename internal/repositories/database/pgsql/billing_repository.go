package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	"github.com/SscSPs/cowork_membership_app/internal/models"
	"github.com/SscSPs/cowork_membership_app/internal/utils/mapping"
	"github.com/google/uuid"
)

// PgxBillingRepository is the in-database billing gateway: products, posted invoices and
// pending billing requests share the membership store, so they commit or roll back with
// the confirmation or settlement that created them.
type PgxBillingRepository struct {
	BaseRepository
	clock gateways.Clock
}

func newPgxBillingRepository(base BaseRepository, clock gateways.Clock) *PgxBillingRepository {
	return &PgxBillingRepository{BaseRepository: base, clock: clock}
}

var _ gateways.BillingGateway = (*PgxBillingRepository)(nil)

func (r *PgxBillingRepository) UpsertProduct(ctx context.Context, p domain.BillableProduct) (string, error) {
	if p.ProductID == "" {
		p.ProductID = uuid.NewString()
	}
	query := `
		INSERT INTO billable_products (product_id, name, list_price, currency_code, is_service)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE
		SET name = EXCLUDED.name, list_price = EXCLUDED.list_price,
			currency_code = EXCLUDED.currency_code, is_service = EXCLUDED.is_service;`
	if _, err := r.db(ctx).Exec(ctx, query, p.ProductID, p.Name, p.ListPrice, p.CurrencyCode, p.IsService); err != nil {
		return "", fmt.Errorf("failed to upsert product %s: %w", p.ProductID, err)
	}
	return p.ProductID, nil
}

// checkProducts rejects empty documents and lines for products the gateway does not know.
func (r *PgxBillingRepository) checkProducts(ctx context.Context, lines []domain.InvoiceLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: a billing document needs at least one line", apperrors.ErrValidation)
	}
	for _, l := range lines {
		var exists bool
		err := r.db(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM billable_products WHERE product_id = $1);`, l.ProductID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to look up product %s: %w", l.ProductID, err)
		}
		if !exists {
			return fmt.Errorf("%w: unknown billable product %q", apperrors.ErrMissingConfiguration, l.ProductID)
		}
	}
	return nil
}

func (r *PgxBillingRepository) CreateInvoice(ctx context.Context, partnerID, origin string, lines []domain.InvoiceLine) (*domain.Invoice, error) {
	if err := r.checkProducts(ctx, lines); err != nil {
		return nil, err
	}
	total := domain.TotalOf(lines)
	m := models.Invoice{
		InvoiceID:      uuid.NewString(),
		PartnerID:      partnerID,
		Origin:         origin,
		State:          string(domain.InvoicePosted),
		AmountTotal:    total,
		AmountResidual: total,
		Lines:          mapping.ToModelInvoiceLines(lines),
		CreatedAt:      r.clock.Now(),
	}
	query := `INSERT INTO invoices (invoice_id, partner_id, origin, state, amount_total, amount_residual, lines, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.InvoiceID, m.PartnerID, m.Origin, m.State, m.AmountTotal, m.AmountResidual, m.Lines, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice for %s: %w", partnerID, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

func (r *PgxBillingRepository) FindInvoices(ctx context.Context, invoiceIDs []string) ([]domain.Invoice, error) {
	invoices := make([]domain.Invoice, 0, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return invoices, nil
	}
	query := `SELECT invoice_id, partner_id, origin, state, amount_total, amount_residual, lines, created_at
		FROM invoices WHERE invoice_id = ANY($1) ORDER BY created_at, invoice_id;`
	rows, err := r.db(ctx).Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(&m.InvoiceID, &m.PartnerID, &m.Origin, &m.State, &m.AmountTotal, &m.AmountResidual, &m.Lines, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *PgxBillingRepository) CreateBillingRequest(ctx context.Context, partnerID, origin string, lines []domain.InvoiceLine) (*domain.BillingRequest, error) {
	if err := r.checkProducts(ctx, lines); err != nil {
		return nil, err
	}
	m := models.BillingRequest{
		BillingRequestID: uuid.NewString(),
		PartnerID:        partnerID,
		Origin:           origin,
		State:            string(domain.BillingRequestPending),
		AmountTotal:      domain.TotalOf(lines),
		Lines:            mapping.ToModelInvoiceLines(lines),
		CreatedAt:        r.clock.Now(),
	}
	query := `INSERT INTO billing_requests (billing_request_id, partner_id, origin, state, amount_total, lines, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.BillingRequestID, m.PartnerID, m.Origin, m.State, m.AmountTotal, m.Lines, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create billing request for %s: %w", partnerID, err)
	}
	req := mapping.ToDomainBillingRequest(m)
	return &req, nil
}
