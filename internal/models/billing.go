package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is stored as JSON inside invoices.lines and billing_requests.lines.
type InvoiceLine struct {
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Invoice is the invoices row.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	PartnerID      string          `db:"partner_id"`
	Origin         string          `db:"origin"`
	State          string          `db:"state"`
	AmountTotal    decimal.Decimal `db:"amount_total"`
	AmountResidual decimal.Decimal `db:"amount_residual"`
	Lines          []InvoiceLine   `db:"lines"`
	CreatedAt      time.Time       `db:"created_at"`
}

// BillingRequest is the billing_requests row.
type BillingRequest struct {
	BillingRequestID string          `db:"billing_request_id"`
	PartnerID        string          `db:"partner_id"`
	Origin           string          `db:"origin"`
	State            string          `db:"state"`
	AmountTotal      decimal.Decimal `db:"amount_total"`
	Lines            []InvoiceLine   `db:"lines"`
	CreatedAt        time.Time       `db:"created_at"`
}
