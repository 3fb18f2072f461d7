package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceState mirrors the billing system's document state.
type InvoiceState string

const (
	InvoiceDraft  InvoiceState = "draft"
	InvoicePosted InvoiceState = "posted"
	InvoicePaid   InvoiceState = "paid"
	InvoiceVoid   InvoiceState = "void"
)

// InvoiceLine is one billed product line.
type InvoiceLine struct {
	ProductID   string          `json:"productID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Subtotal is quantity × unit price.
func (l InvoiceLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Invoice is the billing document handle returned by the billing system.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	PartnerID      string          `json:"partnerID"`
	Origin         string          `json:"origin"`
	State          InvoiceState    `json:"state"`
	AmountTotal    decimal.Decimal `json:"amountTotal"`
	AmountResidual decimal.Decimal `json:"amountResidual"`
	Lines          []InvoiceLine   `json:"lines"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// BillingRequestState tracks a pending sale order.
type BillingRequestState string

const (
	BillingRequestPending   BillingRequestState = "pending"
	BillingRequestConfirmed BillingRequestState = "confirmed"
	BillingRequestCancelled BillingRequestState = "cancelled"
)

// BillingRequest is a pending sale order awaiting confirmation by the billing system.
type BillingRequest struct {
	BillingRequestID string              `json:"billingRequestID"`
	PartnerID        string              `json:"partnerID"`
	Origin           string              `json:"origin"`
	State            BillingRequestState `json:"state"`
	Lines            []InvoiceLine       `json:"lines"`
	AmountTotal      decimal.Decimal     `json:"amountTotal"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// BillableProduct is the billing system's product for a plan, service or credit package.
type BillableProduct struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	ListPrice    decimal.Decimal `json:"listPrice"`
	CurrencyCode string          `json:"currencyCode"`
	IsService    bool            `json:"isService"`
}

// TotalOf sums invoice line subtotals.
func TotalOf(lines []InvoiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ConfirmedOrderLine is one line of a sale order confirmed by the billing system.
type ConfirmedOrderLine struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ConfirmedOrder is the sale-order confirmation event.
type ConfirmedOrder struct {
	OrderRef  string               `json:"order_ref"`
	PartnerID string               `json:"partner_id"`
	Lines     []ConfirmedOrderLine `json:"lines"`
}
