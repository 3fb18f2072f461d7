package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccessRequest is the access_requests row.
type AccessRequest struct {
	AccessRequestID   string          `db:"access_request_id"`
	Reference         string          `db:"reference"`
	MembershipID      string          `db:"membership_id"`
	MemberID          string          `db:"member_id"`
	ServiceID         string          `db:"service_id"`
	ScheduledStart    time.Time       `db:"scheduled_start"`
	DurationHours     decimal.Decimal `db:"duration_hours"`
	State             string          `db:"state"`
	PaymentMethod     string          `db:"payment_method"`
	Description       string          `db:"description"`
	Price             decimal.Decimal `db:"price"`
	CreditsCost       int64           `db:"credits_cost"`
	CreditsUsed       decimal.Decimal `db:"credits_used"`
	PassesUsed        decimal.Decimal `db:"passes_used"`
	CallRoomHoursUsed decimal.Decimal `db:"call_room_hours_used"`
	InvoiceID         *string         `db:"invoice_id"` // Nullable
	IsGuest           bool            `db:"is_guest"`
	GuestName         string          `db:"guest_name"`
	GuestEmail        string          `db:"guest_email"`
	GuestCount        int             `db:"guest_count"`
	ApprovedBy        *string         `db:"approved_by"` // Nullable
	ApprovedAt        *time.Time      `db:"approved_at"` // Nullable
	AuditFields
}
