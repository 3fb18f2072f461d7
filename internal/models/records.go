package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SecurityDeposit is the security_deposits row.
type SecurityDeposit struct {
	DepositID      string          `db:"deposit_id"`
	Reference      string          `db:"reference"`
	MembershipID   string          `db:"membership_id"`
	MemberID       string          `db:"member_id"`
	Amount         decimal.Decimal `db:"amount"`
	State          string          `db:"state"`
	DatePaid       *time.Time      `db:"date_paid"`     // Nullable
	DateReturned   *time.Time      `db:"date_returned"` // Nullable
	WithholdReason string          `db:"withhold_reason"`
	AuditFields
}

// Lead is the leads row.
type Lead struct {
	LeadID                string     `db:"lead_id"`
	ContactName           string     `db:"contact_name"`
	Email                 string     `db:"email"`
	Phone                 string     `db:"phone"`
	SpaceType             string     `db:"space_type"`
	PreferredResourceType string     `db:"preferred_resource_type"`
	City                  string     `db:"city"`
	RequestedStart        *time.Time `db:"requested_start"` // Nullable
	Requirements          string     `db:"requirements"`
	IsCoworkLead          bool       `db:"is_cowork_lead"`
	MemberID              *string    `db:"member_id"`     // Nullable
	MembershipID          *string    `db:"membership_id"` // Nullable
	CreatedAt             time.Time  `db:"created_at"`
}

// MembershipRating is the membership_ratings row.
type MembershipRating struct {
	RatingID     string    `db:"rating_id"`
	MembershipID string    `db:"membership_id"`
	MemberID     string    `db:"member_id"`
	SpaceType    string    `db:"space_type"`
	Score        int       `db:"score"`
	Feedback     string    `db:"feedback"`
	RatedOn      time.Time `db:"rated_on"`
	AuditFields
}

// RecordNote is the record_notes row.
type RecordNote struct {
	NoteID    string    `db:"note_id"`
	Subject   string    `db:"subject"`
	RecordID  string    `db:"record_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
