package models

import "time"

// Membership is the memberships row. Invoice links live in membership_invoices.
type Membership struct {
	MembershipID       string     `db:"membership_id"`
	Reference          string     `db:"reference"`
	MemberID           string     `db:"member_id"`
	PlanID             string     `db:"plan_id"`
	ResourceID         *string    `db:"resource_id"` // Nullable
	DateStart          time.Time  `db:"date_start"`
	DateEnd            time.Time  `db:"date_end"`
	State              string     `db:"state"`
	PoliciesAccepted   bool       `db:"policies_accepted"`
	BenefitPeriodStart *time.Time `db:"benefit_period_start"` // Nullable
	LeadID             *string    `db:"lead_id"`              // Nullable
	RenewedFromID      *string    `db:"renewed_from_id"`      // Nullable
	RatingID           *string    `db:"rating_id"`            // Nullable
	Notes              string     `db:"notes"`
	PortalTokenHash    *string    `db:"portal_token_hash"` // Nullable
	AuditFields
}
