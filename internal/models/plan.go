package models

import "github.com/shopspring/decimal"

// MembershipPlan is the membership_plans row.
type MembershipPlan struct {
	PlanID                string          `db:"plan_id"`
	Name                  string          `db:"name"`
	Description           string          `db:"description"`
	SpaceType             string          `db:"space_type"`
	DurationUnit          string          `db:"duration_unit"`
	DurationValue         int             `db:"duration_value"`
	Price                 decimal.Decimal `db:"price"`
	CurrencyCode          string          `db:"currency_code"`
	CreditsIncluded       int64           `db:"credits_included"`
	PassesIncluded        int64           `db:"passes_included"`
	CallRoomHoursIncluded decimal.Decimal `db:"call_room_hours_included"`
	IsRecurring           bool            `db:"is_recurring"`
	AutoRenew             bool            `db:"auto_renew"`
	RequiresDeposit       bool            `db:"requires_deposit"`
	DepositAmount         decimal.Decimal `db:"deposit_amount"`
	AllowsExclusiveFloor  bool            `db:"allows_exclusive_floor"`
	PolicyIDs             []string        `db:"policy_ids"`
	ProductID             *string         `db:"product_id"` // Nullable
	IsActive              bool            `db:"is_active"`
	AuditFields
}

// Service is the services row.
type Service struct {
	ServiceID          string          `db:"service_id"`
	Name               string          `db:"name"`
	Code               string          `db:"code"`
	Description        string          `db:"description"`
	ServiceType        string          `db:"service_type"`
	SpaceType          string          `db:"space_type"`
	IsPaid             bool            `db:"is_paid"`
	Price              decimal.Decimal `db:"price"`
	CreditsCost        decimal.Decimal `db:"credits_cost"`
	AllowCreditPayment bool            `db:"allow_credit_payment"`
	RequiresApproval   bool            `db:"requires_approval"`
	ProductID          *string         `db:"product_id"` // Nullable
	IsActive           bool            `db:"is_active"`
	AuditFields
}
