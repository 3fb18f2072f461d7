package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DurationUnit is the billing period unit of a plan.
type DurationUnit string

const (
	DurationDaily   DurationUnit = "daily"
	DurationWeekly  DurationUnit = "weekly"
	DurationMonthly DurationUnit = "monthly"
	DurationAnnual  DurationUnit = "annual"
)

// Approximate day counts; plans are not calendar-aware.
var durationUnitDays = map[DurationUnit]int{
	DurationDaily:   1,
	DurationWeekly:  7,
	DurationMonthly: 30,
	DurationAnnual:  365,
}

// Valid reports whether u is a known duration unit.
func (u DurationUnit) Valid() bool {
	_, ok := durationUnitDays[u]
	return ok
}

// MembershipPlan describes what a membership grants per period and how it is billed.
type MembershipPlan struct {
	PlanID                string          `json:"planID"`
	Name                  string          `json:"name"`
	Description           string          `json:"description"`
	SpaceType             SpaceType       `json:"spaceType"`
	DurationUnit          DurationUnit    `json:"durationUnit"`
	DurationValue         int             `json:"durationValue"`
	Price                 decimal.Decimal `json:"price"`
	CurrencyCode          string          `json:"currencyCode"`
	CreditsIncluded       int64           `json:"creditsIncluded"`
	PassesIncluded        int64           `json:"passesIncluded"`
	CallRoomHoursIncluded decimal.Decimal `json:"callRoomHoursIncluded"`
	IsRecurring           bool            `json:"isRecurring"`
	AutoRenew             bool            `json:"autoRenew"`
	RequiresDeposit       bool            `json:"requiresDeposit"`
	DepositAmount         decimal.Decimal `json:"depositAmount"`
	AllowsExclusiveFloor  bool            `json:"allowsExclusiveFloor"`
	PolicyIDs             []string        `json:"policyIDs"`
	ProductID             *string         `json:"productID,omitempty"`
	IsActive              bool            `json:"isActive"`
	AuditFields
}

// DurationDays is the plan length in days: unit days × multiplier.
func (p MembershipPlan) DurationDays() int {
	value := p.DurationValue
	if value <= 0 {
		value = 1
	}
	return durationUnitDays[p.DurationUnit] * value
}

// EndDate returns the membership end date for a given start.
func (p MembershipPlan) EndDate(start time.Time) time.Time {
	return DateOf(start).AddDate(0, 0, p.DurationDays())
}

// RequiresPolicies reports whether memberships on this plan must accept policies before confirmation.
func (p MembershipPlan) RequiresPolicies() bool {
	return len(p.PolicyIDs) > 0
}

// DeskOrBedKind is the per-seat resource kind matching the plan space type.
func (p MembershipPlan) DeskOrBedKind() ResourceKind {
	if p.SpaceType == SpaceColiving {
		return ResourceBed
	}
	return ResourceDesk
}

// AllowsResource reports whether a resource of the given kind may be bound to a membership on this plan.
func (p MembershipPlan) AllowsResource(kind ResourceKind) bool {
	if kind == ResourceFloor {
		return p.AllowsExclusiveFloor
	}
	return kind == p.DeskOrBedKind()
}
