package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MembershipState is the lifecycle state of a membership.
type MembershipState string

const (
	MembershipDraft     MembershipState = "draft"
	MembershipConfirmed MembershipState = "confirmed"
	MembershipActive    MembershipState = "active"
	MembershipExpired   MembershipState = "expired"
	MembershipCancelled MembershipState = "cancelled"
)

var membershipTransitions = map[MembershipState][]MembershipState{
	MembershipDraft:     {MembershipConfirmed, MembershipExpired, MembershipCancelled},
	MembershipConfirmed: {MembershipActive, MembershipExpired, MembershipCancelled},
	MembershipActive:    {MembershipExpired, MembershipCancelled},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s MembershipState) CanTransitionTo(next MembershipState) bool {
	for _, allowed := range membershipTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Membership binds a member to a plan, at most one resource and a validity window.
type Membership struct {
	MembershipID       string          `json:"membershipID"`
	Reference          string          `json:"reference"`
	MemberID           string          `json:"memberID"`
	PlanID             string          `json:"planID"`
	ResourceID         *string         `json:"resourceID,omitempty"`
	DateStart          time.Time       `json:"dateStart"`
	DateEnd            time.Time       `json:"dateEnd"`
	State              MembershipState `json:"state"`
	PoliciesAccepted   bool            `json:"policiesAccepted"`
	BenefitPeriodStart *time.Time      `json:"benefitPeriodStart,omitempty"`
	LeadID             *string         `json:"leadID,omitempty"`
	RenewedFromID      *string         `json:"renewedFromID,omitempty"`
	RatingID           *string         `json:"ratingID,omitempty"`
	InvoiceIDs         []string        `json:"invoiceIDs"`
	Notes              string          `json:"notes,omitempty"`
	PortalTokenHash    *string         `json:"-"`
	AuditFields
}

// Transition moves the membership to next or reports an invalid transition.
func (m *Membership) Transition(next MembershipState) error {
	if !m.State.CanTransitionTo(next) {
		return fmt.Errorf("%w: membership %s cannot go from %s to %s", apperrors.ErrInvalidTransition, m.Reference, m.State, next)
	}
	m.State = next
	return nil
}

// RenewalDraft builds the successor of m starting where m ends. Invoices, rating and
// resource reservations are not carried; the resource binding is, so the successor can
// re-reserve the same unit once m releases it.
func (m Membership) RenewalDraft(newID string, plan MembershipPlan) Membership {
	renewedFrom := m.MembershipID
	return Membership{
		MembershipID:     newID,
		MemberID:         m.MemberID,
		PlanID:           m.PlanID,
		ResourceID:       m.ResourceID,
		DateStart:        m.DateEnd,
		DateEnd:          plan.EndDate(m.DateEnd),
		State:            MembershipDraft,
		PoliciesAccepted: m.PoliciesAccepted,
		LeadID:           m.LeadID,
		RenewedFromID:    &renewedFrom,
		InvoiceIDs:       []string{},
	}
}

// MonthlyResetDue reports whether today is the monthly benefit anniversary of start.
// Starts on days the current month lacks (29-31) reset on the month's last day.
func MonthlyResetDue(start, today time.Time) bool {
	startDay := start.Day()
	today = DateOf(today)
	lastDay := today.AddDate(0, 1, -today.Day()).Day()
	if startDay > lastDay {
		return today.Day() == lastDay
	}
	return today.Day() == startDay
}

// EntitlementBalance is the granted/used/remaining triple for one entitlement.
type EntitlementBalance struct {
	Granted   decimal.Decimal `json:"granted"`
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
}

// MembershipBalances groups the three entitlement balances of a membership.
type MembershipBalances struct {
	Credits       EntitlementBalance `json:"credits"`
	Passes        EntitlementBalance `json:"passes"`
	CallRoomHours EntitlementBalance `json:"callRoomHours"`
}

// For returns the balance of a single entitlement.
func (b MembershipBalances) For(e Entitlement) EntitlementBalance {
	switch e {
	case EntitlementPasses:
		return b.Passes
	case EntitlementCallRoomHours:
		return b.CallRoomHours
	default:
		return b.Credits
	}
}

// MembershipAmounts aggregates the invoices billed to a membership.
type MembershipAmounts struct {
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
	Due   decimal.Decimal `json:"due"`
}

// MembershipFilter narrows membership listings.
type MembershipFilter struct {
	MemberID string
	PlanID   string
	State    MembershipState
}

// Matches reports whether m satisfies the filter.
func (f MembershipFilter) Matches(m Membership) bool {
	if f.MemberID != "" && m.MemberID != f.MemberID {
		return false
	}
	if f.PlanID != "" && m.PlanID != f.PlanID {
		return false
	}
	if f.State != "" && m.State != f.State {
		return false
	}
	return true
}

// MembershipSummary is a membership with its plan, derived balances and billed amounts.
type MembershipSummary struct {
	Membership Membership
	Plan       MembershipPlan
	Balances   MembershipBalances
	Amounts    MembershipAmounts
}
