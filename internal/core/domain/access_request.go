package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccessRequestState is the approval state of an access request.
type AccessRequestState string

const (
	AccessRequestDraft     AccessRequestState = "draft"
	AccessRequestPending   AccessRequestState = "pending"
	AccessRequestApproved  AccessRequestState = "approved"
	AccessRequestRejected  AccessRequestState = "rejected"
	AccessRequestCancelled AccessRequestState = "cancelled"
)

var accessRequestTransitions = map[AccessRequestState][]AccessRequestState{
	AccessRequestDraft:    {AccessRequestPending, AccessRequestCancelled},
	AccessRequestPending:  {AccessRequestApproved, AccessRequestRejected, AccessRequestCancelled},
	AccessRequestApproved: {AccessRequestCancelled},
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
func (s AccessRequestState) CanTransitionTo(next AccessRequestState) bool {
	for _, allowed := range accessRequestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HoldsSlot reports whether requests in this state occupy their time slot.
func (s AccessRequestState) HoldsSlot() bool {
	return s != AccessRequestRejected && s != AccessRequestCancelled
}

// IsSettled reports whether costs are frozen for this state.
func (s AccessRequestState) IsSettled() bool {
	return s != AccessRequestDraft && s != AccessRequestPending
}

// PaymentMethod is the closed set of ways an access request can be paid.
type PaymentMethod string

const (
	PaymentCredits       PaymentMethod = "credits"
	PaymentPasses        PaymentMethod = "passes"
	PaymentCallRoomHours PaymentMethod = "call_room_hours"
	PaymentInvoice       PaymentMethod = "invoice"
	PaymentFree          PaymentMethod = "free"
)

// PaymentMethods lists every payment method.
var PaymentMethods = []PaymentMethod{PaymentCredits, PaymentPasses, PaymentCallRoomHours, PaymentInvoice, PaymentFree}

// Valid reports whether p is a known payment method.
func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if m == p {
			return true
		}
	}
	return false
}

// AccessRequest is a scheduled booking of a service by a membership.
type AccessRequest struct {
	AccessRequestID string             `json:"accessRequestID"`
	Reference       string             `json:"reference"`
	MembershipID    string             `json:"membershipID"`
	MemberID        string             `json:"memberID"`
	ServiceID       string             `json:"serviceID"`
	ScheduledStart  time.Time          `json:"scheduledStart"`
	DurationHours   decimal.Decimal    `json:"durationHours"`
	State           AccessRequestState `json:"state"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod"`
	Description     string             `json:"description,omitempty"`

	// Costs derived from the service and duration while unsettled.
	Price       decimal.Decimal `json:"price"`
	CreditsCost int64           `json:"creditsCost"`

	// Amounts stamped at approval; reversal undoes exactly these.
	CreditsUsed       decimal.Decimal `json:"creditsUsed"`
	PassesUsed        decimal.Decimal `json:"passesUsed"`
	CallRoomHoursUsed decimal.Decimal `json:"callRoomHoursUsed"`
	InvoiceID         *string         `json:"invoiceID,omitempty"`

	IsGuest    bool   `json:"isGuest"`
	GuestName  string `json:"guestName,omitempty"`
	GuestEmail string `json:"guestEmail,omitempty"`
	GuestCount int    `json:"guestCount,omitempty"`

	ApprovedBy *string    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	AuditFields
}

// ScheduledEnd is start plus the (possibly fractional) duration.
func (r AccessRequest) ScheduledEnd() time.Time {
	return r.ScheduledStart.Add(HoursToDuration(r.DurationHours))
}

// Overlaps reports whether the half-open intervals of r and other intersect. Touching
// endpoints do not overlap.
func (r AccessRequest) Overlaps(other AccessRequest) bool {
	return other.ScheduledStart.Before(r.ScheduledEnd()) && other.ScheduledEnd().After(r.ScheduledStart)
}

// PassCost is one pass per booking, or one per guest on guest bookings.
func (r AccessRequest) PassCost() int64 {
	if r.IsGuest && r.GuestCount > 1 {
		return int64(r.GuestCount)
	}
	return 1
}

// RecomputeCosts refreshes the derived cost fields from the service. Settled requests keep
// the costs they were approved with.
func (r *AccessRequest) RecomputeCosts(svc Service) {
	if r.State.IsSettled() {
		return
	}
	r.Price = svc.PriceFor(r.DurationHours)
	r.CreditsCost = svc.CreditsCostFor(r.DurationHours)
}

// Transition moves the request to next or reports an invalid transition.
func (r *AccessRequest) Transition(next AccessRequestState) error {
	if !r.State.CanTransitionTo(next) {
		return fmt.Errorf("%w: access request %s cannot go from %s to %s", apperrors.ErrInvalidTransition, r.Reference, r.State, next)
	}
	r.State = next
	return nil
}

// Validate checks the fields every persisted request must satisfy.
func (r AccessRequest) Validate() error {
	if !r.DurationHours.IsPositive() {
		return fmt.Errorf("%w: duration must be positive", apperrors.ErrValidation)
	}
	if r.ScheduledStart.IsZero() {
		return fmt.Errorf("%w: scheduled start is required", apperrors.ErrValidation)
	}
	if !r.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, r.PaymentMethod)
	}
	if r.IsGuest && r.GuestName == "" && r.GuestEmail == "" {
		return fmt.Errorf("%w: guest bookings need a guest name or email", apperrors.ErrValidation)
	}
	return nil
}

// HoursToDuration converts fractional hours to a time.Duration.
func HoursToDuration(hours decimal.Decimal) time.Duration {
	return time.Duration(hours.Mul(decimal.NewFromInt(int64(time.Hour))).IntPart())
}

// AccessRequestFilter narrows access request listings.
type AccessRequestFilter struct {
	MembershipID string
	ServiceID    string
	State        AccessRequestState
}

// Matches reports whether r satisfies the filter.
func (f AccessRequestFilter) Matches(r AccessRequest) bool {
	if f.MembershipID != "" && r.MembershipID != f.MembershipID {
		return false
	}
	if f.ServiceID != "" && r.ServiceID != f.ServiceID {
		return false
	}
	if f.State != "" && r.State != f.State {
		return false
	}
	return true
}
