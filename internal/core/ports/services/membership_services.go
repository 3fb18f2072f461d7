package services

import (
	"context"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
)

// MembershipReaderSvc defines read operations for memberships
type MembershipReaderSvc interface {
	GetMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error)

	// GetMembershipSummary returns the membership with its plan, balances and billed amounts.
	GetMembershipSummary(ctx context.Context, membershipID string) (*domain.MembershipSummary, error)

	ListMemberships(ctx context.Context, params dto.ListMembershipsParams) (*dto.ListMembershipsResponse, error)
	ListNotes(ctx context.Context, membershipID string) ([]domain.RecordNote, error)
}

// MembershipWriterSvc defines creation and draft edits
type MembershipWriterSvc interface {
	CreateMembership(ctx context.Context, req dto.CreateMembershipRequest, userID string) (*domain.Membership, error)
	UpdateMembership(ctx context.Context, membershipID string, req dto.UpdateMembershipRequest, userID string) (*domain.Membership, error)
	AcceptPolicies(ctx context.Context, membershipID string, userID string) (*domain.Membership, error)
}

// MembershipLifecycleSvc defines the guarded lifecycle transitions
type MembershipLifecycleSvc interface {
	Confirm(ctx context.Context, membershipID string, userID string) (*domain.Membership, error)
	Activate(ctx context.Context, membershipID string, userID string) (*domain.Membership, error)
	Expire(ctx context.Context, membershipID string, userID string) (*domain.Membership, error)
	Cancel(ctx context.Context, membershipID string, userID string) (*domain.Membership, error)

	// Renew creates the draft successor of a membership; the source membership is not modified.
	Renew(ctx context.Context, membershipID string, userID string) (*domain.Membership, error)

	// RenewMonthlyBenefits grants the period's renewal credits and resets pass and call-room usage.
	RenewMonthlyBenefits(ctx context.Context, membershipID string, userID string) (*domain.Membership, error)

	// CreateInvoice bills the plan price to the member.
	CreateInvoice(ctx context.Context, membershipID string, userID string) (*domain.Invoice, error)

	// CreateSubscription opens a pending billing request for the plan.
	CreateSubscription(ctx context.Context, membershipID string, userID string) (*domain.BillingRequest, error)
}

// MembershipPortalSvc defines the member-facing token access
type MembershipPortalSvc interface {
	// IssuePortalToken replaces the membership's portal token and returns the plaintext once.
	IssuePortalToken(ctx context.Context, membershipID string, userID string) (string, error)

	// GetSummaryWithToken returns the membership summary when token matches, ErrForbidden otherwise.
	GetSummaryWithToken(ctx context.Context, membershipID, token string) (*domain.MembershipSummary, error)
}

// MembershipRatingSvc defines the member's rating of a membership
type MembershipRatingSvc interface {
	// RateMembership records or replaces the membership's rating. Drafts cannot be rated.
	RateMembership(ctx context.Context, membershipID string, req dto.RateMembershipRequest, userID string) (*domain.MembershipRating, error)
	GetRating(ctx context.Context, membershipID string) (*domain.MembershipRating, error)
}

// MembershipSvcFacade combines all membership service interfaces
type MembershipSvcFacade interface {
	MembershipReaderSvc
	MembershipWriterSvc
	MembershipLifecycleSvc
	MembershipPortalSvc
	MembershipRatingSvc
}

// SweepReport summarizes one sweep run.
type SweepReport struct {
	AsOf      time.Time `json:"asOf"`
	Due       int       `json:"due"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	Renewed   []string  `json:"renewed,omitempty"`
	Reminded  []string  `json:"reminded,omitempty"`
}

// SweepSvc defines the periodic membership sweeps
type SweepSvc interface {
	// RunExpirySweep expires overdue memberships, auto-renews where the plan says so and
	// sends renewal reminders. A zero asOf means now.
	RunExpirySweep(ctx context.Context, asOf time.Time) (*SweepReport, error)

	// RunMonthlyResetSweep renews monthly benefits of memberships whose anniversary is today.
	RunMonthlyResetSweep(ctx context.Context, asOf time.Time) (*SweepReport, error)
}
