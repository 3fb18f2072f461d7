package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// MembershipReader defines read operations for memberships
type MembershipReader interface {
	FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error)

	// FindMembershipByIDForUpdate retrieves a membership and locks it for the rest of the transaction.
	FindMembershipByIDForUpdate(ctx context.Context, membershipID string) (*domain.Membership, error)

	// ListMemberships retrieves a page of memberships ordered by creation, newest first.
	ListMemberships(ctx context.Context, filter domain.MembershipFilter, limit int, nextToken *string) ([]domain.Membership, *string, error)

	// CountActiveByPlan counts confirmed or active memberships on a plan.
	CountActiveByPlan(ctx context.Context, planID string) (int, error)
}

// MembershipSweepQueries select the memberships a periodic sweep must act on. They are
// pure reads against the store; the caller supplies "today".
type MembershipSweepQueries interface {
	// DueForExpiry returns active memberships whose end date is before today.
	DueForExpiry(ctx context.Context, today time.Time) ([]string, error)

	// DueForRenewalReminder returns active memberships ending exactly on date whose plan does not auto-renew.
	DueForRenewalReminder(ctx context.Context, date time.Time) ([]string, error)

	// DueForMonthlyReset returns active memberships on recurring plans whose benefit
	// anniversary (see domain.MonthlyResetDue) is today and whose benefits were not already
	// reset today.
	DueForMonthlyReset(ctx context.Context, today time.Time) ([]string, error)
}

// MembershipWriter defines write operations for memberships
type MembershipWriter interface {
	SaveMembership(ctx context.Context, membership domain.Membership) error
	UpdateMembership(ctx context.Context, membership domain.Membership) error

	// LinkInvoice records an invoice billed to the membership.
	LinkInvoice(ctx context.Context, membershipID, invoiceID string) error
}

// MembershipRepositoryFacade combines all membership-related repository interfaces
type MembershipRepositoryFacade interface {
	MembershipReader
	MembershipSweepQueries
	MembershipWriter
}
