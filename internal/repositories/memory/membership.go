package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

func (s *Store) FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	var out *domain.Membership
	err := s.read(ctx, func() error {
		m, ok := s.memberships[membershipID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &m
		return nil
	})
	return out, err
}

func (s *Store) FindMembershipByIDForUpdate(ctx context.Context, membershipID string) (*domain.Membership, error) {
	return s.FindMembershipByID(ctx, membershipID)
}

func (s *Store) ListMemberships(ctx context.Context, filter domain.MembershipFilter, limit int, nextToken *string) ([]domain.Membership, *string, error) {
	var matched []domain.Membership
	err := s.read(ctx, func() error {
		for _, m := range s.memberships {
			if filter.Matches(m) {
				matched = append(matched, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return page(matched, func(m domain.Membership) (time.Time, string) { return m.CreatedAt, m.MembershipID }, limit, nextToken)
}

func (s *Store) CountActiveByPlan(ctx context.Context, planID string) (int, error) {
	count := 0
	err := s.read(ctx, func() error {
		for _, m := range s.memberships {
			if m.PlanID == planID && (m.State == domain.MembershipConfirmed || m.State == domain.MembershipActive) {
				count++
			}
		}
		return nil
	})
	return count, err
}

// dueWhere returns the references-ordered ids of active memberships accepted by keep.
func (s *Store) dueWhere(ctx context.Context, keep func(m domain.Membership, plan domain.MembershipPlan) bool) ([]string, error) {
	var due []domain.Membership
	err := s.read(ctx, func() error {
		for _, m := range s.memberships {
			if m.State != domain.MembershipActive {
				continue
			}
			plan, ok := s.plans[m.PlanID]
			if !ok {
				continue
			}
			if keep(m, plan) {
				due = append(due, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(due, func(i, j int) bool { return due[i].Reference < due[j].Reference })
	ids := make([]string, len(due))
	for i, m := range due {
		ids[i] = m.MembershipID
	}
	return ids, nil
}

func (s *Store) DueForExpiry(ctx context.Context, today time.Time) ([]string, error) {
	day := domain.DateOf(today)
	return s.dueWhere(ctx, func(m domain.Membership, _ domain.MembershipPlan) bool {
		return domain.DateOf(m.DateEnd).Before(day)
	})
}

func (s *Store) DueForRenewalReminder(ctx context.Context, date time.Time) ([]string, error) {
	day := domain.DateOf(date)
	return s.dueWhere(ctx, func(m domain.Membership, plan domain.MembershipPlan) bool {
		return !plan.AutoRenew && domain.DateOf(m.DateEnd).Equal(day)
	})
}

func (s *Store) DueForMonthlyReset(ctx context.Context, today time.Time) ([]string, error) {
	day := domain.DateOf(today)
	return s.dueWhere(ctx, func(m domain.Membership, plan domain.MembershipPlan) bool {
		if !plan.IsRecurring || !domain.MonthlyResetDue(m.DateStart, day) {
			return false
		}
		return m.BenefitPeriodStart == nil || domain.DateOf(*m.BenefitPeriodStart).Before(day)
	})
}

func (s *Store) SaveMembership(ctx context.Context, membership domain.Membership) error {
	return s.write(ctx, func() error {
		if _, exists := s.memberships[membership.MembershipID]; exists {
			return fmt.Errorf("%w: membership with ID %s already exists", apperrors.ErrDuplicate, membership.MembershipID)
		}
		s.memberships[membership.MembershipID] = membership
		return nil
	})
}

func (s *Store) UpdateMembership(ctx context.Context, membership domain.Membership) error {
	return s.write(ctx, func() error {
		current, exists := s.memberships[membership.MembershipID]
		if !exists {
			return apperrors.ErrNotFound
		}
		// invoice links are owned by LinkInvoice
		membership.InvoiceIDs = current.InvoiceIDs
		s.memberships[membership.MembershipID] = membership
		return nil
	})
}

func (s *Store) LinkInvoice(ctx context.Context, membershipID, invoiceID string) error {
	return s.write(ctx, func() error {
		m, exists := s.memberships[membershipID]
		if !exists {
			return apperrors.ErrNotFound
		}
		ids := make([]string, 0, len(m.InvoiceIDs)+1)
		ids = append(ids, m.InvoiceIDs...)
		m.InvoiceIDs = append(ids, invoiceID)
		s.memberships[membershipID] = m
		return nil
	})
}
