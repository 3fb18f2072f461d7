package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

func (s *Store) FindDepositByID(ctx context.Context, depositID string) (*domain.SecurityDeposit, error) {
	var out *domain.SecurityDeposit
	err := s.read(ctx, func() error {
		d, ok := s.deposits[depositID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &d
		return nil
	})
	return out, err
}

func (s *Store) FindDepositByMembership(ctx context.Context, membershipID string) (*domain.SecurityDeposit, error) {
	var out *domain.SecurityDeposit
	err := s.read(ctx, func() error {
		for _, d := range s.deposits {
			if d.MembershipID == membershipID {
				found := d
				out = &found
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	return out, err
}

func (s *Store) SaveDeposit(ctx context.Context, deposit domain.SecurityDeposit) error {
	return s.write(ctx, func() error {
		if _, exists := s.deposits[deposit.DepositID]; exists {
			return fmt.Errorf("%w: deposit with ID %s already exists", apperrors.ErrDuplicate, deposit.DepositID)
		}
		for _, d := range s.deposits {
			if d.MembershipID == deposit.MembershipID {
				return fmt.Errorf("%w: membership %s already has a deposit", apperrors.ErrDuplicate, deposit.MembershipID)
			}
		}
		s.deposits[deposit.DepositID] = deposit
		return nil
	})
}

func (s *Store) UpdateDeposit(ctx context.Context, deposit domain.SecurityDeposit) error {
	return s.write(ctx, func() error {
		if _, exists := s.deposits[deposit.DepositID]; !exists {
			return apperrors.ErrNotFound
		}
		s.deposits[deposit.DepositID] = deposit
		return nil
	})
}

func (s *Store) FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	var out *domain.Lead
	err := s.read(ctx, func() error {
		l, ok := s.leads[leadID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &l
		return nil
	})
	return out, err
}

func (s *Store) ListLeads(ctx context.Context, limit int, nextToken *string) ([]domain.Lead, *string, error) {
	var all []domain.Lead
	err := s.read(ctx, func() error {
		for _, l := range s.leads {
			all = append(all, l)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return page(all, func(l domain.Lead) (time.Time, string) { return l.CreatedAt, l.LeadID }, limit, nextToken)
}

func (s *Store) SaveLead(ctx context.Context, lead domain.Lead) error {
	return s.write(ctx, func() error {
		if _, exists := s.leads[lead.LeadID]; exists {
			return fmt.Errorf("%w: lead with ID %s already exists", apperrors.ErrDuplicate, lead.LeadID)
		}
		s.leads[lead.LeadID] = lead
		return nil
	})
}

func (s *Store) UpdateLead(ctx context.Context, lead domain.Lead) error {
	return s.write(ctx, func() error {
		if _, exists := s.leads[lead.LeadID]; !exists {
			return apperrors.ErrNotFound
		}
		s.leads[lead.LeadID] = lead
		return nil
	})
}

func (s *Store) AddNote(ctx context.Context, note domain.RecordNote) error {
	return s.write(ctx, func() error {
		s.notes = append(s.notes, note)
		return nil
	})
}

// ListNotes returns the notes of a record, oldest first.
func (s *Store) ListNotes(ctx context.Context, subject domain.NoteSubject, recordID string) ([]domain.RecordNote, error) {
	out := []domain.RecordNote{}
	err := s.read(ctx, func() error {
		for _, n := range s.notes {
			if n.Subject == subject && n.RecordID == recordID {
				out = append(out, n)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) FindRatingByMembership(ctx context.Context, membershipID string) (*domain.MembershipRating, error) {
	var out *domain.MembershipRating
	err := s.read(ctx, func() error {
		for _, r := range s.ratings {
			if r.MembershipID == membershipID {
				found := r
				out = &found
				return nil
			}
		}
		return fmt.Errorf("%w: rating of membership %s", apperrors.ErrNotFound, membershipID)
	})
	return out, err
}

func (s *Store) SaveRating(ctx context.Context, rating domain.MembershipRating) error {
	return s.write(ctx, func() error {
		if _, exists := s.ratings[rating.RatingID]; exists {
			return fmt.Errorf("%w: rating with ID %s already exists", apperrors.ErrDuplicate, rating.RatingID)
		}
		for _, r := range s.ratings {
			if r.MembershipID == rating.MembershipID {
				return fmt.Errorf("%w: membership %s is already rated", apperrors.ErrDuplicate, rating.MembershipID)
			}
		}
		s.ratings[rating.RatingID] = rating
		return nil
	})
}

func (s *Store) UpdateRating(ctx context.Context, rating domain.MembershipRating) error {
	return s.write(ctx, func() error {
		if _, exists := s.ratings[rating.RatingID]; !exists {
			return apperrors.ErrNotFound
		}
		s.ratings[rating.RatingID] = rating
		return nil
	})
}
