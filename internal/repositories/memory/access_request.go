package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

func (s *Store) FindAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	var out *domain.AccessRequest
	err := s.read(ctx, func() error {
		r, ok := s.accessRequests[requestID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &r
		return nil
	})
	return out, err
}

func (s *Store) FindAccessRequestByIDForUpdate(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	return s.FindAccessRequestByID(ctx, requestID)
}

func (s *Store) ListAccessRequests(ctx context.Context, filter domain.AccessRequestFilter, limit int, nextToken *string) ([]domain.AccessRequest, *string, error) {
	var matched []domain.AccessRequest
	err := s.read(ctx, func() error {
		for _, r := range s.accessRequests {
			if filter.Matches(r) {
				matched = append(matched, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return page(matched, func(r domain.AccessRequest) (time.Time, string) { return r.ScheduledStart, r.AccessRequestID }, limit, nextToken)
}

func (s *Store) FindSlotHolders(ctx context.Context, serviceID, excludeID string, startsBefore time.Time) ([]domain.AccessRequest, error) {
	var out []domain.AccessRequest
	err := s.read(ctx, func() error {
		for _, r := range s.accessRequests {
			if r.ServiceID != serviceID || r.AccessRequestID == excludeID {
				continue
			}
			if r.State.HoldsSlot() && r.ScheduledStart.Before(startsBefore) {
				out = append(out, r)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) SaveAccessRequest(ctx context.Context, request domain.AccessRequest) error {
	return s.write(ctx, func() error {
		if _, exists := s.accessRequests[request.AccessRequestID]; exists {
			return fmt.Errorf("%w: access request with ID %s already exists", apperrors.ErrDuplicate, request.AccessRequestID)
		}
		s.accessRequests[request.AccessRequestID] = request
		return nil
	})
}

func (s *Store) UpdateAccessRequest(ctx context.Context, request domain.AccessRequest) error {
	return s.write(ctx, func() error {
		if _, exists := s.accessRequests[request.AccessRequestID]; !exists {
			return apperrors.ErrNotFound
		}
		s.accessRequests[request.AccessRequestID] = request
		return nil
	})
}
