package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

func (s *Store) FindPlanByID(ctx context.Context, planID string) (*domain.MembershipPlan, error) {
	var out *domain.MembershipPlan
	err := s.read(ctx, func() error {
		p, ok := s.plans[planID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (s *Store) ListPlans(ctx context.Context, spaceType domain.SpaceType, activeOnly bool) ([]domain.MembershipPlan, error) {
	var out []domain.MembershipPlan
	err := s.read(ctx, func() error {
		for _, p := range s.plans {
			if spaceType != "" && p.SpaceType != spaceType {
				continue
			}
			if activeOnly && !p.IsActive {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (s *Store) SavePlan(ctx context.Context, plan domain.MembershipPlan) error {
	return s.write(ctx, func() error {
		if _, exists := s.plans[plan.PlanID]; exists {
			return fmt.Errorf("%w: plan with ID %s already exists", apperrors.ErrDuplicate, plan.PlanID)
		}
		s.plans[plan.PlanID] = plan
		return nil
	})
}

func (s *Store) UpdatePlan(ctx context.Context, plan domain.MembershipPlan) error {
	return s.write(ctx, func() error {
		if _, exists := s.plans[plan.PlanID]; !exists {
			return apperrors.ErrNotFound
		}
		s.plans[plan.PlanID] = plan
		return nil
	})
}

func (s *Store) FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	var out *domain.Service
	err := s.read(ctx, func() error {
		svc, ok := s.services[serviceID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &svc
		return nil
	})
	return out, err
}

func (s *Store) ListServices(ctx context.Context, activeOnly bool) ([]domain.Service, error) {
	var out []domain.Service
	err := s.read(ctx, func() error {
		for _, svc := range s.services {
			if activeOnly && !svc.IsActive {
				continue
			}
			out = append(out, svc)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

func (s *Store) SaveService(ctx context.Context, service domain.Service) error {
	return s.write(ctx, func() error {
		if _, exists := s.services[service.ServiceID]; exists {
			return fmt.Errorf("%w: service with ID %s already exists", apperrors.ErrDuplicate, service.ServiceID)
		}
		for _, other := range s.services {
			if other.Code == service.Code {
				return fmt.Errorf("%w: service code %s already in use", apperrors.ErrDuplicate, service.Code)
			}
		}
		s.services[service.ServiceID] = service
		return nil
	})
}

func (s *Store) UpdateService(ctx context.Context, service domain.Service) error {
	return s.write(ctx, func() error {
		if _, exists := s.services[service.ServiceID]; !exists {
			return apperrors.ErrNotFound
		}
		s.services[service.ServiceID] = service
		return nil
	})
}

// LockServiceForBooking only checks existence: transactions are already serialized.
func (s *Store) LockServiceForBooking(ctx context.Context, serviceID string) error {
	return s.read(ctx, func() error {
		if _, ok := s.services[serviceID]; !ok {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (s *Store) FindResourceByID(ctx context.Context, resourceID string) (*domain.Resource, error) {
	var out *domain.Resource
	err := s.read(ctx, func() error {
		r, ok := s.resources[resourceID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &r
		return nil
	})
	return out, err
}

func (s *Store) FindResourceByIDForUpdate(ctx context.Context, resourceID string) (*domain.Resource, error) {
	return s.FindResourceByID(ctx, resourceID)
}

func (s *Store) FindFirstAvailable(ctx context.Context, kind domain.ResourceKind) (*domain.Resource, error) {
	candidates, err := s.ListResources(ctx, domain.ResourceFilter{Kind: kind, State: domain.ResourceAvailable})
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if !candidates[i].IsBound() {
			return &candidates[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListResources(ctx context.Context, filter domain.ResourceFilter) ([]domain.Resource, error) {
	var out []domain.Resource
	err := s.read(ctx, func() error {
		for _, r := range s.resources {
			if filter.Matches(r) {
				out = append(out, r)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code == out[j].Code {
			return out[i].ResourceID < out[j].ResourceID
		}
		return out[i].Code < out[j].Code
	})
	return out, err
}

func (s *Store) SaveResource(ctx context.Context, resource domain.Resource) error {
	return s.write(ctx, func() error {
		if _, exists := s.resources[resource.ResourceID]; exists {
			return fmt.Errorf("%w: resource with ID %s already exists", apperrors.ErrDuplicate, resource.ResourceID)
		}
		for _, other := range s.resources {
			if other.Kind == resource.Kind && other.Code == resource.Code {
				return fmt.Errorf("%w: %s code %s already in use", apperrors.ErrDuplicate, resource.Kind, resource.Code)
			}
		}
		s.resources[resource.ResourceID] = resource
		return nil
	})
}

func (s *Store) UpdateResourceAllocation(ctx context.Context, resource domain.Resource) error {
	return s.write(ctx, func() error {
		current, exists := s.resources[resource.ResourceID]
		if !exists {
			return apperrors.ErrNotFound
		}
		current.State = resource.State
		current.MemberID = resource.MemberID
		current.MembershipID = resource.MembershipID
		current.DateStart = resource.DateStart
		current.DateEnd = resource.DateEnd
		current.LastUpdatedAt = resource.LastUpdatedAt
		current.LastUpdatedBy = resource.LastUpdatedBy
		s.resources[resource.ResourceID] = current
		return nil
	})
}
