package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/google/uuid"
)

type resourceService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	resourceRepo portsrepo.ResourceRepositoryFacade
	clock        gateways.Clock
}

// NewResourceService creates a new inventory service for desks, beds and floors.
func NewResourceService(repos portsrepo.RepositoryProvider, clock gateways.Clock) portssvc.ResourceSvcFacade {
	return &resourceService{
		txManager:    repos.TxManager,
		resourceRepo: repos.ResourceRepo,
		clock:        clock,
	}
}

var _ portssvc.ResourceSvcFacade = (*resourceService)(nil)

func (s *resourceService) CreateResource(ctx context.Context, req dto.CreateResourceRequest, userID string) (*domain.Resource, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown resource kind %q", apperrors.ErrValidation, req.Kind)
	}
	if !domain.ValidResourceType(req.Kind, req.ResourceType) {
		return nil, fmt.Errorf("%w: %q is not a %s type", apperrors.ErrValidation, req.ResourceType, req.Kind)
	}
	if req.Kind == domain.ResourceFloor && req.FloorID != nil {
		return nil, fmt.Errorf("%w: floors do not sit on a floor", apperrors.ErrValidation)
	}
	if req.FloorID != nil {
		floor, err := s.resourceRepo.FindResourceByID(ctx, *req.FloorID)
		if err != nil {
			return nil, err
		}
		if floor.Kind != domain.ResourceFloor {
			return nil, fmt.Errorf("%w: %s is not a floor", apperrors.ErrValidation, floor.Code)
		}
	}

	now := s.clock.Now()
	resource := domain.Resource{
		ResourceID:    uuid.NewString(),
		Kind:          req.Kind,
		Name:          req.Name,
		Code:          req.Code,
		ResourceType:  req.ResourceType,
		FloorID:       req.FloorID,
		Building:      req.Building,
		Address:       req.Address,
		City:          req.City,
		RoomNumber:    req.RoomNumber,
		Capacity:      req.Capacity,
		PricePerHour:  req.PricePerHour,
		PricePerDay:   req.PricePerDay,
		PricePerMonth: req.PricePerMonth,
		IsExclusive:   req.IsExclusive,
		State:         domain.ResourceAvailable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.resourceRepo.SaveResource(ctx, resource); err != nil {
		s.LogError(ctx, err, "Failed to save resource", slog.String("code", req.Code))
		return nil, err
	}
	s.LogInfo(ctx, "Resource created",
		slog.String("resource_id", resource.ResourceID),
		slog.String("kind", string(resource.Kind)))
	return &resource, nil
}

func (s *resourceService) GetResourceByID(ctx context.Context, resourceID string) (*domain.Resource, error) {
	return s.resourceRepo.FindResourceByID(ctx, resourceID)
}

func (s *resourceService) ListResources(ctx context.Context, params dto.ListResourcesParams) ([]domain.Resource, error) {
	return s.resourceRepo.ListResources(ctx, params.ToFilter())
}

func (s *resourceService) allocate(ctx context.Context, resourceID, userID string, fn func(r *domain.Resource) error) (*domain.Resource, error) {
	var out domain.Resource
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		r, err := s.resourceRepo.FindResourceByIDForUpdate(ctx, resourceID)
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
		r.LastUpdatedAt = s.clock.Now()
		r.LastUpdatedBy = userID
		if err := s.resourceRepo.UpdateResourceAllocation(ctx, *r); err != nil {
			return err
		}
		out = *r
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to change resource state", slog.String("resource_id", resourceID))
		return nil, err
	}
	return &out, nil
}

func (s *resourceService) SetMaintenance(ctx context.Context, resourceID string, userID string) (*domain.Resource, error) {
	return s.allocate(ctx, resourceID, userID, func(r *domain.Resource) error { return r.SetMaintenance() })
}

func (s *resourceService) ReleaseMaintenance(ctx context.Context, resourceID string, userID string) (*domain.Resource, error) {
	return s.allocate(ctx, resourceID, userID, func(r *domain.Resource) error { return r.ReleaseMaintenance() })
}
