package services

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
)

// ResourceSvcFacade manages desks, beds and floors outside the membership lifecycle
type ResourceSvcFacade interface {
	CreateResource(ctx context.Context, req dto.CreateResourceRequest, userID string) (*domain.Resource, error)
	GetResourceByID(ctx context.Context, resourceID string) (*domain.Resource, error)
	ListResources(ctx context.Context, params dto.ListResourcesParams) ([]domain.Resource, error)

	// SetMaintenance takes an unbound, available resource out of the pool.
	SetMaintenance(ctx context.Context, resourceID string, userID string) (*domain.Resource, error)

	// ReleaseMaintenance returns a resource under maintenance to the pool.
	ReleaseMaintenance(ctx context.Context, resourceID string, userID string) (*domain.Resource, error)
}
