package repositories

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// ResourceReader defines read operations for desks, beds and floors
type ResourceReader interface {
	FindResourceByID(ctx context.Context, resourceID string) (*domain.Resource, error)

	// FindResourceByIDForUpdate retrieves a resource and locks it for the rest of the transaction.
	FindResourceByIDForUpdate(ctx context.Context, resourceID string) (*domain.Resource, error)

	// FindFirstAvailable locks and returns the first available resource of a kind, or ErrNotFound.
	FindFirstAvailable(ctx context.Context, kind domain.ResourceKind) (*domain.Resource, error)

	ListResources(ctx context.Context, filter domain.ResourceFilter) ([]domain.Resource, error)
}

// ResourceWriter defines write operations for desks, beds and floors
type ResourceWriter interface {
	SaveResource(ctx context.Context, resource domain.Resource) error

	// UpdateResourceAllocation persists state, member/membership binding and rental dates.
	UpdateResourceAllocation(ctx context.Context, resource domain.Resource) error
}

// ResourceRepositoryFacade combines all resource-related repository interfaces
type ResourceRepositoryFacade interface {
	ResourceReader
	ResourceWriter
}
