package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// AccessRequestReader defines read operations for access requests
type AccessRequestReader interface {
	FindAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error)

	// FindAccessRequestByIDForUpdate retrieves a request and locks it for the rest of the transaction.
	FindAccessRequestByIDForUpdate(ctx context.Context, requestID string) (*domain.AccessRequest, error)

	ListAccessRequests(ctx context.Context, filter domain.AccessRequestFilter, limit int, nextToken *string) ([]domain.AccessRequest, *string, error)

	// FindSlotHolders returns requests for the service, other than excludeID, that hold their
	// slot and start before the given instant.
	FindSlotHolders(ctx context.Context, serviceID, excludeID string, startsBefore time.Time) ([]domain.AccessRequest, error)
}

// AccessRequestWriter defines write operations for access requests
type AccessRequestWriter interface {
	SaveAccessRequest(ctx context.Context, request domain.AccessRequest) error
	UpdateAccessRequest(ctx context.Context, request domain.AccessRequest) error
}

// AccessRequestRepositoryFacade combines all access-request repository interfaces
type AccessRequestRepositoryFacade interface {
	AccessRequestReader
	AccessRequestWriter
}
