package repositories

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// ServiceReader defines read operations for the service catalog
type ServiceReader interface {
	FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]domain.Service, error)
}

// ServiceWriter defines write operations for the service catalog
type ServiceWriter interface {
	SaveService(ctx context.Context, service domain.Service) error
	UpdateService(ctx context.Context, service domain.Service) error

	// LockServiceForBooking serializes bookings of one service for the rest of the transaction.
	LockServiceForBooking(ctx context.Context, serviceID string) error
}

// ServiceRepositoryFacade combines all service-catalog repository interfaces
type ServiceRepositoryFacade interface {
	ServiceReader
	ServiceWriter
}
