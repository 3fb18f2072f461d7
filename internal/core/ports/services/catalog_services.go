package services

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
)

// CatalogSvcFacade manages the bookable service catalog
type CatalogSvcFacade interface {
	CreateService(ctx context.Context, req dto.CreateServiceRequest, userID string) (*domain.Service, error)
	GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]domain.Service, error)
	UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, userID string) (*domain.Service, error)
}
