package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/google/uuid"
)

type catalogService struct {
	BaseService
	serviceRepo portsrepo.ServiceRepositoryFacade
	clock       gateways.Clock
}

// NewCatalogService creates a new service catalog service.
func NewCatalogService(serviceRepo portsrepo.ServiceRepositoryFacade, clock gateways.Clock) portssvc.CatalogSvcFacade {
	return &catalogService{serviceRepo: serviceRepo, clock: clock}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func validateService(svc domain.Service) error {
	switch {
	case strings.TrimSpace(svc.Name) == "" || strings.TrimSpace(svc.Code) == "":
		return fmt.Errorf("%w: service name and code are required", apperrors.ErrValidation)
	case !svc.ServiceType.Valid():
		return fmt.Errorf("%w: unknown service type %q", apperrors.ErrValidation, svc.ServiceType)
	case !svc.SpaceType.Valid():
		return fmt.Errorf("%w: unknown space type %q", apperrors.ErrValidation, svc.SpaceType)
	case svc.Price.IsNegative() || svc.CreditsCost.IsNegative():
		return fmt.Errorf("%w: price and credit cost cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

func (s *catalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest, userID string) (*domain.Service, error) {
	now := s.clock.Now()
	svc := domain.Service{
		ServiceID:          uuid.NewString(),
		Name:               req.Name,
		Code:               req.Code,
		Description:        req.Description,
		ServiceType:        req.ServiceType,
		SpaceType:          req.SpaceType,
		IsPaid:             req.IsPaid,
		Price:              req.Price,
		CreditsCost:        req.CreditsCost,
		AllowCreditPayment: boolOr(req.AllowCreditPayment, true),
		RequiresApproval:   boolOr(req.RequiresApproval, true),
		ProductID:          req.ProductID,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.SaveService(ctx, svc); err != nil {
		s.LogError(ctx, err, "Failed to save service", slog.String("code", req.Code))
		return nil, err
	}
	s.LogInfo(ctx, "Service created",
		slog.String("service_id", svc.ServiceID),
		slog.String("code", svc.Code))
	return &svc, nil
}

func (s *catalogService) GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	return s.serviceRepo.FindServiceByID(ctx, serviceID)
}

func (s *catalogService) ListServices(ctx context.Context, activeOnly bool) ([]domain.Service, error) {
	return s.serviceRepo.ListServices(ctx, activeOnly)
}

func (s *catalogService) UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, userID string) (*domain.Service, error) {
	svc, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.IsPaid != nil {
		svc.IsPaid = *req.IsPaid
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.CreditsCost != nil {
		svc.CreditsCost = *req.CreditsCost
	}
	svc.AllowCreditPayment = boolOr(req.AllowCreditPayment, svc.AllowCreditPayment)
	svc.RequiresApproval = boolOr(req.RequiresApproval, svc.RequiresApproval)
	if req.ProductID != nil {
		productID := *req.ProductID
		svc.ProductID = &productID
	}
	svc.IsActive = boolOr(req.IsActive, svc.IsActive)
	if err := validateService(*svc); err != nil {
		return nil, err
	}

	svc.LastUpdatedAt = s.clock.Now()
	svc.LastUpdatedBy = userID
	if err := s.serviceRepo.UpdateService(ctx, *svc); err != nil {
		s.LogError(ctx, err, "Failed to update service", slog.String("service_id", serviceID))
		return nil, err
	}
	return svc, nil
}
