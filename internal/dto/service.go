package dto

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest defines the data needed to add a bookable service.
type CreateServiceRequest struct {
	Name               string                  `json:"name" binding:"required"`
	Code               string                  `json:"code" binding:"required"`
	Description        string                  `json:"description"`
	ServiceType        domain.ServiceType      `json:"serviceType" binding:"required,oneof=meeting_room event_hall shared_space cafeteria locker parking internet printing phone_booth other"`
	SpaceType          domain.ServiceSpaceType `json:"spaceType" binding:"required,oneof=coworking coliving both"`
	IsPaid             bool                    `json:"isPaid"`
	Price              decimal.Decimal         `json:"price"`
	CreditsCost        decimal.Decimal         `json:"creditsCost"`
	AllowCreditPayment *bool                   `json:"allowCreditPayment"`
	RequiresApproval   *bool                   `json:"requiresApproval"`
	ProductID          *string                 `json:"productID"`
}

// UpdateServiceRequest defines the fields that may change on a service.
type UpdateServiceRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	IsPaid             *bool            `json:"isPaid"`
	Price              *decimal.Decimal `json:"price"`
	CreditsCost        *decimal.Decimal `json:"creditsCost"`
	AllowCreditPayment *bool            `json:"allowCreditPayment"`
	RequiresApproval   *bool            `json:"requiresApproval"`
	ProductID          *string          `json:"productID"`
	IsActive           *bool            `json:"isActive"`
}

// ServiceResponse defines the data returned for a service.
type ServiceResponse struct {
	ServiceID          string                  `json:"serviceID"`
	Name               string                  `json:"name"`
	Code               string                  `json:"code"`
	Description        string                  `json:"description"`
	ServiceType        domain.ServiceType      `json:"serviceType"`
	SpaceType          domain.ServiceSpaceType `json:"spaceType"`
	IsPaid             bool                    `json:"isPaid"`
	Price              decimal.Decimal         `json:"price"`
	CreditsCost        decimal.Decimal         `json:"creditsCost"`
	AllowCreditPayment bool                    `json:"allowCreditPayment"`
	RequiresApproval   bool                    `json:"requiresApproval"`
	PassEligible       bool                    `json:"passEligible"`
	CallRoomEligible   bool                    `json:"callRoomEligible"`
	ProductID          *string                 `json:"productID,omitempty"`
	IsActive           bool                    `json:"isActive"`
}

// ToServiceResponse converts a domain.Service to ServiceResponse DTO.
func ToServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ServiceID:          s.ServiceID,
		Name:               s.Name,
		Code:               s.Code,
		Description:        s.Description,
		ServiceType:        s.ServiceType,
		SpaceType:          s.SpaceType,
		IsPaid:             s.IsPaid,
		Price:              s.Price,
		CreditsCost:        s.CreditsCost,
		AllowCreditPayment: s.AllowCreditPayment,
		RequiresApproval:   s.RequiresApproval,
		PassEligible:       s.IsPassEligible(),
		CallRoomEligible:   s.IsCallRoomEligible(),
		ProductID:          s.ProductID,
		IsActive:           s.IsActive,
	}
}

// ToServiceResponses converts a slice of services.
func ToServiceResponses(services []domain.Service) []ServiceResponse {
	responses := make([]ServiceResponse, len(services))
	for i := range services {
		responses[i] = ToServiceResponse(&services[i])
	}
	return responses
}
