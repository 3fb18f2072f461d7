package dto

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateResourceRequest defines the data needed to add a desk, bed or floor.
type CreateResourceRequest struct {
	Kind          domain.ResourceKind `json:"kind" binding:"required,oneof=desk bed floor"`
	Name          string              `json:"name" binding:"required"`
	Code          string              `json:"code" binding:"required"`
	ResourceType  string              `json:"resourceType"`
	FloorID       *string             `json:"floorID"`
	Building      string              `json:"building"`
	Address       string              `json:"address"`
	City          string              `json:"city"`
	RoomNumber    string              `json:"roomNumber"`
	Capacity      int                 `json:"capacity" binding:"min=0"`
	PricePerHour  decimal.Decimal     `json:"pricePerHour"`
	PricePerDay   decimal.Decimal     `json:"pricePerDay"`
	PricePerMonth decimal.Decimal     `json:"pricePerMonth"`
	IsExclusive   bool                `json:"isExclusive"`
}

// ListResourcesParams defines query parameters for searching inventory.
type ListResourcesParams struct {
	Kind         domain.ResourceKind  `form:"kind" binding:"omitempty,oneof=desk bed floor"`
	ResourceType string               `form:"type"`
	City         string               `form:"city"`
	State        domain.ResourceState `form:"state" binding:"omitempty,oneof=available reserved occupied maintenance rented"`
}

// ToFilter converts the query parameters to a domain filter.
func (p ListResourcesParams) ToFilter() domain.ResourceFilter {
	return domain.ResourceFilter{
		Kind:         p.Kind,
		ResourceType: p.ResourceType,
		City:         p.City,
		State:        p.State,
	}
}

// ResourceResponse defines the data returned for a resource.
type ResourceResponse struct {
	ResourceID    string               `json:"resourceID"`
	Kind          domain.ResourceKind  `json:"kind"`
	Name          string               `json:"name"`
	Code          string               `json:"code"`
	ResourceType  string               `json:"resourceType,omitempty"`
	FloorID       *string              `json:"floorID,omitempty"`
	City          string               `json:"city"`
	Capacity      int                  `json:"capacity"`
	PricePerHour  decimal.Decimal      `json:"pricePerHour"`
	PricePerDay   decimal.Decimal      `json:"pricePerDay"`
	PricePerMonth decimal.Decimal      `json:"pricePerMonth"`
	IsExclusive   bool                 `json:"isExclusive"`
	State         domain.ResourceState `json:"state"`
	MemberID      *string              `json:"memberID,omitempty"`
	MembershipID  *string              `json:"membershipID,omitempty"`
}

// ToResourceResponse converts a domain.Resource to ResourceResponse DTO.
func ToResourceResponse(r *domain.Resource) ResourceResponse {
	return ResourceResponse{
		ResourceID:    r.ResourceID,
		Kind:          r.Kind,
		Name:          r.Name,
		Code:          r.Code,
		ResourceType:  r.ResourceType,
		FloorID:       r.FloorID,
		City:          r.City,
		Capacity:      r.Capacity,
		PricePerHour:  r.PricePerHour,
		PricePerDay:   r.PricePerDay,
		PricePerMonth: r.PricePerMonth,
		IsExclusive:   r.IsExclusive,
		State:         r.State,
		MemberID:      r.MemberID,
		MembershipID:  r.MembershipID,
	}
}

// ToResourceResponses converts a slice of resources.
func ToResourceResponses(resources []domain.Resource) []ResourceResponse {
	responses := make([]ResourceResponse, len(resources))
	for i := range resources {
		responses[i] = ToResourceResponse(&resources[i])
	}
	return responses
}
