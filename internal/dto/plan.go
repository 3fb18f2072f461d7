package dto

import (
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest defines the data needed to create a membership plan.
type CreatePlanRequest struct {
	Name                  string              `json:"name" binding:"required"`
	Description           string              `json:"description"`
	SpaceType             domain.SpaceType    `json:"spaceType" binding:"required,oneof=coworking coliving"`
	DurationUnit          domain.DurationUnit `json:"durationUnit" binding:"required,oneof=daily weekly monthly annual"`
	DurationValue         int                 `json:"durationValue" binding:"required,min=1"`
	Price                 decimal.Decimal     `json:"price"`
	CurrencyCode          string              `json:"currencyCode" binding:"required,len=3"`
	CreditsIncluded       int64               `json:"creditsIncluded" binding:"min=0"`
	PassesIncluded        int64               `json:"passesIncluded" binding:"min=0"`
	CallRoomHoursIncluded decimal.Decimal     `json:"callRoomHoursIncluded"`
	IsRecurring           bool                `json:"isRecurring"`
	AutoRenew             bool                `json:"autoRenew"`
	RequiresDeposit       bool                `json:"requiresDeposit"`
	DepositAmount         decimal.Decimal     `json:"depositAmount"`
	AllowsExclusiveFloor  bool                `json:"allowsExclusiveFloor"`
	PolicyIDs             []string            `json:"policyIDs"`
	ProductID             *string             `json:"productID"`
}

// UpdatePlanRequest defines the fields that may change on a plan. Plans with confirmed or
// active memberships reject changes to the entitlements they grant.
type UpdatePlanRequest struct {
	Name                  *string          `json:"name"`
	Description           *string          `json:"description"`
	Price                 *decimal.Decimal `json:"price"`
	CurrencyCode          *string          `json:"currencyCode" binding:"omitempty,len=3"`
	ProductID             *string          `json:"productID"`
	CreditsIncluded       *int64           `json:"creditsIncluded" binding:"omitempty,min=0"`
	PassesIncluded        *int64           `json:"passesIncluded" binding:"omitempty,min=0"`
	CallRoomHoursIncluded *decimal.Decimal `json:"callRoomHoursIncluded"`
	AutoRenew             *bool            `json:"autoRenew"`
	IsRecurring           *bool            `json:"isRecurring"`
	IsActive              *bool            `json:"isActive"`
}

// ListPlansParams defines query parameters for listing plans.
type ListPlansParams struct {
	SpaceType  domain.SpaceType `form:"spaceType" binding:"omitempty,oneof=coworking coliving"`
	ActiveOnly bool             `form:"activeOnly"`
}

// PlanResponse defines the data returned for a plan.
type PlanResponse struct {
	PlanID                string              `json:"planID"`
	Name                  string              `json:"name"`
	Description           string              `json:"description"`
	SpaceType             domain.SpaceType    `json:"spaceType"`
	DurationUnit          domain.DurationUnit `json:"durationUnit"`
	DurationValue         int                 `json:"durationValue"`
	DurationDays          int                 `json:"durationDays"`
	Price                 decimal.Decimal     `json:"price"`
	CurrencyCode          string              `json:"currencyCode"`
	CreditsIncluded       int64               `json:"creditsIncluded"`
	PassesIncluded        int64               `json:"passesIncluded"`
	CallRoomHoursIncluded decimal.Decimal     `json:"callRoomHoursIncluded"`
	IsRecurring           bool                `json:"isRecurring"`
	AutoRenew             bool                `json:"autoRenew"`
	RequiresDeposit       bool                `json:"requiresDeposit"`
	DepositAmount         decimal.Decimal     `json:"depositAmount"`
	AllowsExclusiveFloor  bool                `json:"allowsExclusiveFloor"`
	PolicyIDs             []string            `json:"policyIDs"`
	ProductID             *string             `json:"productID,omitempty"`
	IsActive              bool                `json:"isActive"`
	CreatedAt             time.Time           `json:"createdAt"`
	LastUpdatedAt         time.Time           `json:"lastUpdatedAt"`
}

// ToPlanResponse converts a domain.MembershipPlan to PlanResponse DTO.
func ToPlanResponse(p *domain.MembershipPlan) PlanResponse {
	return PlanResponse{
		PlanID:                p.PlanID,
		Name:                  p.Name,
		Description:           p.Description,
		SpaceType:             p.SpaceType,
		DurationUnit:          p.DurationUnit,
		DurationValue:         p.DurationValue,
		DurationDays:          p.DurationDays(),
		Price:                 p.Price,
		CurrencyCode:          p.CurrencyCode,
		CreditsIncluded:       p.CreditsIncluded,
		PassesIncluded:        p.PassesIncluded,
		CallRoomHoursIncluded: p.CallRoomHoursIncluded,
		IsRecurring:           p.IsRecurring,
		AutoRenew:             p.AutoRenew,
		RequiresDeposit:       p.RequiresDeposit,
		DepositAmount:         p.DepositAmount,
		AllowsExclusiveFloor:  p.AllowsExclusiveFloor,
		PolicyIDs:             p.PolicyIDs,
		ProductID:             p.ProductID,
		IsActive:              p.IsActive,
		CreatedAt:             p.CreatedAt,
		LastUpdatedAt:         p.LastUpdatedAt,
	}
}

// ToPlanResponses converts a slice of plans.
func ToPlanResponses(plans []domain.MembershipPlan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = ToPlanResponse(&plans[i])
	}
	return responses
}
