package dto

import (
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// IntakeRequest is the public coworking/coliving enquiry form.
type IntakeRequest struct {
	ContactName           string           `json:"contactName" binding:"required"`
	Email                 string           `json:"email" binding:"required,email"`
	Phone                 string           `json:"phone"`
	SpaceType             domain.SpaceType `json:"spaceType" binding:"required,oneof=coworking coliving"`
	PreferredResourceType string           `json:"preferredResourceType"`
	City                  string           `json:"city"`
	RequestedStart        *time.Time       `json:"requestedStart"`
	Requirements          string           `json:"requirements"`
}

// CreateMembershipFromLeadRequest picks the plan (and optionally the unit) for a lead.
type CreateMembershipFromLeadRequest struct {
	PlanID     string     `json:"planID" binding:"required"`
	MemberID   *string    `json:"memberID"`
	ResourceID *string    `json:"resourceID"`
	DateStart  *time.Time `json:"dateStart"`
}

// LeadResponse defines the data returned for a lead.
type LeadResponse struct {
	LeadID                string           `json:"leadID"`
	ContactName           string           `json:"contactName"`
	Email                 string           `json:"email"`
	Phone                 string           `json:"phone,omitempty"`
	SpaceType             domain.SpaceType `json:"spaceType"`
	PreferredResourceType string           `json:"preferredResourceType,omitempty"`
	City                  string           `json:"city,omitempty"`
	RequestedStart        *time.Time       `json:"requestedStart,omitempty"`
	Requirements          string           `json:"requirements,omitempty"`
	IsCoworkLead          bool             `json:"isCoworkLead"`
	MemberID              *string          `json:"memberID,omitempty"`
	MembershipID          *string          `json:"membershipID,omitempty"`
	CreatedAt             time.Time        `json:"createdAt"`
}

// ListLeadsResponse is a page of leads.
type ListLeadsResponse struct {
	Leads     []LeadResponse `json:"leads"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToLeadResponse converts a domain.Lead to LeadResponse DTO.
func ToLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		LeadID:                l.LeadID,
		ContactName:           l.ContactName,
		Email:                 l.Email,
		Phone:                 l.Phone,
		SpaceType:             l.SpaceType,
		PreferredResourceType: l.PreferredResourceType,
		City:                  l.City,
		RequestedStart:        l.RequestedStart,
		Requirements:          l.Requirements,
		IsCoworkLead:          l.IsCoworkLead,
		MemberID:              l.MemberID,
		MembershipID:          l.MembershipID,
		CreatedAt:             l.CreatedAt,
	}
}
