package dto

import (
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccessRequestRequest defines the data needed to book a service.
type CreateAccessRequestRequest struct {
	MembershipID   string               `json:"membershipID" binding:"required"`
	ServiceID      string               `json:"serviceID" binding:"required"`
	ScheduledStart time.Time            `json:"scheduledStart" binding:"required"`
	DurationHours  decimal.Decimal      `json:"durationHours"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=credits passes call_room_hours invoice free"`
	Description    string               `json:"description"`
	IsGuest        bool                 `json:"isGuest"`
	GuestName      string               `json:"guestName"`
	GuestEmail     string               `json:"guestEmail" binding:"omitempty,email"`
	GuestCount     int                  `json:"guestCount" binding:"omitempty,min=1"`
}

// UpdateAccessRequestRequest defines the fields that may change on a request.
type UpdateAccessRequestRequest struct {
	ServiceID      *string               `json:"serviceID"`
	ScheduledStart *time.Time            `json:"scheduledStart"`
	DurationHours  *decimal.Decimal      `json:"durationHours"`
	PaymentMethod  *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=credits passes call_room_hours invoice free"`
	Description    *string               `json:"description"`
	GuestCount     *int                  `json:"guestCount" binding:"omitempty,min=1"`
}

// ListAccessRequestsParams defines query parameters for listing requests.
type ListAccessRequestsParams struct {
	MembershipID string                    `form:"membershipID"`
	ServiceID    string                    `form:"serviceID"`
	State        domain.AccessRequestState `form:"state" binding:"omitempty,oneof=draft pending approved rejected cancelled"`
	PageParams
}

// AccessRequestResponse defines the data returned for an access request.
type AccessRequestResponse struct {
	AccessRequestID   string                    `json:"accessRequestID"`
	Reference         string                    `json:"reference"`
	MembershipID      string                    `json:"membershipID"`
	MemberID          string                    `json:"memberID"`
	ServiceID         string                    `json:"serviceID"`
	ScheduledStart    time.Time                 `json:"scheduledStart"`
	ScheduledEnd      time.Time                 `json:"scheduledEnd"`
	DurationHours     decimal.Decimal           `json:"durationHours"`
	State             domain.AccessRequestState `json:"state"`
	PaymentMethod     domain.PaymentMethod      `json:"paymentMethod"`
	Description       string                    `json:"description,omitempty"`
	Price             decimal.Decimal           `json:"price"`
	CreditsCost       int64                     `json:"creditsCost"`
	CreditsUsed       decimal.Decimal           `json:"creditsUsed"`
	PassesUsed        decimal.Decimal           `json:"passesUsed"`
	CallRoomHoursUsed decimal.Decimal           `json:"callRoomHoursUsed"`
	InvoiceID         *string                   `json:"invoiceID,omitempty"`
	IsGuest           bool                      `json:"isGuest"`
	GuestName         string                    `json:"guestName,omitempty"`
	GuestEmail        string                    `json:"guestEmail,omitempty"`
	GuestCount        int                       `json:"guestCount,omitempty"`
	ApprovedBy        *string                   `json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time                `json:"approvedAt,omitempty"`
	CreatedAt         time.Time                 `json:"createdAt"`
	CreatedBy         string                    `json:"createdBy"`
}

// ListAccessRequestsResponse is a page of access requests.
type ListAccessRequestsResponse struct {
	AccessRequests []AccessRequestResponse `json:"accessRequests"`
	NextToken      *string                 `json:"nextToken,omitempty"`
}

// ToAccessRequestResponse converts a domain.AccessRequest to AccessRequestResponse DTO.
func ToAccessRequestResponse(r *domain.AccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		AccessRequestID:   r.AccessRequestID,
		Reference:         r.Reference,
		MembershipID:      r.MembershipID,
		MemberID:          r.MemberID,
		ServiceID:         r.ServiceID,
		ScheduledStart:    r.ScheduledStart,
		ScheduledEnd:      r.ScheduledEnd(),
		DurationHours:     r.DurationHours,
		State:             r.State,
		PaymentMethod:     r.PaymentMethod,
		Description:       r.Description,
		Price:             r.Price,
		CreditsCost:       r.CreditsCost,
		CreditsUsed:       r.CreditsUsed,
		PassesUsed:        r.PassesUsed,
		CallRoomHoursUsed: r.CallRoomHoursUsed,
		InvoiceID:         r.InvoiceID,
		IsGuest:           r.IsGuest,
		GuestName:         r.GuestName,
		GuestEmail:        r.GuestEmail,
		GuestCount:        r.GuestCount,
		ApprovedBy:        r.ApprovedBy,
		ApprovedAt:        r.ApprovedAt,
		CreatedAt:         r.CreatedAt,
		CreatedBy:         r.CreatedBy,
	}
}

// ToAccessRequestResponses converts a slice of access requests.
func ToAccessRequestResponses(requests []domain.AccessRequest) []AccessRequestResponse {
	responses := make([]AccessRequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToAccessRequestResponse(&requests[i])
	}
	return responses
}
