package mapping

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/models"
)

// ToModelMembership converts a domain Membership to a model Membership. Invoice links are
// persisted separately.
func ToModelMembership(d domain.Membership) models.Membership {
	return models.Membership{
		MembershipID:       d.MembershipID,
		Reference:          d.Reference,
		MemberID:           d.MemberID,
		PlanID:             d.PlanID,
		ResourceID:         d.ResourceID,
		DateStart:          d.DateStart,
		DateEnd:            d.DateEnd,
		State:              string(d.State),
		PoliciesAccepted:   d.PoliciesAccepted,
		BenefitPeriodStart: d.BenefitPeriodStart,
		LeadID:             d.LeadID,
		RenewedFromID:      d.RenewedFromID,
		RatingID:           d.RatingID,
		Notes:              d.Notes,
		PortalTokenHash:    d.PortalTokenHash,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMembership converts a model Membership and its linked invoice ids to a domain Membership
func ToDomainMembership(m models.Membership, invoiceIDs []string) domain.Membership {
	if invoiceIDs == nil {
		invoiceIDs = []string{}
	}
	return domain.Membership{
		MembershipID:       m.MembershipID,
		Reference:          m.Reference,
		MemberID:           m.MemberID,
		PlanID:             m.PlanID,
		ResourceID:         m.ResourceID,
		DateStart:          domain.DateOf(m.DateStart),
		DateEnd:            domain.DateOf(m.DateEnd),
		State:              domain.MembershipState(m.State),
		PoliciesAccepted:   m.PoliciesAccepted,
		BenefitPeriodStart: m.BenefitPeriodStart,
		LeadID:             m.LeadID,
		RenewedFromID:      m.RenewedFromID,
		RatingID:           m.RatingID,
		InvoiceIDs:         invoiceIDs,
		Notes:              m.Notes,
		PortalTokenHash:    m.PortalTokenHash,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccessRequest converts a domain AccessRequest to a model AccessRequest
func ToModelAccessRequest(d domain.AccessRequest) models.AccessRequest {
	return models.AccessRequest{
		AccessRequestID:   d.AccessRequestID,
		Reference:         d.Reference,
		MembershipID:      d.MembershipID,
		MemberID:          d.MemberID,
		ServiceID:         d.ServiceID,
		ScheduledStart:    d.ScheduledStart,
		DurationHours:     d.DurationHours,
		State:             string(d.State),
		PaymentMethod:     string(d.PaymentMethod),
		Description:       d.Description,
		Price:             d.Price,
		CreditsCost:       d.CreditsCost,
		CreditsUsed:       d.CreditsUsed,
		PassesUsed:        d.PassesUsed,
		CallRoomHoursUsed: d.CallRoomHoursUsed,
		InvoiceID:         d.InvoiceID,
		IsGuest:           d.IsGuest,
		GuestName:         d.GuestName,
		GuestEmail:        d.GuestEmail,
		GuestCount:        d.GuestCount,
		ApprovedBy:        d.ApprovedBy,
		ApprovedAt:        d.ApprovedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccessRequest converts a model AccessRequest to a domain AccessRequest
func ToDomainAccessRequest(m models.AccessRequest) domain.AccessRequest {
	return domain.AccessRequest{
		AccessRequestID:   m.AccessRequestID,
		Reference:         m.Reference,
		MembershipID:      m.MembershipID,
		MemberID:          m.MemberID,
		ServiceID:         m.ServiceID,
		ScheduledStart:    m.ScheduledStart,
		DurationHours:     m.DurationHours,
		State:             domain.AccessRequestState(m.State),
		PaymentMethod:     domain.PaymentMethod(m.PaymentMethod),
		Description:       m.Description,
		Price:             m.Price,
		CreditsCost:       m.CreditsCost,
		CreditsUsed:       m.CreditsUsed,
		PassesUsed:        m.PassesUsed,
		CallRoomHoursUsed: m.CallRoomHoursUsed,
		InvoiceID:         m.InvoiceID,
		IsGuest:           m.IsGuest,
		GuestName:         m.GuestName,
		GuestEmail:        m.GuestEmail,
		GuestCount:        m.GuestCount,
		ApprovedBy:        m.ApprovedBy,
		ApprovedAt:        m.ApprovedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
