package dto

import (
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMembershipRequest defines the data needed to open a draft membership.
type CreateMembershipRequest struct {
	MemberID   string    `json:"memberID" binding:"required"`
	PlanID     string    `json:"planID" binding:"required"`
	ResourceID *string   `json:"resourceID"`
	DateStart  time.Time `json:"dateStart" binding:"required"`
	Notes      string    `json:"notes"`
	LeadID     *string   `json:"-"`
}

// UpdateMembershipRequest defines the draft fields that may change. Changing plan or start
// recomputes the end date.
type UpdateMembershipRequest struct {
	PlanID     *string    `json:"planID"`
	ResourceID *string    `json:"resourceID"`
	DateStart  *time.Time `json:"dateStart"`
	Notes      *string    `json:"notes"`
}

// ListMembershipsParams defines query parameters for listing memberships.
type ListMembershipsParams struct {
	MemberID string                 `form:"memberID"`
	PlanID   string                 `form:"planID"`
	State    domain.MembershipState `form:"state" binding:"omitempty,oneof=draft confirmed active expired cancelled"`
	PageParams
}

// MembershipResponse defines the data returned for a membership.
type MembershipResponse struct {
	MembershipID       string                     `json:"membershipID"`
	Reference          string                     `json:"reference"`
	MemberID           string                     `json:"memberID"`
	PlanID             string                     `json:"planID"`
	ResourceID         *string                    `json:"resourceID,omitempty"`
	DateStart          time.Time                  `json:"dateStart"`
	DateEnd            time.Time                  `json:"dateEnd"`
	State              domain.MembershipState     `json:"state"`
	PoliciesAccepted   bool                       `json:"policiesAccepted"`
	BenefitPeriodStart *time.Time                 `json:"benefitPeriodStart,omitempty"`
	RenewedFromID      *string                    `json:"renewedFromID,omitempty"`
	LeadID             *string                    `json:"leadID,omitempty"`
	InvoiceIDs         []string                   `json:"invoiceIDs"`
	Notes              string                     `json:"notes,omitempty"`
	Balances           *domain.MembershipBalances `json:"balances,omitempty"`
	Amounts            *domain.MembershipAmounts  `json:"amounts,omitempty"`
	CreatedAt          time.Time                  `json:"createdAt"`
	CreatedBy          string                     `json:"createdBy"`
	LastUpdatedAt      time.Time                  `json:"lastUpdatedAt"`
	LastUpdatedBy      string                     `json:"lastUpdatedBy"`
}

// ListMembershipsResponse is a page of memberships.
type ListMembershipsResponse struct {
	Memberships []MembershipResponse `json:"memberships"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToMembershipResponse converts a domain.Membership to MembershipResponse DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	invoiceIDs := m.InvoiceIDs
	if invoiceIDs == nil {
		invoiceIDs = []string{}
	}
	return MembershipResponse{
		MembershipID:       m.MembershipID,
		Reference:          m.Reference,
		MemberID:           m.MemberID,
		PlanID:             m.PlanID,
		ResourceID:         m.ResourceID,
		DateStart:          m.DateStart,
		DateEnd:            m.DateEnd,
		State:              m.State,
		PoliciesAccepted:   m.PoliciesAccepted,
		BenefitPeriodStart: m.BenefitPeriodStart,
		RenewedFromID:      m.RenewedFromID,
		LeadID:             m.LeadID,
		InvoiceIDs:         invoiceIDs,
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
		CreatedBy:          m.CreatedBy,
		LastUpdatedAt:      m.LastUpdatedAt,
		LastUpdatedBy:      m.LastUpdatedBy,
	}
}

// ToMembershipSummaryResponse includes balances and billed amounts.
func ToMembershipSummaryResponse(s *domain.MembershipSummary) MembershipResponse {
	resp := ToMembershipResponse(&s.Membership)
	resp.Balances = &s.Balances
	resp.Amounts = &s.Amounts
	return resp
}

// ToMembershipResponses converts a slice of memberships.
func ToMembershipResponses(memberships []domain.Membership) []MembershipResponse {
	responses := make([]MembershipResponse, len(memberships))
	for i := range memberships {
		responses[i] = ToMembershipResponse(&memberships[i])
	}
	return responses
}

// PortalTokenResponse returns a freshly issued portal token. It is shown once.
type PortalTokenResponse struct {
	MembershipID string `json:"membershipID"`
	AccessToken  string `json:"accessToken"`
}

// PortalMembershipResponse is what a member sees through the portal.
type PortalMembershipResponse struct {
	Membership MembershipResponse    `json:"membership"`
	Ledger     []LedgerEntryResponse `json:"ledger"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string              `json:"invoiceID"`
	PartnerID      string              `json:"partnerID"`
	Origin         string              `json:"origin"`
	State          domain.InvoiceState `json:"state"`
	AmountTotal    decimal.Decimal     `json:"amountTotal"`
	AmountResidual decimal.Decimal     `json:"amountResidual"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		PartnerID:      inv.PartnerID,
		Origin:         inv.Origin,
		State:          inv.State,
		AmountTotal:    inv.AmountTotal,
		AmountResidual: inv.AmountResidual,
	}
}

// NoteResponse defines the data returned for a record note.
type NoteResponse struct {
	NoteID    string    `json:"noteID"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToNoteResponses converts a slice of notes.
func ToNoteResponses(notes []domain.RecordNote) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, n := range notes {
		responses[i] = NoteResponse{NoteID: n.NoteID, Body: n.Body, CreatedAt: n.CreatedAt, CreatedBy: n.CreatedBy}
	}
	return responses
}

// RunSweepRequest lets an operator run a sweep as of a given day.
type RunSweepRequest struct {
	AsOf *time.Time `json:"asOf"`
}
