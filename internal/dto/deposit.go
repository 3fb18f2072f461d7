package dto

import (
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WithholdDepositRequest carries the reason a deposit is kept.
type WithholdDepositRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DepositResponse defines the data returned for a security deposit.
type DepositResponse struct {
	DepositID      string              `json:"depositID"`
	Reference      string              `json:"reference"`
	MembershipID   string              `json:"membershipID"`
	MemberID       string              `json:"memberID"`
	Amount         decimal.Decimal     `json:"amount"`
	State          domain.DepositState `json:"state"`
	DatePaid       *time.Time          `json:"datePaid,omitempty"`
	DateReturned   *time.Time          `json:"dateReturned,omitempty"`
	WithholdReason string              `json:"withholdReason,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// ToDepositResponse converts a domain.SecurityDeposit to DepositResponse DTO.
func ToDepositResponse(d *domain.SecurityDeposit) DepositResponse {
	return DepositResponse{
		DepositID:      d.DepositID,
		Reference:      d.Reference,
		MembershipID:   d.MembershipID,
		MemberID:       d.MemberID,
		Amount:         d.Amount,
		State:          d.State,
		DatePaid:       d.DatePaid,
		DateReturned:   d.DateReturned,
		WithholdReason: d.WithholdReason,
		CreatedAt:      d.CreatedAt,
	}
}
