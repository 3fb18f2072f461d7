package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DepositState is the lifecycle of a security deposit.
type DepositState string

const (
	DepositPending  DepositState = "pending"
	DepositPaid     DepositState = "paid"
	DepositReturned DepositState = "returned"
	DepositWithheld DepositState = "withheld"
)

// SecurityDeposit is held against a membership whose plan requires one.
type SecurityDeposit struct {
	DepositID      string          `json:"depositID"`
	Reference      string          `json:"reference"`
	MembershipID   string          `json:"membershipID"`
	MemberID       string          `json:"memberID"`
	Amount         decimal.Decimal `json:"amount"`
	State          DepositState    `json:"state"`
	DatePaid       *time.Time      `json:"datePaid,omitempty"`
	DateReturned   *time.Time      `json:"dateReturned,omitempty"`
	WithholdReason string          `json:"withholdReason,omitempty"`
	AuditFields
}

// MarkPaid records payment of a pending deposit.
func (d *SecurityDeposit) MarkPaid(on time.Time) error {
	if d.State != DepositPending {
		return fmt.Errorf("%w: deposit %s is %s", apperrors.ErrInvalidTransition, d.Reference, d.State)
	}
	d.State = DepositPaid
	day := DateOf(on)
	d.DatePaid = &day
	return nil
}

// Return gives a paid deposit back to the member.
func (d *SecurityDeposit) Return(on time.Time) error {
	if d.State != DepositPaid {
		return fmt.Errorf("%w: deposit %s is %s", apperrors.ErrInvalidTransition, d.Reference, d.State)
	}
	d.State = DepositReturned
	day := DateOf(on)
	d.DateReturned = &day
	return nil
}

// Withhold keeps a paid deposit, recording why.
func (d *SecurityDeposit) Withhold(reason string) error {
	if d.State != DepositPaid {
		return fmt.Errorf("%w: deposit %s is %s", apperrors.ErrInvalidTransition, d.Reference, d.State)
	}
	if reason == "" {
		return fmt.Errorf("%w: a withhold reason is required", apperrors.ErrValidation)
	}
	d.State = DepositWithheld
	d.WithholdReason = reason
	return nil
}
