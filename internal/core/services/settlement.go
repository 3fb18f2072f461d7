package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// settlementInput is what every payment handler sees. request is mutated in place: settle
// stamps the amounts that reverse later undoes.
type settlementInput struct {
	request    *domain.AccessRequest
	membership domain.Membership
	service    domain.Service
	userID     string
	now        time.Time
}

// settlement is implemented exactly once per domain.PaymentMethod.
type settlement interface {
	// check verifies at submit time that the chosen method can pay for the request.
	check(ctx context.Context, in settlementInput) error
	// settle applies the payment on approval.
	settle(ctx context.Context, in settlementInput) error
	// reverse undoes settle using the amounts stamped on the request.
	reverse(ctx context.Context, in settlementInput) error
}

type settlements map[domain.PaymentMethod]settlement

func newSettlements(ledger portssvc.LedgerSvcFacade, billing gateways.BillingGateway, notes portsrepo.NoteRepositoryFacade) settlements {
	return settlements{
		domain.PaymentCredits:       creditSettlement{ledger: ledger},
		domain.PaymentPasses:        entitlementSettlement{ledger: ledger, notes: notes, entitlement: domain.EntitlementPasses},
		domain.PaymentCallRoomHours: entitlementSettlement{ledger: ledger, notes: notes, entitlement: domain.EntitlementCallRoomHours},
		domain.PaymentInvoice:       invoiceSettlement{billing: billing},
		domain.PaymentFree:          freeSettlement{},
	}
}

func (s settlements) forMethod(method domain.PaymentMethod) (settlement, error) {
	handler, ok := s[method]
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	return handler, nil
}

func usageEntry(in settlementInput, e domain.Entitlement, kind domain.LedgerEntryKind, amount decimal.Decimal, description string) domain.LedgerEntry {
	membershipID := in.membership.MembershipID
	requestID := in.request.AccessRequestID
	return domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		MemberID:        in.membership.MemberID,
		MembershipID:    &membershipID,
		AccessRequestID: &requestID,
		Entitlement:     e,
		Kind:            kind,
		Amount:          amount,
		Description:     description,
		OccurredAt:      in.now,
		CreatedBy:       in.userID,
	}
}

type creditSettlement struct {
	ledger portssvc.LedgerSvcFacade
}

func (c creditSettlement) check(ctx context.Context, in settlementInput) error {
	if !in.service.AllowCreditPayment {
		return fmt.Errorf("%w: service %s does not accept credits", apperrors.ErrValidation, in.service.Code)
	}
	balance, err := c.ledger.Balance(ctx, in.membership.MemberID, domain.EntitlementCredits)
	if err != nil {
		return err
	}
	cost := decimal.NewFromInt(in.request.CreditsCost)
	if balance.LessThan(cost) {
		return fmt.Errorf("%w: %s credits available, %s required", apperrors.ErrInsufficientEntitlement, balance, cost)
	}
	return nil
}

func (c creditSettlement) settle(ctx context.Context, in settlementInput) error {
	cost := decimal.NewFromInt(in.request.CreditsCost)
	in.request.CreditsUsed = cost
	if !cost.IsPositive() {
		return nil
	}
	_, err := c.ledger.Append(ctx, usageEntry(in, domain.EntitlementCredits, domain.LedgerUsed, cost.Neg(),
		fmt.Sprintf("Credits used by %s", in.request.Reference)))
	return err
}

func (c creditSettlement) reverse(ctx context.Context, in settlementInput) error {
	if !in.request.CreditsUsed.IsPositive() {
		return nil
	}
	_, err := c.ledger.Append(ctx, usageEntry(in, domain.EntitlementCredits, domain.LedgerRefund, in.request.CreditsUsed,
		fmt.Sprintf("Credits refunded for %s", in.request.Reference)))
	return err
}

// entitlementSettlement pays with a per-membership, per-period entitlement: day passes or
// call-room hours.
type entitlementSettlement struct {
	ledger      portssvc.LedgerSvcFacade
	notes       portsrepo.NoteRepositoryFacade
	entitlement domain.Entitlement
}

func (e entitlementSettlement) cost(req domain.AccessRequest) decimal.Decimal {
	if e.entitlement == domain.EntitlementPasses {
		return decimal.NewFromInt(req.PassCost())
	}
	return req.DurationHours
}

func (e entitlementSettlement) stamped(req domain.AccessRequest) decimal.Decimal {
	if e.entitlement == domain.EntitlementPasses {
		return req.PassesUsed
	}
	return req.CallRoomHoursUsed
}

func (e entitlementSettlement) stamp(req *domain.AccessRequest, amount decimal.Decimal) {
	if e.entitlement == domain.EntitlementPasses {
		req.PassesUsed = amount
		return
	}
	req.CallRoomHoursUsed = amount
}

func (e entitlementSettlement) check(ctx context.Context, in settlementInput) error {
	switch e.entitlement {
	case domain.EntitlementPasses:
		// guests may use passes on any service
		if !in.service.IsPassEligible() && !in.request.IsGuest {
			return fmt.Errorf("%w: service %s cannot be paid with passes", apperrors.ErrValidation, in.service.Code)
		}
	case domain.EntitlementCallRoomHours:
		if !in.service.IsCallRoomEligible() {
			return fmt.Errorf("%w: service %s cannot be paid with call-room hours", apperrors.ErrValidation, in.service.Code)
		}
	}
	remaining, err := e.ledger.BalanceOf(ctx, domain.LedgerFilter{
		MembershipID:  in.membership.MembershipID,
		Entitlement:   e.entitlement,
		IgnoreExpired: true,
		AsOf:          in.now,
	})
	if err != nil {
		return err
	}
	cost := e.cost(*in.request)
	if remaining.LessThan(cost) {
		return fmt.Errorf("%w: %s %s available, %s required", apperrors.ErrInsufficientEntitlement, remaining, e.entitlement, cost)
	}
	return nil
}

func (e entitlementSettlement) settle(ctx context.Context, in settlementInput) error {
	cost := e.cost(*in.request)
	e.stamp(in.request, cost)
	if _, err := e.ledger.Append(ctx, usageEntry(in, e.entitlement, domain.LedgerUsed, cost.Neg(),
		fmt.Sprintf("%s %s used by %s", cost, e.entitlement, in.request.Reference))); err != nil {
		return err
	}
	return e.note(ctx, in, fmt.Sprintf("%s %s used.", cost, e.entitlement))
}

func (e entitlementSettlement) reverse(ctx context.Context, in settlementInput) error {
	used := e.stamped(*in.request)
	if !used.IsPositive() {
		return nil
	}
	if _, err := e.ledger.Append(ctx, usageEntry(in, e.entitlement, domain.LedgerRefund, used,
		fmt.Sprintf("%s %s returned for %s", used, e.entitlement, in.request.Reference))); err != nil {
		return err
	}
	return e.note(ctx, in, fmt.Sprintf("%s %s returned on cancellation.", used, e.entitlement))
}

func (e entitlementSettlement) note(ctx context.Context, in settlementInput, body string) error {
	return e.notes.AddNote(ctx, domain.RecordNote{
		NoteID:    uuid.NewString(),
		Subject:   domain.NoteOnAccessRequest,
		RecordID:  in.request.AccessRequestID,
		Body:      body,
		CreatedAt: in.now,
		CreatedBy: in.userID,
	})
}

type invoiceSettlement struct {
	billing gateways.BillingGateway
}

func (i invoiceSettlement) check(context.Context, settlementInput) error {
	return nil
}

func (i invoiceSettlement) settle(ctx context.Context, in settlementInput) error {
	if in.service.ProductID == nil || *in.service.ProductID == "" {
		return fmt.Errorf("%w: service %s has no billable product", apperrors.ErrMissingConfiguration, in.service.Code)
	}
	invoice, err := i.billing.CreateInvoice(ctx, in.membership.MemberID, in.request.Reference, []domain.InvoiceLine{{
		ProductID:   *in.service.ProductID,
		Description: in.service.Name,
		Quantity:    in.request.DurationHours,
		UnitPrice:   in.service.Price,
	}})
	if err != nil {
		return err
	}
	in.request.InvoiceID = &invoice.InvoiceID
	return nil
}

// reverse leaves the invoice alone: crediting it is done in the billing system.
func (i invoiceSettlement) reverse(context.Context, settlementInput) error {
	return nil
}

type freeSettlement struct{}

func (freeSettlement) check(_ context.Context, in settlementInput) error {
	if in.service.IsPaid {
		return fmt.Errorf("%w: service %s is paid", apperrors.ErrValidation, in.service.Code)
	}
	return nil
}

func (freeSettlement) settle(context.Context, settlementInput) error  { return nil }
func (freeSettlement) reverse(context.Context, settlementInput) error { return nil }
