package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService derives every balance from the append-only entitlement log.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	clock      gateways.Clock
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, clock gateways.Clock) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		clock:      clock,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) Balance(ctx context.Context, memberID string, entitlement domain.Entitlement) (decimal.Decimal, error) {
	return s.BalanceOf(ctx, domain.LedgerFilter{
		MemberID:      memberID,
		Entitlement:   entitlement,
		IgnoreExpired: true,
		AsOf:          s.clock.Now(),
	})
}

func (s *ledgerService) BalanceOf(ctx context.Context, filter domain.LedgerFilter) (decimal.Decimal, error) {
	if filter.IgnoreExpired && filter.AsOf.IsZero() {
		filter.AsOf = s.clock.Now()
	}
	total, err := s.ledgerRepo.SumEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum ledger entries", slog.String("member_id", filter.MemberID))
		return decimal.Zero, err
	}
	return total, nil
}

// MembershipBalances computes the triples shown on a membership.
//
// Credits remaining is member-wide: purchased, bonus and renewal credits all count, so a
// member's balance does not depend on which membership granted it. Passes and call-room
// hours are per membership and per benefit period: usage is counted since the last
// confirmation or monthly reset.
func (s *ledgerService) MembershipBalances(ctx context.Context, membership domain.Membership, plan domain.MembershipPlan) (domain.MembershipBalances, error) {
	now := s.clock.Now()
	var out domain.MembershipBalances

	creditsRemaining, err := s.BalanceOf(ctx, domain.LedgerFilter{
		MemberID: membership.MemberID, Entitlement: domain.EntitlementCredits, IgnoreExpired: true, AsOf: now,
	})
	if err != nil {
		return out, err
	}
	creditsUsed, err := s.BalanceOf(ctx, domain.LedgerFilter{
		MembershipID: membership.MembershipID, Entitlement: domain.EntitlementCredits, Kinds: domain.ConsumptionKinds,
	})
	if err != nil {
		return out, err
	}
	out.Credits = domain.EntitlementBalance{
		Granted:   decimal.NewFromInt(plan.CreditsIncluded),
		Used:      creditsUsed.Neg(),
		Remaining: creditsRemaining,
	}

	periodBalance := func(e domain.Entitlement, granted decimal.Decimal) (domain.EntitlementBalance, error) {
		remaining, err := s.BalanceOf(ctx, domain.LedgerFilter{
			MembershipID: membership.MembershipID, Entitlement: e, IgnoreExpired: true, AsOf: now,
		})
		if err != nil {
			return domain.EntitlementBalance{}, err
		}
		used, err := s.BalanceOf(ctx, domain.LedgerFilter{
			MembershipID: membership.MembershipID, Entitlement: e, Kinds: domain.ConsumptionKinds, Since: membership.BenefitPeriodStart,
		})
		if err != nil {
			return domain.EntitlementBalance{}, err
		}
		return domain.EntitlementBalance{Granted: granted, Used: used.Neg(), Remaining: remaining}, nil
	}

	if out.Passes, err = periodBalance(domain.EntitlementPasses, decimal.NewFromInt(plan.PassesIncluded)); err != nil {
		return out, err
	}
	if out.CallRoomHours, err = periodBalance(domain.EntitlementCallRoomHours, plan.CallRoomHoursIncluded); err != nil {
		return out, err
	}
	return out, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, memberID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	filter := domain.LedgerFilter{
		MemberID:     memberID,
		MembershipID: params.MembershipID,
		Entitlement:  params.Entitlement,
	}
	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("member_id", memberID))
		return nil, err
	}
	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *ledgerService) Append(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if entry.MemberID == "" {
		return nil, fmt.Errorf("%w: ledger entries need a member", apperrors.ErrValidation)
	}
	if !entry.Entitlement.Valid() || !entry.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entitlement %q or kind %q", apperrors.ErrValidation, entry.Entitlement, entry.Kind)
	}
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = s.clock.Now()
	}
	if entry.CreatedBy == "" {
		entry.CreatedBy = domain.SystemUserID
	}

	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append ledger entry",
			slog.String("member_id", entry.MemberID),
			slog.String("entitlement", string(entry.Entitlement)),
			slog.String("kind", string(entry.Kind)))
		return nil, err
	}

	s.LogDebug(ctx, "Ledger entry appended",
		slog.String("entry_id", entry.EntryID),
		slog.String("member_id", entry.MemberID),
		slog.String("kind", string(entry.Kind)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

func (s *ledgerService) GrantBonus(ctx context.Context, memberID string, req dto.GrantBonusRequest, userID string) (*domain.LedgerEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: bonus amount must be positive", apperrors.ErrValidation)
	}
	var expiresOn *time.Time
	if req.ExpiresOn != nil {
		day := domain.DateOf(*req.ExpiresOn)
		expiresOn = &day
	}
	entry, err := s.Append(ctx, domain.LedgerEntry{
		MemberID:     memberID,
		MembershipID: req.MembershipID,
		Entitlement:  domain.EntitlementCredits,
		Kind:         domain.LedgerBonus,
		Amount:       req.Amount,
		Description:  req.Description,
		ExpiresOn:    expiresOn,
		CreatedBy:    userID,
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Bonus credits granted",
		slog.String("member_id", memberID),
		slog.String("amount", req.Amount.String()),
		slog.String("user_id", userID))
	return entry, nil
}
