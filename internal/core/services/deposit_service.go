package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/google/uuid"
)

type depositService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	depositRepo    portsrepo.DepositRepositoryFacade
	membershipRepo portsrepo.MembershipReader
	planRepo       portsrepo.PlanReader
	sequence       gateways.SequenceGenerator
	clock          gateways.Clock
}

// NewDepositService creates a new deposit service.
func NewDepositService(repos portsrepo.RepositoryProvider, sequence gateways.SequenceGenerator, clock gateways.Clock) portssvc.DepositSvcFacade {
	return &depositService{
		txManager:      repos.TxManager,
		depositRepo:    repos.DepositRepo,
		membershipRepo: repos.MembershipRepo,
		planRepo:       repos.PlanRepo,
		sequence:       sequence,
		clock:          clock,
	}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

func (s *depositService) CreateDeposit(ctx context.Context, membershipID string, userID string) (*domain.SecurityDeposit, error) {
	var created domain.SecurityDeposit
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepo.FindMembershipByID(ctx, membershipID)
		if err != nil {
			return err
		}
		plan, err := s.planRepo.FindPlanByID(ctx, membership.PlanID)
		if err != nil {
			return err
		}
		if !plan.RequiresDeposit {
			return fmt.Errorf("%w: plan %s does not require a deposit", apperrors.ErrValidation, plan.Name)
		}
		reference, err := s.sequence.NextReference(ctx, domain.SequenceDeposit)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		created = domain.SecurityDeposit{
			DepositID:    uuid.NewString(),
			Reference:    reference,
			MembershipID: membership.MembershipID,
			MemberID:     membership.MemberID,
			Amount:       plan.DepositAmount,
			State:        domain.DepositPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		return s.depositRepo.SaveDeposit(ctx, created)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create deposit", slog.String("membership_id", membershipID))
		return nil, err
	}
	s.LogInfo(ctx, "Deposit created",
		slog.String("deposit_id", created.DepositID),
		slog.String("amount", created.Amount.String()))
	return &created, nil
}

func (s *depositService) GetDepositByID(ctx context.Context, depositID string) (*domain.SecurityDeposit, error) {
	return s.depositRepo.FindDepositByID(ctx, depositID)
}

func (s *depositService) apply(ctx context.Context, depositID, userID, action string, fn func(d *domain.SecurityDeposit) error) (*domain.SecurityDeposit, error) {
	var out domain.SecurityDeposit
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		d, err := s.depositRepo.FindDepositByID(ctx, depositID)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		d.LastUpdatedAt = s.clock.Now()
		d.LastUpdatedBy = userID
		if err := s.depositRepo.UpdateDeposit(ctx, *d); err != nil {
			return err
		}
		out = *d
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update deposit",
			slog.String("deposit_id", depositID),
			slog.String("action", action))
		return nil, err
	}
	s.LogInfo(ctx, "Deposit updated",
		slog.String("deposit_id", depositID),
		slog.String("state", string(out.State)))
	return &out, nil
}

func (s *depositService) MarkPaid(ctx context.Context, depositID string, userID string) (*domain.SecurityDeposit, error) {
	return s.apply(ctx, depositID, userID, "mark_paid", func(d *domain.SecurityDeposit) error {
		return d.MarkPaid(s.clock.Now())
	})
}

func (s *depositService) Return(ctx context.Context, depositID string, userID string) (*domain.SecurityDeposit, error) {
	return s.apply(ctx, depositID, userID, "return", func(d *domain.SecurityDeposit) error {
		return d.Return(s.clock.Now())
	})
}

func (s *depositService) Withhold(ctx context.Context, depositID string, reason string, userID string) (*domain.SecurityDeposit, error) {
	return s.apply(ctx, depositID, userID, "withhold", func(d *domain.SecurityDeposit) error {
		return d.Withhold(reason)
	})
}
