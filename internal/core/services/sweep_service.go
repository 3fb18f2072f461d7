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
	"github.com/google/uuid"
)

// DefaultReminderDays is how many days before the end date a renewal reminder goes out.
const DefaultReminderDays = 7

// sweepService runs the periodic expiry and monthly-reset passes. Every membership is
// processed in its own transaction; one failure never stops the rest of the batch.
type sweepService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	dueQueries    portsrepo.MembershipSweepQueries
	planRepo      portsrepo.PlanReader
	noteRepo      portsrepo.NoteRepositoryFacade
	membershipSvc portssvc.MembershipSvcFacade
	notifier      gateways.Notifier
	clock         gateways.Clock
	reminderDays  int
}

// SweepServiceOption is a functional option for configuring the sweep service
type SweepServiceOption func(*sweepService)

// WithSweepNotifier sets the notifier used for renewal reminders
func WithSweepNotifier(n gateways.Notifier) SweepServiceOption {
	return func(s *sweepService) {
		s.notifier = n
	}
}

// WithReminderDays overrides DefaultReminderDays
func WithReminderDays(days int) SweepServiceOption {
	return func(s *sweepService) {
		if days > 0 {
			s.reminderDays = days
		}
	}
}

// NewSweepService creates a new sweep service.
func NewSweepService(repos portsrepo.RepositoryProvider, membershipSvc portssvc.MembershipSvcFacade, clock gateways.Clock, options ...SweepServiceOption) portssvc.SweepSvc {
	svc := &sweepService{
		txManager:     repos.TxManager,
		dueQueries:    repos.MembershipRepo,
		planRepo:      repos.PlanRepo,
		noteRepo:      repos.NoteRepo,
		membershipSvc: membershipSvc,
		clock:         clock,
		reminderDays:  DefaultReminderDays,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SweepSvc = (*sweepService)(nil)

// today resolves the sweep day. Days after the clock's own are rejected.
func (s *sweepService) today(asOf time.Time) (time.Time, error) {
	now := s.clock.Now()
	if asOf.IsZero() {
		return domain.DateOf(now), nil
	}
	if domain.IsFutureDay(asOf, now) {
		return time.Time{}, fmt.Errorf("%w: cannot sweep as of %s, a future day", apperrors.ErrValidation, asOf.Format(time.DateOnly))
	}
	return domain.DateOf(asOf), nil
}

func (s *sweepService) RunExpirySweep(ctx context.Context, asOf time.Time) (*portssvc.SweepReport, error) {
	today, err := s.today(asOf)
	if err != nil {
		return nil, err
	}
	report := &portssvc.SweepReport{AsOf: today}

	due, err := s.dueQueries.DueForExpiry(ctx, today)
	if err != nil {
		s.LogError(ctx, err, "Failed to select memberships due for expiry")
		return nil, err
	}
	report.Due = len(due)

	for _, membershipID := range due {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		expired, err := s.membershipSvc.Expire(ctx, membershipID, domain.SystemUserID)
		if err != nil {
			report.Failed++
			continue
		}
		report.Processed++

		plan, err := s.planRepo.FindPlanByID(ctx, expired.PlanID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load plan for auto-renewal", slog.String("membership_id", membershipID))
			report.Failed++
			continue
		}
		if !plan.AutoRenew {
			continue
		}
		renewed, err := s.autoRenew(ctx, membershipID)
		if err != nil {
			report.Failed++
			continue
		}
		report.Renewed = append(report.Renewed, renewed.MembershipID)
	}

	reminderDate := today.AddDate(0, 0, s.reminderDays)
	remind, err := s.dueQueries.DueForRenewalReminder(ctx, reminderDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to select memberships due for a renewal reminder")
		return report, err
	}
	for _, membershipID := range remind {
		s.Notify(ctx, s.notifier, domain.TemplateMembershipReminder, membershipID)
		report.Reminded = append(report.Reminded, membershipID)
	}

	s.LogInfo(ctx, "Expiry sweep finished",
		slog.Time("as_of", today),
		slog.Int("due", report.Due),
		slog.Int("processed", report.Processed),
		slog.Int("failed", report.Failed),
		slog.Int("renewed", len(report.Renewed)),
		slog.Int("reminded", len(report.Reminded)))
	return report, nil
}

// autoRenew creates the successor and confirms it together with its subscription. A failed
// confirmation leaves the successor in draft with a note explaining why.
func (s *sweepService) autoRenew(ctx context.Context, membershipID string) (*domain.Membership, error) {
	renewed, err := s.membershipSvc.Renew(ctx, membershipID, domain.SystemUserID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.membershipSvc.AcceptPolicies(ctx, renewed.MembershipID, domain.SystemUserID); err != nil {
			return err
		}
		if _, err := s.membershipSvc.Confirm(ctx, renewed.MembershipID, domain.SystemUserID); err != nil {
			return err
		}
		_, err := s.membershipSvc.CreateSubscription(ctx, renewed.MembershipID, domain.SystemUserID)
		return err
	})
	if err != nil {
		note := domain.RecordNote{
			NoteID:    uuid.NewString(),
			Subject:   domain.NoteOnMembership,
			RecordID:  renewed.MembershipID,
			Body:      fmt.Sprintf("Auto-renewal failed: %v", err),
			CreatedAt: s.clock.Now(),
			CreatedBy: domain.SystemUserID,
		}
		if noteErr := s.noteRepo.AddNote(ctx, note); noteErr != nil {
			s.LogError(ctx, noteErr, "Failed to record auto-renewal failure", slog.String("membership_id", renewed.MembershipID))
		}
		return renewed, err
	}
	return renewed, nil
}

func (s *sweepService) RunMonthlyResetSweep(ctx context.Context, asOf time.Time) (*portssvc.SweepReport, error) {
	today, err := s.today(asOf)
	if err != nil {
		return nil, err
	}
	report := &portssvc.SweepReport{AsOf: today}

	due, err := s.dueQueries.DueForMonthlyReset(ctx, today)
	if err != nil {
		s.LogError(ctx, err, "Failed to select memberships due for a monthly reset")
		return nil, err
	}
	report.Due = len(due)

	for _, membershipID := range due {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if _, err := s.membershipSvc.RenewMonthlyBenefits(ctx, membershipID, domain.SystemUserID); err != nil {
			report.Failed++
			continue
		}
		report.Processed++
	}

	s.LogInfo(ctx, "Monthly reset sweep finished",
		slog.Time("as_of", today),
		slog.Int("due", report.Due),
		slog.Int("processed", report.Processed),
		slog.Int("failed", report.Failed))
	return report, nil
}
