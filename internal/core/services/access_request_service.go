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
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accessRequestService books services against memberships and settles them through the
// payment method chosen on the request.
type accessRequestService struct {
	BaseService
	txManager         portsrepo.TransactionManager
	accessRequestRepo portsrepo.AccessRequestRepositoryFacade
	serviceRepo       portsrepo.ServiceRepositoryFacade
	membershipRepo    portsrepo.MembershipReader
	planRepo          portsrepo.PlanReader
	noteRepo          portsrepo.NoteRepositoryFacade
	ledgerSvc         portssvc.LedgerSvcFacade
	sequence          gateways.SequenceGenerator
	notifier          gateways.Notifier
	clock             gateways.Clock
	settlements       settlements
}

// AccessRequestServiceOption is a functional option for configuring the access request service
type AccessRequestServiceOption func(*accessRequestService)

// WithAccessRequestNotifier sets the notifier used for workflow notifications
func WithAccessRequestNotifier(n gateways.Notifier) AccessRequestServiceOption {
	return func(s *accessRequestService) {
		s.notifier = n
	}
}

// NewAccessRequestService creates a new access request service.
func NewAccessRequestService(
	repos portsrepo.RepositoryProvider,
	ledgerSvc portssvc.LedgerSvcFacade,
	billing gateways.BillingGateway,
	sequence gateways.SequenceGenerator,
	clock gateways.Clock,
	options ...AccessRequestServiceOption,
) portssvc.AccessRequestSvcFacade {
	svc := &accessRequestService{
		txManager:         repos.TxManager,
		accessRequestRepo: repos.AccessRequestRepo,
		serviceRepo:       repos.ServiceRepo,
		membershipRepo:    repos.MembershipRepo,
		planRepo:          repos.PlanRepo,
		noteRepo:          repos.NoteRepo,
		ledgerSvc:         ledgerSvc,
		sequence:          sequence,
		clock:             clock,
		settlements:       newSettlements(ledgerSvc, billing, repos.NoteRepo),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccessRequestSvcFacade = (*accessRequestService)(nil)

func (s *accessRequestService) GetAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	request, err := s.accessRequestRepo.FindAccessRequestByID(ctx, requestID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find access request", slog.String("access_request_id", requestID))
		return nil, err
	}
	return request, nil
}

func (s *accessRequestService) ListAccessRequests(ctx context.Context, params dto.ListAccessRequestsParams) (*dto.ListAccessRequestsResponse, error) {
	filter := domain.AccessRequestFilter{
		MembershipID: params.MembershipID,
		ServiceID:    params.ServiceID,
		State:        params.State,
	}
	requests, nextToken, err := s.accessRequestRepo.ListAccessRequests(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list access requests")
		return nil, err
	}
	return &dto.ListAccessRequestsResponse{
		AccessRequests: dto.ToAccessRequestResponses(requests),
		NextToken:      nextToken,
	}, nil
}

func (s *accessRequestService) ListNotes(ctx context.Context, requestID string) ([]domain.RecordNote, error) {
	if _, err := s.accessRequestRepo.FindAccessRequestByID(ctx, requestID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListNotes(ctx, domain.NoteOnAccessRequest, requestID)
}

// bookable loads the membership and service of a booking and checks that one may book the other.
func (s *accessRequestService) bookable(ctx context.Context, membershipID, serviceID string) (*domain.Membership, *domain.Service, error) {
	membership, err := s.membershipRepo.FindMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, nil, err
	}
	if membership.State != domain.MembershipConfirmed && membership.State != domain.MembershipActive {
		return nil, nil, fmt.Errorf("%w: membership %s is %s", apperrors.ErrValidation, membership.Reference, membership.State)
	}
	plan, err := s.planRepo.FindPlanByID(ctx, membership.PlanID)
	if err != nil {
		return nil, nil, err
	}
	service, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, nil, err
	}
	if !service.IsActive {
		return nil, nil, fmt.Errorf("%w: service %s is inactive", apperrors.ErrValidation, service.Code)
	}
	if !service.AvailableFor(plan.SpaceType) {
		return nil, nil, fmt.Errorf("%w: service %s is not offered to %s members", apperrors.ErrValidation, service.Code, plan.SpaceType)
	}
	return membership, service, nil
}

// defaultPaymentMethod picks free for unpaid services, credits when the member can afford
// them and invoice otherwise.
func (s *accessRequestService) defaultPaymentMethod(ctx context.Context, r domain.AccessRequest, service domain.Service) (domain.PaymentMethod, error) {
	if !service.IsPaid {
		return domain.PaymentFree, nil
	}
	if service.AllowCreditPayment {
		balance, err := s.ledgerSvc.Balance(ctx, r.MemberID, domain.EntitlementCredits)
		if err != nil {
			return "", err
		}
		if balance.GreaterThanOrEqual(decimal.NewFromInt(r.CreditsCost)) {
			return domain.PaymentCredits, nil
		}
	}
	return domain.PaymentInvoice, nil
}

// checkOverlap rejects r when another live request for the same service intersects its slot.
// Callers hold the service booking lock.
func (s *accessRequestService) checkOverlap(ctx context.Context, r domain.AccessRequest) error {
	holders, err := s.accessRequestRepo.FindSlotHolders(ctx, r.ServiceID, r.AccessRequestID, r.ScheduledEnd())
	if err != nil {
		return err
	}
	for _, other := range holders {
		if r.Overlaps(other) {
			return fmt.Errorf("%w: %s already holds %s to %s", apperrors.ErrSchedulingConflict,
				other.Reference, other.ScheduledStart.Format("2006-01-02 15:04"), other.ScheduledEnd().Format("15:04"))
		}
	}
	return nil
}

func (s *accessRequestService) CreateAccessRequest(ctx context.Context, req dto.CreateAccessRequestRequest, userID string) (*domain.AccessRequest, error) {
	if !req.DurationHours.IsPositive() {
		return nil, fmt.Errorf("%w: duration must be positive", apperrors.ErrValidation)
	}

	var created domain.AccessRequest
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		membership, service, err := s.bookable(ctx, req.MembershipID, req.ServiceID)
		if err != nil {
			return err
		}
		if err := s.serviceRepo.LockServiceForBooking(ctx, service.ServiceID); err != nil {
			return err
		}
		reference, err := s.sequence.NextReference(ctx, domain.SequenceAccessRequest)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		r := domain.AccessRequest{
			AccessRequestID: uuid.NewString(),
			Reference:       reference,
			MembershipID:    membership.MembershipID,
			MemberID:        membership.MemberID,
			ServiceID:       service.ServiceID,
			ScheduledStart:  req.ScheduledStart,
			DurationHours:   req.DurationHours,
			State:           domain.AccessRequestDraft,
			PaymentMethod:   req.PaymentMethod,
			Description:     req.Description,
			IsGuest:         req.IsGuest,
			GuestName:       req.GuestName,
			GuestEmail:      req.GuestEmail,
			GuestCount:      req.GuestCount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		r.RecomputeCosts(*service)
		if r.PaymentMethod == "" {
			if r.PaymentMethod, err = s.defaultPaymentMethod(ctx, r, *service); err != nil {
				return err
			}
		}
		if err := r.Validate(); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, r); err != nil {
			return err
		}
		if err := s.accessRequestRepo.SaveAccessRequest(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create access request",
			slog.String("membership_id", req.MembershipID),
			slog.String("service_id", req.ServiceID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Access request created",
		slog.String("access_request_id", created.AccessRequestID),
		slog.String("reference", created.Reference),
		slog.String("payment_method", string(created.PaymentMethod)))
	return &created, nil
}

func (s *accessRequestService) UpdateAccessRequest(ctx context.Context, requestID string, req dto.UpdateAccessRequestRequest, userID string) (*domain.AccessRequest, error) {
	var updated domain.AccessRequest
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		r, err := s.accessRequestRepo.FindAccessRequestByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		switch r.State {
		case domain.AccessRequestDraft, domain.AccessRequestPending, domain.AccessRequestApproved:
		default:
			return fmt.Errorf("%w: access request %s is %s", apperrors.ErrInvalidTransition, r.Reference, r.State)
		}
		if r.State == domain.AccessRequestApproved {
			if (req.ServiceID != nil && *req.ServiceID != r.ServiceID) || (req.PaymentMethod != nil && *req.PaymentMethod != r.PaymentMethod) {
				return fmt.Errorf("%w: approved request %s keeps its service and payment method", apperrors.ErrInvalidTransition, r.Reference)
			}
		}

		if req.ServiceID != nil {
			r.ServiceID = *req.ServiceID
		}
		if req.ScheduledStart != nil {
			r.ScheduledStart = *req.ScheduledStart
		}
		if req.DurationHours != nil {
			r.DurationHours = *req.DurationHours
		}
		if req.PaymentMethod != nil {
			r.PaymentMethod = *req.PaymentMethod
		}
		if req.Description != nil {
			r.Description = *req.Description
		}
		if req.GuestCount != nil {
			r.GuestCount = *req.GuestCount
		}

		_, service, err := s.bookable(ctx, r.MembershipID, r.ServiceID)
		if err != nil {
			return err
		}
		if err := s.serviceRepo.LockServiceForBooking(ctx, r.ServiceID); err != nil {
			return err
		}
		r.RecomputeCosts(*service)
		if err := r.Validate(); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, *r); err != nil {
			return err
		}

		r.LastUpdatedAt = s.clock.Now()
		r.LastUpdatedBy = userID
		if err := s.accessRequestRepo.UpdateAccessRequest(ctx, *r); err != nil {
			return err
		}
		updated = *r
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update access request",
			slog.String("access_request_id", requestID),
			slog.String("user_id", userID))
		return nil, err
	}
	return &updated, nil
}

// settlementFor resolves the handler of r's payment method with the records it settles against.
func (s *accessRequestService) settlementFor(ctx context.Context, r *domain.AccessRequest, userID string) (settlement, settlementInput, error) {
	handler, err := s.settlements.forMethod(r.PaymentMethod)
	if err != nil {
		return nil, settlementInput{}, err
	}
	membership, err := s.membershipRepo.FindMembershipByID(ctx, r.MembershipID)
	if err != nil {
		return nil, settlementInput{}, err
	}
	service, err := s.serviceRepo.FindServiceByID(ctx, r.ServiceID)
	if err != nil {
		return nil, settlementInput{}, err
	}
	return handler, settlementInput{
		request:    r,
		membership: *membership,
		service:    *service,
		userID:     userID,
		now:        s.clock.Now(),
	}, nil
}

// approve checks and settles r and stamps the approval. r must already be approved.
func (s *accessRequestService) approve(ctx context.Context, r *domain.AccessRequest, userID string) error {
	handler, in, err := s.settlementFor(ctx, r, userID)
	if err != nil {
		return err
	}
	if err := handler.check(ctx, in); err != nil {
		return err
	}
	if err := handler.settle(ctx, in); err != nil {
		return err
	}
	r.ApprovedBy = &userID
	r.ApprovedAt = &in.now
	return nil
}

// transition runs one workflow step on the locked request inside a transaction.
func (s *accessRequestService) transition(ctx context.Context, requestID, userID string, step func(ctx context.Context, r *domain.AccessRequest) error) (*domain.AccessRequest, error) {
	var out domain.AccessRequest
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		r, err := s.accessRequestRepo.FindAccessRequestByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := step(ctx, r); err != nil {
			return err
		}
		r.LastUpdatedAt = s.clock.Now()
		r.LastUpdatedBy = userID
		if err := s.accessRequestRepo.UpdateAccessRequest(ctx, *r); err != nil {
			return err
		}
		out = *r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit moves a draft to pending after checking the payment method can cover it. Services
// that do not require approval are approved and settled in the same step.
func (s *accessRequestService) Submit(ctx context.Context, requestID string, userID string) (result *domain.AccessRequest, err error) {
	ctx, span := s.StartSpan(ctx, "access_request.submit", requestID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.transition(ctx, requestID, userID, func(ctx context.Context, r *domain.AccessRequest) error {
		if err := r.Transition(domain.AccessRequestPending); err != nil {
			return err
		}
		handler, in, err := s.settlementFor(ctx, r, userID)
		if err != nil {
			return err
		}
		if err := handler.check(ctx, in); err != nil {
			return err
		}
		if in.service.RequiresApproval {
			return nil
		}
		if err := r.Transition(domain.AccessRequestApproved); err != nil {
			return err
		}
		return s.approve(ctx, r, userID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to submit access request",
			slog.String("access_request_id", requestID),
			slog.String("user_id", userID))
		return nil, err
	}

	template := domain.TemplateAccessRequestSubmitted
	if result.State == domain.AccessRequestApproved {
		template = domain.TemplateAccessRequestApproved
	}
	s.Notify(ctx, s.notifier, template, result.AccessRequestID)
	s.LogInfo(ctx, "Access request submitted",
		slog.String("access_request_id", result.AccessRequestID),
		slog.String("state", string(result.State)))
	return result, nil
}

// Approve settles a pending request through its payment method.
func (s *accessRequestService) Approve(ctx context.Context, requestID string, userID string) (result *domain.AccessRequest, err error) {
	ctx, span := s.StartSpan(ctx, "access_request.approve", requestID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.transition(ctx, requestID, userID, func(ctx context.Context, r *domain.AccessRequest) error {
		if err := r.Transition(domain.AccessRequestApproved); err != nil {
			return err
		}
		return s.approve(ctx, r, userID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to approve access request",
			slog.String("access_request_id", requestID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.Notify(ctx, s.notifier, domain.TemplateAccessRequestApproved, result.AccessRequestID)
	s.LogInfo(ctx, "Access request approved",
		slog.String("access_request_id", result.AccessRequestID),
		slog.String("payment_method", string(result.PaymentMethod)))
	return result, nil
}

func (s *accessRequestService) Reject(ctx context.Context, requestID string, userID string) (result *domain.AccessRequest, err error) {
	ctx, span := s.StartSpan(ctx, "access_request.reject", requestID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.transition(ctx, requestID, userID, func(_ context.Context, r *domain.AccessRequest) error {
		return r.Transition(domain.AccessRequestRejected)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reject access request",
			slog.String("access_request_id", requestID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.Notify(ctx, s.notifier, domain.TemplateAccessRequestRejected, result.AccessRequestID)
	return result, nil
}

// Cancel withdraws a request. Approved requests have their settlement reversed.
func (s *accessRequestService) Cancel(ctx context.Context, requestID string, userID string) (result *domain.AccessRequest, err error) {
	ctx, span := s.StartSpan(ctx, "access_request.cancel", requestID)
	defer func() { s.EndSpan(span, err) }()

	result, err = s.transition(ctx, requestID, userID, func(ctx context.Context, r *domain.AccessRequest) error {
		wasApproved := r.State == domain.AccessRequestApproved
		if err := r.Transition(domain.AccessRequestCancelled); err != nil {
			return err
		}
		if !wasApproved {
			return nil
		}
		handler, in, err := s.settlementFor(ctx, r, userID)
		if err != nil {
			return err
		}
		return handler.reverse(ctx, in)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel access request",
			slog.String("access_request_id", requestID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Access request cancelled", slog.String("access_request_id", result.AccessRequestID))
	return result, nil
}
