package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock MembershipService ---
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) membership(args mock.Arguments) (*domain.Membership, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) GetMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID))
}
func (m *MockMembershipService) GetMembershipSummary(ctx context.Context, membershipID string) (*domain.MembershipSummary, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipSummary), args.Error(1)
}
func (m *MockMembershipService) ListMemberships(ctx context.Context, params dto.ListMembershipsParams) (*dto.ListMembershipsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListMembershipsResponse), args.Error(1)
}
func (m *MockMembershipService) ListNotes(ctx context.Context, membershipID string) ([]domain.RecordNote, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecordNote), args.Error(1)
}
func (m *MockMembershipService) CreateMembership(ctx context.Context, req dto.CreateMembershipRequest, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, req, userID))
}
func (m *MockMembershipService) UpdateMembership(ctx context.Context, membershipID string, req dto.UpdateMembershipRequest, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID, req, userID))
}
func (m *MockMembershipService) AcceptPolicies(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID, userID))
}
func (m *MockMembershipService) Confirm(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID, userID))
}
func (m *MockMembershipService) Activate(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID, userID))
}
func (m *MockMembershipService) Expire(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID, userID))
}
func (m *MockMembershipService) Cancel(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID, userID))
}
func (m *MockMembershipService) Renew(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID, userID))
}
func (m *MockMembershipService) RenewMonthlyBenefits(ctx context.Context, membershipID string, userID string) (*domain.Membership, error) {
	return m.membership(m.Called(ctx, membershipID, userID))
}
func (m *MockMembershipService) CreateInvoice(ctx context.Context, membershipID string, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, membershipID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockMembershipService) CreateSubscription(ctx context.Context, membershipID string, userID string) (*domain.BillingRequest, error) {
	args := m.Called(ctx, membershipID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingRequest), args.Error(1)
}
func (m *MockMembershipService) IssuePortalToken(ctx context.Context, membershipID string, userID string) (string, error) {
	args := m.Called(ctx, membershipID, userID)
	return args.String(0), args.Error(1)
}
func (m *MockMembershipService) GetSummaryWithToken(ctx context.Context, membershipID, token string) (*domain.MembershipSummary, error) {
	args := m.Called(ctx, membershipID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipSummary), args.Error(1)
}
func (m *MockMembershipService) RateMembership(ctx context.Context, membershipID string, req dto.RateMembershipRequest, userID string) (*domain.MembershipRating, error) {
	args := m.Called(ctx, membershipID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipRating), args.Error(1)
}
func (m *MockMembershipService) GetRating(ctx context.Context, membershipID string) (*domain.MembershipRating, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipRating), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.MembershipSvcFacade = (*MockMembershipService)(nil)

// --- Mock AccessRequestService ---
type MockAccessRequestService struct {
	mock.Mock
}

func (m *MockAccessRequestService) request(args mock.Arguments) (*domain.AccessRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestService) GetAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID))
}
func (m *MockAccessRequestService) ListAccessRequests(ctx context.Context, params dto.ListAccessRequestsParams) (*dto.ListAccessRequestsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccessRequestsResponse), args.Error(1)
}
func (m *MockAccessRequestService) ListNotes(ctx context.Context, requestID string) ([]domain.RecordNote, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecordNote), args.Error(1)
}
func (m *MockAccessRequestService) CreateAccessRequest(ctx context.Context, req dto.CreateAccessRequestRequest, userID string) (*domain.AccessRequest, error) {
	return m.request(m.Called(ctx, req, userID))
}
func (m *MockAccessRequestService) UpdateAccessRequest(ctx context.Context, requestID string, req dto.UpdateAccessRequestRequest, userID string) (*domain.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID, req, userID))
}
func (m *MockAccessRequestService) Submit(ctx context.Context, requestID string, userID string) (*domain.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID, userID))
}
func (m *MockAccessRequestService) Approve(ctx context.Context, requestID string, userID string) (*domain.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID, userID))
}
func (m *MockAccessRequestService) Reject(ctx context.Context, requestID string, userID string) (*domain.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID, userID))
}
func (m *MockAccessRequestService) Cancel(ctx context.Context, requestID string, userID string) (*domain.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID, userID))
}

var _ portssvc.AccessRequestSvcFacade = (*MockAccessRequestService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Balance(ctx context.Context, memberID string, entitlement domain.Entitlement) (decimal.Decimal, error) {
	args := m.Called(ctx, memberID, entitlement)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) BalanceOf(ctx context.Context, filter domain.LedgerFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) MembershipBalances(ctx context.Context, membership domain.Membership, plan domain.MembershipPlan) (domain.MembershipBalances, error) {
	args := m.Called(ctx, membership, plan)
	return args.Get(0).(domain.MembershipBalances), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, memberID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	args := m.Called(ctx, memberID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLedgerEntriesResponse), args.Error(1)
}
func (m *MockLedgerService) Append(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) GrantBonus(ctx context.Context, memberID string, req dto.GrantBonusRequest, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, memberID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock LeadService ---
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) SubmitIntake(ctx context.Context, req dto.IntakeRequest) (*domain.Lead, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) GetLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) ListLeads(ctx context.Context, params dto.PageParams) (*dto.ListLeadsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLeadsResponse), args.Error(1)
}
func (m *MockLeadService) CreateMembershipFromLead(ctx context.Context, leadID string, req dto.CreateMembershipFromLeadRequest, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, leadID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

var _ portssvc.LeadSvcFacade = (*MockLeadService)(nil)

// --- Mock SweepService ---
type MockSweepService struct {
	mock.Mock
}

func (m *MockSweepService) RunExpirySweep(ctx context.Context, asOf time.Time) (*portssvc.SweepReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SweepReport), args.Error(1)
}
func (m *MockSweepService) RunMonthlyResetSweep(ctx context.Context, asOf time.Time) (*portssvc.SweepReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SweepReport), args.Error(1)
}

var _ portssvc.SweepSvc = (*MockSweepService)(nil)
