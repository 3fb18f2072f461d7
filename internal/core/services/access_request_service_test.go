package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var slotStart = time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)

type AccessRequestServiceTestSuite struct {
	suite.Suite
	f          *serviceFixture
	membership *domain.Membership
	room       *domain.Service
}

func (suite *AccessRequestServiceTestSuite) SetupTest() {
	suite.f = newServiceFixture(nil)
	plan := suite.f.plan(suite.T(), nil)
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	suite.membership = suite.f.activeMembership(suite.T(), plan.PlanID)
	suite.room = suite.f.service(suite.T(), nil)
}

func TestAccessRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccessRequestServiceTestSuite))
}

func (suite *AccessRequestServiceTestSuite) book(serviceID string, start time.Time, hours string, method domain.PaymentMethod) (*domain.AccessRequest, error) {
	return suite.f.svc.AccessRequest.CreateAccessRequest(context.Background(), dto.CreateAccessRequestRequest{
		MembershipID:   suite.membership.MembershipID,
		ServiceID:      serviceID,
		ScheduledStart: start,
		DurationHours:  dec(hours),
		PaymentMethod:  method,
	}, memberID)
}

func (suite *AccessRequestServiceTestSuite) mustBook(serviceID string, start time.Time, hours string, method domain.PaymentMethod) *domain.AccessRequest {
	r, err := suite.book(serviceID, start, hours, method)
	suite.Require().NoError(err)
	return r
}

func (suite *AccessRequestServiceTestSuite) credits() string {
	balance, err := suite.f.svc.Ledger.Balance(context.Background(), memberID, domain.EntitlementCredits)
	suite.Require().NoError(err)
	return balance.String()
}

func (suite *AccessRequestServiceTestSuite) TestCreate_DerivesCostsAndDefaultMethod() {
	cheap := suite.mustBook(suite.room.ServiceID, slotStart, "2", "")
	suite.Equal(domain.AccessRequestDraft, cheap.State)
	suite.Equal("REQ-000001", cheap.Reference)
	suite.True(dec("40").Equal(cheap.Price))
	suite.Equal(int64(4), cheap.CreditsCost)
	suite.Equal(domain.PaymentCredits, cheap.PaymentMethod)
	suite.Equal(slotStart.Add(2*time.Hour), cheap.ScheduledEnd())

	// 12 credits needed, 10 held
	expensive := suite.mustBook(suite.room.ServiceID, slotStart.Add(24*time.Hour), "6", "")
	suite.Equal(domain.PaymentInvoice, expensive.PaymentMethod)

	lounge := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) {
		req.Code = "LOUNGE"
		req.ServiceType = domain.ServiceSharedSpace
		req.IsPaid = false
		req.Price = dec("0")
	})
	free := suite.mustBook(lounge.ServiceID, slotStart, "1", "")
	suite.Equal(domain.PaymentFree, free.PaymentMethod)
}

func (suite *AccessRequestServiceTestSuite) TestCreate_FractionalCreditCostTruncates() {
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1.75", domain.PaymentCredits)

	suite.Equal(int64(3), r.CreditsCost)
	suite.True(dec("35").Equal(r.Price))
}

func (suite *AccessRequestServiceTestSuite) TestCreate_RejectsOverlapButAllowsTouchingSlots() {
	suite.mustBook(suite.room.ServiceID, slotStart, "2", domain.PaymentCredits)

	_, err := suite.book(suite.room.ServiceID, slotStart.Add(time.Hour), "2", domain.PaymentCredits)
	suite.ErrorIs(err, apperrors.ErrSchedulingConflict)

	_, err = suite.book(suite.room.ServiceID, slotStart.Add(-30*time.Minute), "1", domain.PaymentCredits)
	suite.ErrorIs(err, apperrors.ErrSchedulingConflict)

	_, err = suite.book(suite.room.ServiceID, slotStart.Add(2*time.Hour), "1", domain.PaymentCredits)
	suite.NoError(err, "a request starting at the end of another does not overlap")

	other := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) { req.Code = "MR-B" })
	_, err = suite.book(other.ServiceID, slotStart, "2", domain.PaymentCredits)
	suite.NoError(err, "slots are per service")
}

func (suite *AccessRequestServiceTestSuite) TestCreate_RejectedRequestFreesSlot() {
	ctx := context.Background()
	first := suite.mustBook(suite.room.ServiceID, slotStart, "2", domain.PaymentCredits)
	_, err := suite.f.svc.AccessRequest.Submit(ctx, first.AccessRequestID, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Reject(ctx, first.AccessRequestID, adminID)
	suite.Require().NoError(err)

	_, err = suite.book(suite.room.ServiceID, slotStart, "2", domain.PaymentCredits)
	suite.NoError(err)
}

func (suite *AccessRequestServiceTestSuite) TestCreate_MembershipMustBeConfirmedOrActive() {
	draft := suite.f.membership(suite.T(), suite.membership.PlanID, nil)

	_, err := suite.f.svc.AccessRequest.CreateAccessRequest(context.Background(), dto.CreateAccessRequestRequest{
		MembershipID:   draft.MembershipID,
		ServiceID:      suite.room.ServiceID,
		ScheduledStart: slotStart,
		DurationHours:  dec("1"),
	}, memberID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccessRequestServiceTestSuite) TestCreate_ServiceMustMatchSpace() {
	colivingOnly := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) {
		req.Code = "LAUNDRY"
		req.ServiceType = domain.ServiceOther
		req.SpaceType = domain.ServiceForColiving
	})

	_, err := suite.book(colivingOnly.ServiceID, slotStart, "1", domain.PaymentInvoice)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccessRequestServiceTestSuite) TestCreate_ZeroDuration() {
	_, err := suite.book(suite.room.ServiceID, slotStart, "0", domain.PaymentCredits)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccessRequestServiceTestSuite) TestCredits_ApproveThenCancelRestoresBalance() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "2", domain.PaymentCredits)

	pending, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestPending, pending.State)
	suite.Equal("10", suite.credits(), "submitting does not consume")

	approved, err := suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestApproved, approved.State)
	suite.True(dec("4").Equal(approved.CreditsUsed))
	suite.Require().NotNil(approved.ApprovedBy)
	suite.Equal(adminID, *approved.ApprovedBy)
	suite.Equal("6", suite.credits())

	cancelled, err := suite.f.svc.AccessRequest.Cancel(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestCancelled, cancelled.State)
	suite.Equal("10", suite.credits())

	summary, err := suite.f.svc.Membership.GetMembershipSummary(ctx, suite.membership.MembershipID)
	suite.Require().NoError(err)
	suite.True(summary.Balances.Credits.Used.IsZero())
}

func (suite *AccessRequestServiceTestSuite) TestCredits_InsufficientBalance() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "6", domain.PaymentCredits)

	_, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)

	suite.ErrorIs(err, apperrors.ErrInsufficientEntitlement)
	current, err := suite.f.svc.AccessRequest.GetAccessRequestByID(ctx, r.AccessRequestID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestDraft, current.State)
}

func (suite *AccessRequestServiceTestSuite) TestCredits_ApproveRechecksBalance() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "4", domain.PaymentCredits)
	_, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)

	membershipID := suite.membership.MembershipID
	_, err = suite.f.svc.Ledger.Append(ctx, domain.LedgerEntry{
		MemberID: memberID, MembershipID: &membershipID, Entitlement: domain.EntitlementCredits,
		Kind: domain.LedgerUsed, Amount: dec("-5"),
	})
	suite.Require().NoError(err)

	_, err = suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.ErrorIs(err, apperrors.ErrInsufficientEntitlement)
	current, err := suite.f.svc.AccessRequest.GetAccessRequestByID(ctx, r.AccessRequestID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestPending, current.State)
}

func (suite *AccessRequestServiceTestSuite) TestCredits_ServiceRefusingCredits() {
	noCredits := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) {
		req.Code = "EVENT"
		req.ServiceType = domain.ServiceEventHall
		req.AllowCreditPayment = ptr(false)
	})
	r := suite.mustBook(noCredits.ServiceID, slotStart, "1", domain.PaymentCredits)

	_, err := suite.f.svc.AccessRequest.Submit(context.Background(), r.AccessRequestID, memberID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccessRequestServiceTestSuite) TestPasses_GuestBookingUsesOnePassPerGuest() {
	ctx := context.Background()
	r, err := suite.f.svc.AccessRequest.CreateAccessRequest(ctx, dto.CreateAccessRequestRequest{
		MembershipID:   suite.membership.MembershipID,
		ServiceID:      suite.room.ServiceID,
		ScheduledStart: slotStart,
		DurationHours:  dec("3"),
		PaymentMethod:  domain.PaymentPasses,
		IsGuest:        true,
		GuestName:      "Ana Costa",
		GuestCount:     3,
	}, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)

	approved, err := suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)

	suite.Require().NoError(err)
	suite.True(dec("3").Equal(approved.PassesUsed))
	summary, err := suite.f.svc.Membership.GetMembershipSummary(ctx, suite.membership.MembershipID)
	suite.Require().NoError(err)
	suite.True(dec("3").Equal(summary.Balances.Passes.Used))
	suite.True(dec("1").Equal(summary.Balances.Passes.Remaining))
	suite.Equal("10", suite.credits(), "passes leave credits alone")

	notes, err := suite.f.svc.AccessRequest.ListNotes(ctx, r.AccessRequestID)
	suite.Require().NoError(err)
	suite.Require().Len(notes, 1)
	suite.Equal("3 passes used.", notes[0].Body)
}

func (suite *AccessRequestServiceTestSuite) TestPasses_CancelReturnsPasses() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentPasses)
	_, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.Require().NoError(err)

	_, err = suite.f.svc.AccessRequest.Cancel(ctx, r.AccessRequestID, memberID)

	suite.Require().NoError(err)
	summary, err := suite.f.svc.Membership.GetMembershipSummary(ctx, suite.membership.MembershipID)
	suite.Require().NoError(err)
	suite.True(dec("4").Equal(summary.Balances.Passes.Remaining))
	notes, err := suite.f.svc.AccessRequest.ListNotes(ctx, r.AccessRequestID)
	suite.Require().NoError(err)
	suite.Len(notes, 2)
}

func (suite *AccessRequestServiceTestSuite) TestPasses_CancelAfterGuestCountEditReturnsStampedPasses() {
	ctx := context.Background()
	before, err := suite.f.svc.Membership.GetMembershipSummary(ctx, suite.membership.MembershipID)
	suite.Require().NoError(err)
	r, err := suite.f.svc.AccessRequest.CreateAccessRequest(ctx, dto.CreateAccessRequestRequest{
		MembershipID:   suite.membership.MembershipID,
		ServiceID:      suite.room.ServiceID,
		ScheduledStart: slotStart,
		DurationHours:  dec("2"),
		PaymentMethod:  domain.PaymentPasses,
		IsGuest:        true,
		GuestName:      "Ana Costa",
		GuestCount:     2,
	}, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.Require().NoError(err)

	guests := 4
	edited, err := suite.f.svc.AccessRequest.UpdateAccessRequest(ctx, r.AccessRequestID, dto.UpdateAccessRequestRequest{GuestCount: &guests}, memberID)
	suite.Require().NoError(err)
	suite.True(dec("2").Equal(edited.PassesUsed), "the settled pass count does not follow the edit")

	_, err = suite.f.svc.AccessRequest.Cancel(ctx, r.AccessRequestID, memberID)

	suite.Require().NoError(err)
	after, err := suite.f.svc.Membership.GetMembershipSummary(ctx, suite.membership.MembershipID)
	suite.Require().NoError(err)
	suite.True(before.Balances.Passes.Remaining.Equal(after.Balances.Passes.Remaining),
		"remaining: before %s after %s", before.Balances.Passes.Remaining, after.Balances.Passes.Remaining)
	suite.True(before.Balances.Passes.Used.Equal(after.Balances.Passes.Used),
		"used: before %s after %s", before.Balances.Passes.Used, after.Balances.Passes.Used)
}

func (suite *AccessRequestServiceTestSuite) TestPasses_IneligibleService() {
	booth := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) {
		req.Code = "BOOTH-1"
		req.ServiceType = domain.ServicePhoneBooth
	})
	r := suite.mustBook(booth.ServiceID, slotStart, "1", domain.PaymentPasses)

	_, err := suite.f.svc.AccessRequest.Submit(context.Background(), r.AccessRequestID, memberID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccessRequestServiceTestSuite) TestCallRoomHours_FractionalUsage() {
	ctx := context.Background()
	booth := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) {
		req.Code = "BOOTH-1"
		req.ServiceType = domain.ServicePhoneBooth
		req.RequiresApproval = ptr(false)
	})
	r := suite.mustBook(booth.ServiceID, slotStart, "1.5", domain.PaymentCallRoomHours)

	approved, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestApproved, approved.State)
	suite.True(dec("1.5").Equal(approved.CallRoomHoursUsed))
	summary, err := suite.f.svc.Membership.GetMembershipSummary(ctx, suite.membership.MembershipID)
	suite.Require().NoError(err)
	suite.True(dec("3.5").Equal(summary.Balances.CallRoomHours.Remaining))
	suite.True(dec("1.5").Equal(summary.Balances.CallRoomHours.Used))
}

func (suite *AccessRequestServiceTestSuite) TestCallRoomHours_CancelAfterDurationEditReturnsStampedHours() {
	ctx := context.Background()
	booth := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) {
		req.Code = "BOOTH-1"
		req.ServiceType = domain.ServicePhoneBooth
	})
	before, err := suite.f.svc.Membership.GetMembershipSummary(ctx, suite.membership.MembershipID)
	suite.Require().NoError(err)
	r := suite.mustBook(booth.ServiceID, slotStart, "1.5", domain.PaymentCallRoomHours)
	_, err = suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.Require().NoError(err)

	hours := dec("3")
	edited, err := suite.f.svc.AccessRequest.UpdateAccessRequest(ctx, r.AccessRequestID, dto.UpdateAccessRequestRequest{DurationHours: &hours}, memberID)
	suite.Require().NoError(err)
	suite.True(dec("1.5").Equal(edited.CallRoomHoursUsed), "the settled hours do not follow the edit")

	_, err = suite.f.svc.AccessRequest.Cancel(ctx, r.AccessRequestID, memberID)

	suite.Require().NoError(err)
	after, err := suite.f.svc.Membership.GetMembershipSummary(ctx, suite.membership.MembershipID)
	suite.Require().NoError(err)
	suite.True(before.Balances.CallRoomHours.Remaining.Equal(after.Balances.CallRoomHours.Remaining),
		"remaining: before %s after %s", before.Balances.CallRoomHours.Remaining, after.Balances.CallRoomHours.Remaining)
	suite.True(before.Balances.CallRoomHours.Used.Equal(after.Balances.CallRoomHours.Used),
		"used: before %s after %s", before.Balances.CallRoomHours.Used, after.Balances.CallRoomHours.Used)
}

func (suite *AccessRequestServiceTestSuite) TestCallRoomHours_OnlyPhoneBooths() {
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentCallRoomHours)

	_, err := suite.f.svc.AccessRequest.Submit(context.Background(), r.AccessRequestID, memberID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccessRequestServiceTestSuite) TestInvoice_BillsDurationAtServicePrice() {
	ctx := context.Background()
	instant := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) {
		req.Code = "MR-C"
		req.RequiresApproval = ptr(false)
	})
	r := suite.mustBook(instant.ServiceID, slotStart, "3", domain.PaymentInvoice)

	approved, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestApproved, approved.State)
	suite.Require().NotNil(approved.InvoiceID)
	invoices, err := suite.f.store.FindInvoices(ctx, []string{*approved.InvoiceID})
	suite.Require().NoError(err)
	suite.Require().Len(invoices, 1)
	suite.True(dec("60").Equal(invoices[0].AmountTotal))
	suite.Equal(approved.Reference, invoices[0].Origin)
	suite.Equal("10", suite.credits())
}

func (suite *AccessRequestServiceTestSuite) TestInvoice_MissingProductRollsBack() {
	ctx := context.Background()
	unbilled := suite.f.service(suite.T(), func(req *dto.CreateServiceRequest) {
		req.Code = "MR-X"
		req.ProductID = nil
		req.RequiresApproval = ptr(false)
	})
	r := suite.mustBook(unbilled.ServiceID, slotStart, "1", domain.PaymentInvoice)

	_, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)

	suite.ErrorIs(err, apperrors.ErrMissingConfiguration)
	current, err := suite.f.svc.AccessRequest.GetAccessRequestByID(ctx, r.AccessRequestID)
	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestDraft, current.State)
	suite.Nil(current.InvoiceID)
	suite.f.notifier.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, r.AccessRequestID)
}

func (suite *AccessRequestServiceTestSuite) TestFree_PaidServiceRejected() {
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentFree)

	_, err := suite.f.svc.AccessRequest.Submit(context.Background(), r.AccessRequestID, memberID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccessRequestServiceTestSuite) TestWorkflow_InvalidTransitions() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentCredits)

	_, err := suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition, "drafts must be submitted first")

	_, err = suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Reject(ctx, r.AccessRequestID, adminID)
	suite.Require().NoError(err)

	_, err = suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	_, err = suite.f.svc.AccessRequest.Cancel(ctx, r.AccessRequestID, adminID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *AccessRequestServiceTestSuite) TestUpdate_RecomputesUnsettledCosts() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentCredits)
	hours := dec("3")

	updated, err := suite.f.svc.AccessRequest.UpdateAccessRequest(ctx, r.AccessRequestID, dto.UpdateAccessRequestRequest{DurationHours: &hours}, memberID)

	suite.Require().NoError(err)
	suite.Equal(int64(6), updated.CreditsCost)
	suite.True(dec("60").Equal(updated.Price))
}

func (suite *AccessRequestServiceTestSuite) TestUpdate_ApprovedKeepsMethodAndCosts() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentCredits)
	_, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.Require().NoError(err)

	invoice := domain.PaymentInvoice
	_, err = suite.f.svc.AccessRequest.UpdateAccessRequest(ctx, r.AccessRequestID, dto.UpdateAccessRequestRequest{PaymentMethod: &invoice}, memberID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)

	description := "Board meeting"
	hours := dec("2")
	updated, err := suite.f.svc.AccessRequest.UpdateAccessRequest(ctx, r.AccessRequestID, dto.UpdateAccessRequestRequest{
		Description:   &description,
		DurationHours: &hours,
	}, memberID)
	suite.Require().NoError(err)
	suite.Equal(description, updated.Description)
	suite.Equal(int64(2), updated.CreditsCost, "settled costs are frozen")
}

func (suite *AccessRequestServiceTestSuite) TestUpdate_MoveIntoTakenSlot() {
	ctx := context.Background()
	suite.mustBook(suite.room.ServiceID, slotStart, "2", domain.PaymentCredits)
	later := suite.mustBook(suite.room.ServiceID, slotStart.Add(3*time.Hour), "1", domain.PaymentCredits)
	moved := slotStart.Add(time.Hour)

	_, err := suite.f.svc.AccessRequest.UpdateAccessRequest(ctx, later.AccessRequestID, dto.UpdateAccessRequestRequest{ScheduledStart: &moved}, memberID)

	suite.ErrorIs(err, apperrors.ErrSchedulingConflict)
}

func (suite *AccessRequestServiceTestSuite) TestNotifications() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentCredits)

	_, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.AccessRequest.Approve(ctx, r.AccessRequestID, adminID)
	suite.Require().NoError(err)

	suite.f.notifier.AssertCalled(suite.T(), "Send", mock.Anything, domain.TemplateAccessRequestSubmitted, r.AccessRequestID)
	suite.f.notifier.AssertCalled(suite.T(), "Send", mock.Anything, domain.TemplateAccessRequestApproved, r.AccessRequestID)
}

func (suite *AccessRequestServiceTestSuite) TestNotifications_FailureDoesNotFailWorkflow() {
	ctx := context.Background()
	suite.f.notifier.ExpectedCalls = nil
	suite.f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentCredits)

	pending, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccessRequestPending, pending.State)
	suite.f.notifier.AssertNumberOfCalls(suite.T(), "Send", 1)
}

func (suite *AccessRequestServiceTestSuite) TestListAccessRequests_ByState() {
	ctx := context.Background()
	r := suite.mustBook(suite.room.ServiceID, slotStart, "1", domain.PaymentCredits)
	suite.mustBook(suite.room.ServiceID, slotStart.Add(2*time.Hour), "1", domain.PaymentCredits)
	_, err := suite.f.svc.AccessRequest.Submit(ctx, r.AccessRequestID, memberID)
	suite.Require().NoError(err)

	page, err := suite.f.svc.AccessRequest.ListAccessRequests(ctx, dto.ListAccessRequestsParams{
		MembershipID: suite.membership.MembershipID,
		State:        domain.AccessRequestPending,
	})

	suite.Require().NoError(err)
	suite.Require().Len(page.AccessRequests, 1)
	suite.Equal(r.AccessRequestID, page.AccessRequests[0].AccessRequestID)
}
