package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type MembershipServiceTestSuite struct {
	suite.Suite
	f    *serviceFixture
	plan *domain.MembershipPlan
}

func (suite *MembershipServiceTestSuite) SetupTest() {
	suite.f = newServiceFixture(nil)
	suite.plan = suite.f.plan(suite.T(), nil)
}

func TestMembershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipServiceTestSuite))
}

func (suite *MembershipServiceTestSuite) requireBalance(actual domain.EntitlementBalance, granted, used, remaining string) {
	suite.True(dec(granted).Equal(actual.Granted), "granted: got %s", actual.Granted)
	suite.True(dec(used).Equal(actual.Used), "used: got %s", actual.Used)
	suite.True(dec(remaining).Equal(actual.Remaining), "remaining: got %s", actual.Remaining)
}

func (suite *MembershipServiceTestSuite) TestCreateMembership_ComputesEndDateAndReference() {
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	suite.Equal(domain.MembershipDraft, m.State)
	suite.Equal("MEM-000001", m.Reference)
	suite.Equal(domain.DateOf(testNow), m.DateStart)
	suite.Equal(domain.DateOf(testNow).AddDate(0, 0, 30), m.DateEnd)
	suite.Empty(m.InvoiceIDs)
}

func (suite *MembershipServiceTestSuite) TestCreateMembership_RejectsWrongResourceKind() {
	bed := suite.f.resource(suite.T(), domain.ResourceBed, "B-01", nil)

	_, err := suite.f.svc.Membership.CreateMembership(context.Background(), dto.CreateMembershipRequest{
		MemberID:   memberID,
		PlanID:     suite.plan.PlanID,
		ResourceID: &bed.ResourceID,
		DateStart:  testNow,
	}, adminID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MembershipServiceTestSuite) TestConfirm_ReservesDeskAndGrantsBenefits() {
	ctx := context.Background()
	desk := suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	confirmed, err := suite.f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.MembershipConfirmed, confirmed.State)
	suite.Require().NotNil(confirmed.ResourceID)
	suite.Equal(desk.ResourceID, *confirmed.ResourceID)
	suite.Require().NotNil(confirmed.BenefitPeriodStart)
	suite.Equal(testNow, *confirmed.BenefitPeriodStart)

	reserved, err := suite.f.svc.Resource.GetResourceByID(ctx, desk.ResourceID)
	suite.Require().NoError(err)
	suite.Equal(domain.ResourceReserved, reserved.State)
	suite.Require().NotNil(reserved.MembershipID)
	suite.Equal(m.MembershipID, *reserved.MembershipID)

	summary, err := suite.f.svc.Membership.GetMembershipSummary(ctx, m.MembershipID)
	suite.Require().NoError(err)
	suite.requireBalance(summary.Balances.Credits, "10", "0", "10")
	suite.requireBalance(summary.Balances.Passes, "4", "0", "4")
	suite.requireBalance(summary.Balances.CallRoomHours, "5", "0", "5")
}

func (suite *MembershipServiceTestSuite) TestConfirm_NoDeskAvailableLeavesDraft() {
	ctx := context.Background()
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	_, err := suite.f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)

	suite.ErrorIs(err, apperrors.ErrResourceUnavailable)
	current, err := suite.f.svc.Membership.GetMembershipByID(ctx, m.MembershipID)
	suite.Require().NoError(err)
	suite.Equal(domain.MembershipDraft, current.State)
	balance, err := suite.f.svc.Ledger.Balance(ctx, memberID, domain.EntitlementCredits)
	suite.Require().NoError(err)
	suite.True(balance.IsZero(), "no benefits may be granted by a failed confirmation")
}

func (suite *MembershipServiceTestSuite) TestConfirm_RequiresAcceptedPolicies() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	plan := suite.f.plan(suite.T(), func(req *dto.CreatePlanRequest) {
		req.Name = "Resident"
		req.PolicyIDs = []string{"house-rules"}
	})
	m := suite.f.membership(suite.T(), plan.PlanID, nil)

	_, err := suite.f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.f.svc.Membership.AcceptPolicies(ctx, m.MembershipID, memberID)
	suite.Require().NoError(err)
	confirmed, err := suite.f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)
	suite.Require().NoError(err)
	suite.True(confirmed.PoliciesAccepted)
}

func (suite *MembershipServiceTestSuite) TestConfirm_RentsExclusiveFloor() {
	ctx := context.Background()
	floor := suite.f.resource(suite.T(), domain.ResourceFloor, "F-03", func(req *dto.CreateResourceRequest) {
		req.IsExclusive = true
	})
	plan := suite.f.plan(suite.T(), func(req *dto.CreatePlanRequest) {
		req.Name = "Team Floor"
		req.AllowsExclusiveFloor = true
	})
	m := suite.f.membership(suite.T(), plan.PlanID, &floor.ResourceID)

	_, err := suite.f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.Membership.Activate(ctx, m.MembershipID, adminID)
	suite.Require().NoError(err)

	rented, err := suite.f.svc.Resource.GetResourceByID(ctx, floor.ResourceID)
	suite.Require().NoError(err)
	suite.Equal(domain.ResourceRented, rented.State)
	suite.Require().NotNil(rented.DateEnd)
	suite.Equal(m.DateEnd, *rented.DateEnd)
}

func (suite *MembershipServiceTestSuite) TestLifecycle_ActivateAndExpireReleaseDesk() {
	ctx := context.Background()
	desk := suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	active := suite.f.activeMembership(suite.T(), suite.plan.PlanID)

	occupied, err := suite.f.svc.Resource.GetResourceByID(ctx, desk.ResourceID)
	suite.Require().NoError(err)
	suite.Equal(domain.ResourceOccupied, occupied.State)

	expired, err := suite.f.svc.Membership.Expire(ctx, active.MembershipID, adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.MembershipExpired, expired.State)
	suite.Require().NotNil(expired.ResourceID, "the binding stays on the record for history")

	released, err := suite.f.svc.Resource.GetResourceByID(ctx, desk.ResourceID)
	suite.Require().NoError(err)
	suite.Equal(domain.ResourceAvailable, released.State)
	suite.Nil(released.MembershipID)

	_, err = suite.f.svc.Membership.Cancel(ctx, active.MembershipID, adminID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *MembershipServiceTestSuite) TestActivate_FromDraftIsInvalid() {
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	_, err := suite.f.svc.Membership.Activate(context.Background(), m.MembershipID, adminID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *MembershipServiceTestSuite) TestUpdateMembership_OnlyDrafts() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)
	later := testNow.AddDate(0, 0, 5)

	updated, err := suite.f.svc.Membership.UpdateMembership(ctx, m.MembershipID, dto.UpdateMembershipRequest{DateStart: &later}, adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.DateOf(later).AddDate(0, 0, 30), updated.DateEnd)

	_, err = suite.f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)
	suite.Require().NoError(err)
	notes := "late edit"
	_, err = suite.f.svc.Membership.UpdateMembership(ctx, m.MembershipID, dto.UpdateMembershipRequest{Notes: &notes}, adminID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *MembershipServiceTestSuite) TestRenew_CreatesDraftSuccessor() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	active := suite.f.activeMembership(suite.T(), suite.plan.PlanID)

	renewed, err := suite.f.svc.Membership.Renew(ctx, active.MembershipID, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.MembershipDraft, renewed.State)
	suite.Equal(active.DateEnd, renewed.DateStart)
	suite.Equal(active.DateEnd.AddDate(0, 0, 30), renewed.DateEnd)
	suite.Require().NotNil(renewed.RenewedFromID)
	suite.Equal(active.MembershipID, *renewed.RenewedFromID)
	suite.Equal(active.ResourceID, renewed.ResourceID)
	suite.Empty(renewed.InvoiceIDs)
	suite.NotEqual(active.Reference, renewed.Reference)

	original, err := suite.f.svc.Membership.GetMembershipByID(ctx, active.MembershipID)
	suite.Require().NoError(err)
	suite.Equal(domain.MembershipActive, original.State)
}

func (suite *MembershipServiceTestSuite) TestRenew_DraftIsInvalid() {
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	_, err := suite.f.svc.Membership.Renew(context.Background(), m.MembershipID, adminID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *MembershipServiceTestSuite) TestRenewMonthlyBenefits_ResetsPeriodUsageAndAddsCredits() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	active := suite.f.activeMembership(suite.T(), suite.plan.PlanID)
	membershipID := active.MembershipID

	for _, use := range []struct {
		entitlement domain.Entitlement
		amount      string
	}{
		{domain.EntitlementPasses, "-1"},
		{domain.EntitlementCallRoomHours, "-1.5"},
		{domain.EntitlementCredits, "-3"},
	} {
		_, err := suite.f.svc.Ledger.Append(ctx, domain.LedgerEntry{
			MemberID: memberID, MembershipID: &membershipID, Entitlement: use.entitlement,
			Kind: domain.LedgerUsed, Amount: dec(use.amount),
		})
		suite.Require().NoError(err)
	}

	before, err := suite.f.svc.Membership.GetMembershipSummary(ctx, membershipID)
	suite.Require().NoError(err)
	suite.requireBalance(before.Balances.Passes, "4", "1", "3")
	suite.requireBalance(before.Balances.CallRoomHours, "5", "1.5", "3.5")

	suite.f.advance(31 * 24 * time.Hour)
	renewed, err := suite.f.svc.Membership.RenewMonthlyBenefits(ctx, membershipID, adminID)
	suite.Require().NoError(err)
	suite.Equal(suite.f.clock.Now(), *renewed.BenefitPeriodStart)

	after, err := suite.f.svc.Membership.GetMembershipSummary(ctx, membershipID)
	suite.Require().NoError(err)
	suite.requireBalance(after.Balances.Passes, "4", "0", "4")
	suite.requireBalance(after.Balances.CallRoomHours, "5", "0", "5")
	// credits carry over: 10 granted - 3 used + 10 renewal
	suite.requireBalance(after.Balances.Credits, "10", "3", "17")
}

func (suite *MembershipServiceTestSuite) TestRenewMonthlyBenefits_OnlyActive() {
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	_, err := suite.f.svc.Membership.RenewMonthlyBenefits(context.Background(), m.MembershipID, adminID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *MembershipServiceTestSuite) TestCreateInvoice_LinksInvoiceAndSummarizesAmounts() {
	ctx := context.Background()
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	invoice, err := suite.f.svc.Membership.CreateInvoice(ctx, m.MembershipID, adminID)

	suite.Require().NoError(err)
	suite.True(dec("250").Equal(invoice.AmountTotal))
	suite.Equal(m.Reference, invoice.Origin)
	suite.Equal(memberID, invoice.PartnerID)

	summary, err := suite.f.svc.Membership.GetMembershipSummary(ctx, m.MembershipID)
	suite.Require().NoError(err)
	suite.Equal([]string{invoice.InvoiceID}, summary.Membership.InvoiceIDs)
	suite.True(dec("250").Equal(summary.Amounts.Total))
	suite.True(dec("250").Equal(summary.Amounts.Due))
	suite.True(summary.Amounts.Paid.IsZero())
}

func (suite *MembershipServiceTestSuite) TestCreateInvoice_PlanWithoutProduct() {
	ctx := context.Background()
	plan := suite.f.planWithoutProduct(suite.T(), false)
	m := suite.f.membership(suite.T(), plan.PlanID, nil)

	_, err := suite.f.svc.Membership.CreateInvoice(ctx, m.MembershipID, adminID)
	suite.ErrorIs(err, apperrors.ErrMissingConfiguration)

	_, err = suite.f.svc.Membership.CreateSubscription(ctx, m.MembershipID, adminID)
	suite.ErrorIs(err, apperrors.ErrMissingConfiguration)
}

func (suite *MembershipServiceTestSuite) TestCreateSubscription() {
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	request, err := suite.f.svc.Membership.CreateSubscription(context.Background(), m.MembershipID, adminID)

	suite.Require().NoError(err)
	suite.Equal(m.Reference, request.Origin)
	suite.Require().Len(request.Lines, 1)
	suite.Equal(*suite.plan.ProductID, request.Lines[0].ProductID)
}

func (suite *MembershipServiceTestSuite) TestPortalToken() {
	ctx := context.Background()
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	token, err := suite.f.svc.Membership.IssuePortalToken(ctx, m.MembershipID, adminID)
	suite.Require().NoError(err)
	suite.NotEmpty(token)

	summary, err := suite.f.svc.Membership.GetSummaryWithToken(ctx, m.MembershipID, token)
	suite.Require().NoError(err)
	suite.Equal(m.MembershipID, summary.Membership.MembershipID)

	_, err = suite.f.svc.Membership.GetSummaryWithToken(ctx, m.MembershipID, token+"x")
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.f.svc.Membership.GetSummaryWithToken(ctx, "missing", token)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	rotated, err := suite.f.svc.Membership.IssuePortalToken(ctx, m.MembershipID, adminID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.Membership.GetSummaryWithToken(ctx, m.MembershipID, token)
	suite.ErrorIs(err, apperrors.ErrForbidden, "the previous token stops working once rotated")
	_, err = suite.f.svc.Membership.GetSummaryWithToken(ctx, m.MembershipID, rotated)
	suite.NoError(err)
}

func (suite *MembershipServiceTestSuite) TestListMemberships_FiltersByState() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	suite.f.activeMembership(suite.T(), suite.plan.PlanID)
	suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	page, err := suite.f.svc.Membership.ListMemberships(ctx, dto.ListMembershipsParams{
		State:      domain.MembershipDraft,
		PageParams: dto.PageParams{Limit: 10},
	})

	suite.Require().NoError(err)
	suite.Len(page.Memberships, 1)
	suite.Nil(page.NextToken)
}

func (suite *MembershipServiceTestSuite) TestRateMembership_RecordsThenReplacesRating() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	active := suite.f.activeMembership(suite.T(), suite.plan.PlanID)

	rating, err := suite.f.svc.Membership.RateMembership(ctx, active.MembershipID, dto.RateMembershipRequest{
		Score:    4,
		Feedback: "Good coffee, noisy afternoons",
	}, memberID)

	suite.Require().NoError(err)
	suite.Equal(4, rating.Score)
	suite.Equal(domain.SpaceCoworking, rating.SpaceType)
	suite.Equal(memberID, rating.MemberID)
	suite.Equal(domain.DateOf(testNow), rating.RatedOn)

	linked, err := suite.f.svc.Membership.GetMembershipByID(ctx, active.MembershipID)
	suite.Require().NoError(err)
	suite.Require().NotNil(linked.RatingID)
	suite.Equal(rating.RatingID, *linked.RatingID)

	suite.f.advance(24 * time.Hour)
	again, err := suite.f.svc.Membership.RateMembership(ctx, active.MembershipID, dto.RateMembershipRequest{Score: 5}, memberID)
	suite.Require().NoError(err)
	suite.Equal(rating.RatingID, again.RatingID, "a membership keeps a single rating")
	suite.Equal(5, again.Score)
	suite.Empty(again.Feedback)
	suite.Equal(domain.DateOf(testNow).AddDate(0, 0, 1), again.RatedOn)

	stored, err := suite.f.svc.Membership.GetRating(ctx, active.MembershipID)
	suite.Require().NoError(err)
	suite.Equal(5, stored.Score)
}

func (suite *MembershipServiceTestSuite) TestRateMembership_DraftIsInvalid() {
	ctx := context.Background()
	m := suite.f.membership(suite.T(), suite.plan.PlanID, nil)

	_, err := suite.f.svc.Membership.RateMembership(ctx, m.MembershipID, dto.RateMembershipRequest{Score: 3}, memberID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	_, err = suite.f.svc.Membership.GetRating(ctx, m.MembershipID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MembershipServiceTestSuite) TestRateMembership_ScoreOutOfRange() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	active := suite.f.activeMembership(suite.T(), suite.plan.PlanID)

	_, err := suite.f.svc.Membership.RateMembership(ctx, active.MembershipID, dto.RateMembershipRequest{Score: 6}, memberID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	unrated, err := suite.f.svc.Membership.GetMembershipByID(ctx, active.MembershipID)
	suite.Require().NoError(err)
	suite.Nil(unrated.RatingID)
}

func (suite *MembershipServiceTestSuite) TestRenew_DoesNotCarryRating() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	active := suite.f.activeMembership(suite.T(), suite.plan.PlanID)
	_, err := suite.f.svc.Membership.RateMembership(ctx, active.MembershipID, dto.RateMembershipRequest{Score: 2}, memberID)
	suite.Require().NoError(err)

	renewed, err := suite.f.svc.Membership.Renew(ctx, active.MembershipID, adminID)

	suite.Require().NoError(err)
	suite.Nil(renewed.RatingID)
	_, err = suite.f.svc.Membership.GetRating(ctx, renewed.MembershipID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
