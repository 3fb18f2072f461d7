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

type DepositServiceTestSuite struct {
	suite.Suite
	f          *serviceFixture
	membership *domain.Membership
}

func (suite *DepositServiceTestSuite) SetupTest() {
	suite.f = newServiceFixture(nil)
	plan := suite.f.plan(suite.T(), func(req *dto.CreatePlanRequest) {
		req.Name = "Private Room"
		req.SpaceType = domain.SpaceColiving
		req.RequiresDeposit = true
		req.DepositAmount = dec("500")
	})
	suite.membership = suite.f.membership(suite.T(), plan.PlanID, nil)
}

func TestDepositServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DepositServiceTestSuite))
}

func (suite *DepositServiceTestSuite) TestLifecycle_PaidThenReturned() {
	ctx := context.Background()

	deposit, err := suite.f.svc.Deposit.CreateDeposit(ctx, suite.membership.MembershipID, adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.DepositPending, deposit.State)
	suite.Equal("DEP-000001", deposit.Reference)
	suite.True(dec("500").Equal(deposit.Amount))

	paid, err := suite.f.svc.Deposit.MarkPaid(ctx, deposit.DepositID, adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.DepositPaid, paid.State)
	suite.Require().NotNil(paid.DatePaid)
	suite.Equal(domain.DateOf(testNow), *paid.DatePaid)

	suite.f.advance(40 * 24 * time.Hour)
	returned, err := suite.f.svc.Deposit.Return(ctx, deposit.DepositID, adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.DepositReturned, returned.State)
	suite.Equal(domain.DateOf(suite.f.clock.Now()), *returned.DateReturned)

	_, err = suite.f.svc.Deposit.Withhold(ctx, deposit.DepositID, "damage", adminID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *DepositServiceTestSuite) TestWithhold_NeedsPaymentAndReason() {
	ctx := context.Background()
	deposit, err := suite.f.svc.Deposit.CreateDeposit(ctx, suite.membership.MembershipID, adminID)
	suite.Require().NoError(err)

	_, err = suite.f.svc.Deposit.Withhold(ctx, deposit.DepositID, "damage", adminID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition, "pending deposits cannot be withheld")

	_, err = suite.f.svc.Deposit.MarkPaid(ctx, deposit.DepositID, adminID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.Deposit.Withhold(ctx, deposit.DepositID, "", adminID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	withheld, err := suite.f.svc.Deposit.Withhold(ctx, deposit.DepositID, "Broken window", adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.DepositWithheld, withheld.State)
	suite.Equal("Broken window", withheld.WithholdReason)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_OnePerMembership() {
	ctx := context.Background()
	_, err := suite.f.svc.Deposit.CreateDeposit(ctx, suite.membership.MembershipID, adminID)
	suite.Require().NoError(err)

	_, err = suite.f.svc.Deposit.CreateDeposit(ctx, suite.membership.MembershipID, adminID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_PlanWithoutDeposit() {
	plan := suite.f.plan(suite.T(), nil)
	m := suite.f.membership(suite.T(), plan.PlanID, nil)

	_, err := suite.f.svc.Deposit.CreateDeposit(context.Background(), m.MembershipID, adminID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}
