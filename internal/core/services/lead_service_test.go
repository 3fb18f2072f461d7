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

type LeadServiceTestSuite struct {
	suite.Suite
	f    *serviceFixture
	plan *domain.MembershipPlan
}

func (suite *LeadServiceTestSuite) SetupTest() {
	suite.f = newServiceFixture(nil)
	suite.plan = suite.f.plan(suite.T(), nil)
}

func TestLeadServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeadServiceTestSuite))
}

func (suite *LeadServiceTestSuite) intake(requestedStart *time.Time) *domain.Lead {
	lead, err := suite.f.svc.Lead.SubmitIntake(context.Background(), dto.IntakeRequest{
		ContactName:    "Rui Almeida",
		Email:          "rui@example.com",
		SpaceType:      domain.SpaceCoworking,
		City:           "Lisbon",
		RequestedStart: requestedStart,
		Requirements:   "Quiet corner, monitor",
	})
	suite.Require().NoError(err)
	return lead
}

func (suite *LeadServiceTestSuite) TestSubmitIntake_MarksCoworkLead() {
	lead := suite.intake(nil)

	suite.True(lead.IsCoworkLead)
	suite.Equal(testNow, lead.CreatedAt)
	suite.Nil(lead.MembershipID)

	page, err := suite.f.svc.Lead.ListLeads(context.Background(), dto.PageParams{})
	suite.Require().NoError(err)
	suite.Len(page.Leads, 1)
}

func (suite *LeadServiceTestSuite) TestSubmitIntake_UnknownSpaceType() {
	_, err := suite.f.svc.Lead.SubmitIntake(context.Background(), dto.IntakeRequest{
		ContactName: "Rui Almeida",
		Email:       "rui@example.com",
		SpaceType:   "office",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LeadServiceTestSuite) TestCreateMembershipFromLead_UsesRequestedStart() {
	ctx := context.Background()
	requested := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	lead := suite.intake(&requested)

	m, err := suite.f.svc.Lead.CreateMembershipFromLead(ctx, lead.LeadID, dto.CreateMembershipFromLeadRequest{
		PlanID:   suite.plan.PlanID,
		MemberID: ptr(memberID),
	}, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.MembershipDraft, m.State)
	suite.Equal(requested, m.DateStart)
	suite.Equal("Quiet corner, monitor", m.Notes)
	suite.Require().NotNil(m.LeadID)
	suite.Equal(lead.LeadID, *m.LeadID)

	converted, err := suite.f.svc.Lead.GetLeadByID(ctx, lead.LeadID)
	suite.Require().NoError(err)
	suite.Require().NotNil(converted.MembershipID)
	suite.Equal(m.MembershipID, *converted.MembershipID)
	suite.Equal(memberID, *converted.MemberID)

	_, err = suite.f.svc.Lead.CreateMembershipFromLead(ctx, lead.LeadID, dto.CreateMembershipFromLeadRequest{PlanID: suite.plan.PlanID}, adminID)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LeadServiceTestSuite) TestCreateMembershipFromLead_DefaultsToToday() {
	lead := suite.intake(nil)

	m, err := suite.f.svc.Lead.CreateMembershipFromLead(context.Background(), lead.LeadID, dto.CreateMembershipFromLeadRequest{
		PlanID:   suite.plan.PlanID,
		MemberID: ptr(memberID),
	}, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.DateOf(testNow), m.DateStart)
}

func (suite *LeadServiceTestSuite) TestCreateMembershipFromLead_RequiresMember() {
	ctx := context.Background()
	lead := suite.intake(nil)

	_, err := suite.f.svc.Lead.CreateMembershipFromLead(ctx, lead.LeadID, dto.CreateMembershipFromLeadRequest{PlanID: suite.plan.PlanID}, adminID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	unchanged, err := suite.f.svc.Lead.GetLeadByID(ctx, lead.LeadID)
	suite.Require().NoError(err)
	suite.Nil(unchanged.MembershipID)
}
