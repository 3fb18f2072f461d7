package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	f *serviceFixture
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.f = newServiceFixture(nil)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func (suite *InventoryServiceTestSuite) TestCreateResource_Taxonomy() {
	ctx := context.Background()

	_, err := suite.f.svc.Resource.CreateResource(ctx, dto.CreateResourceRequest{
		Kind: domain.ResourceDesk, Name: "Desk", Code: "D-09", ResourceType: domain.BedBunk,
	}, adminID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	floor := suite.f.resource(suite.T(), domain.ResourceFloor, "F-01", nil)
	desk := suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", func(req *dto.CreateResourceRequest) {
		req.FloorID = &floor.ResourceID
	})
	suite.Equal(floor.ResourceID, *desk.FloorID)
	suite.Equal(domain.ResourceAvailable, desk.State)

	_, err = suite.f.svc.Resource.CreateResource(ctx, dto.CreateResourceRequest{
		Kind: domain.ResourceBed, Name: "Bed", Code: "B-09", ResourceType: domain.BedSingle, FloorID: &desk.ResourceID,
	}, adminID)
	suite.ErrorIs(err, apperrors.ErrValidation, "resources sit on floors only")
}

func (suite *InventoryServiceTestSuite) TestMaintenance() {
	ctx := context.Background()
	desk := suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)

	down, err := suite.f.svc.Resource.SetMaintenance(ctx, desk.ResourceID, adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.ResourceMaintenance, down.State)

	plan := suite.f.plan(suite.T(), nil)
	m := suite.f.membership(suite.T(), plan.PlanID, nil)
	_, err = suite.f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)
	suite.ErrorIs(err, apperrors.ErrResourceUnavailable, "desks under maintenance are not handed out")

	up, err := suite.f.svc.Resource.ReleaseMaintenance(ctx, desk.ResourceID, adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.ResourceAvailable, up.State)

	_, err = suite.f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)
	suite.Require().NoError(err)
	_, err = suite.f.svc.Resource.SetMaintenance(ctx, desk.ResourceID, adminID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition, "bound resources stay in service")
}

func (suite *InventoryServiceTestSuite) TestListResources_Filters() {
	ctx := context.Background()
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-01", nil)
	suite.f.resource(suite.T(), domain.ResourceDesk, "D-02", func(req *dto.CreateResourceRequest) {
		req.ResourceType = domain.DeskPrivateCabin
		req.City = "Porto"
	})
	suite.f.resource(suite.T(), domain.ResourceBed, "B-01", nil)

	desks, err := suite.f.svc.Resource.ListResources(ctx, dto.ListResourcesParams{Kind: domain.ResourceDesk})
	suite.Require().NoError(err)
	suite.Len(desks, 2)

	porto, err := suite.f.svc.Resource.ListResources(ctx, dto.ListResourcesParams{City: "Porto"})
	suite.Require().NoError(err)
	suite.Require().Len(porto, 1)
	suite.Equal("D-02", porto[0].Code)
}

func (suite *InventoryServiceTestSuite) TestCatalog_DefaultsAndUpdate() {
	ctx := context.Background()
	room := suite.f.service(suite.T(), nil)
	suite.True(room.AllowCreditPayment)
	suite.True(room.RequiresApproval)
	suite.True(room.IsActive)

	_, err := suite.f.svc.Catalog.CreateService(ctx, dto.CreateServiceRequest{
		Name: "Sauna", Code: "SAUNA", ServiceType: "spa", SpaceType: domain.ServiceForBoth,
	}, adminID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	inactive := false
	updated, err := suite.f.svc.Catalog.UpdateService(ctx, room.ServiceID, dto.UpdateServiceRequest{IsActive: &inactive}, adminID)
	suite.Require().NoError(err)
	suite.False(updated.IsActive)

	active, err := suite.f.svc.Catalog.ListServices(ctx, true)
	suite.Require().NoError(err)
	suite.Empty(active)
}
