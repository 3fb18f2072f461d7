package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/core/services"
	"github.com/SscSPs/cowork_membership_app/internal/dto"
	"github.com/SscSPs/cowork_membership_app/internal/platform/config"
	"github.com/SscSPs/cowork_membership_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	adminID  = "admin-1"
	memberID = "member-1"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

var _ gateways.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Send(ctx context.Context, templateID, recordID string) error {
	args := m.Called(ctx, templateID, recordID)
	return args.Error(0)
}

// serviceFixture wires the real services over the in-memory store.
type serviceFixture struct {
	store    *memory.Store
	clock    *gateways.FixedClock
	notifier *MockNotifier
	svc      *portssvc.ServiceContainer
}

func newServiceFixture(packages domain.CreditPackageCatalog) *serviceFixture {
	store := memory.NewMemoryStore()
	clock := &gateways.FixedClock{At: testNow}
	store.SetClock(clock)
	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := &config.Config{RenewalReminderDays: 7}
	container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(store), services.Gateways{
		Billing:  store,
		Sequence: store,
		Notifier: notifier,
		Clock:    clock,
	}, packages)

	return &serviceFixture{store: store, clock: clock, notifier: notifier, svc: container}
}

func (f *serviceFixture) advance(d time.Duration) {
	f.clock.At = f.clock.At.Add(d)
}

func (f *serviceFixture) plan(t *testing.T, mutate func(req *dto.CreatePlanRequest)) *domain.MembershipPlan {
	t.Helper()
	req := dto.CreatePlanRequest{
		Name:                  "Flex Monthly",
		SpaceType:             domain.SpaceCoworking,
		DurationUnit:          domain.DurationMonthly,
		DurationValue:         1,
		Price:                 decimal.NewFromInt(250),
		CurrencyCode:          "EUR",
		CreditsIncluded:       10,
		PassesIncluded:        4,
		CallRoomHoursIncluded: decimal.NewFromInt(5),
		IsRecurring:           true,
	}
	if mutate != nil {
		mutate(&req)
	}
	plan, err := f.svc.Plan.CreatePlan(context.Background(), req, adminID)
	require.NoError(t, err)
	return plan
}

// planWithoutProduct stores a plan that was never registered with billing.
func (f *serviceFixture) planWithoutProduct(t *testing.T, autoRenew bool) *domain.MembershipPlan {
	t.Helper()
	plan := domain.MembershipPlan{
		PlanID:          "plan-no-product",
		Name:            "Legacy Desk",
		SpaceType:       domain.SpaceCoworking,
		DurationUnit:    domain.DurationMonthly,
		DurationValue:   1,
		Price:           decimal.NewFromInt(200),
		CurrencyCode:    "EUR",
		CreditsIncluded: 5,
		AutoRenew:       autoRenew,
		IsActive:        true,
	}
	require.NoError(t, f.store.SavePlan(context.Background(), plan))
	return &plan
}

func (f *serviceFixture) resource(t *testing.T, kind domain.ResourceKind, code string, mutate func(req *dto.CreateResourceRequest)) *domain.Resource {
	t.Helper()
	req := dto.CreateResourceRequest{
		Kind:     kind,
		Name:     code,
		Code:     code,
		City:     "Lisbon",
		Capacity: 1,
	}
	switch kind {
	case domain.ResourceDesk:
		req.ResourceType = domain.DeskFlexible
	case domain.ResourceBed:
		req.ResourceType = domain.BedSingle
	}
	if mutate != nil {
		mutate(&req)
	}
	resource, err := f.svc.Resource.CreateResource(context.Background(), req, adminID)
	require.NoError(t, err)
	return resource
}

func (f *serviceFixture) product(t *testing.T, name string) string {
	t.Helper()
	productID, err := f.store.UpsertProduct(context.Background(), domain.BillableProduct{Name: name, IsService: true})
	require.NoError(t, err)
	return productID
}

func (f *serviceFixture) service(t *testing.T, mutate func(req *dto.CreateServiceRequest)) *domain.Service {
	t.Helper()
	productID := f.product(t, "Meeting room hour")
	req := dto.CreateServiceRequest{
		Name:        "Meeting Room A",
		Code:        "MR-A",
		ServiceType: domain.ServiceMeetingRoom,
		SpaceType:   domain.ServiceForBoth,
		IsPaid:      true,
		Price:       decimal.NewFromInt(20),
		CreditsCost: decimal.NewFromInt(2),
		ProductID:   &productID,
	}
	if mutate != nil {
		mutate(&req)
	}
	svc, err := f.svc.Catalog.CreateService(context.Background(), req, adminID)
	require.NoError(t, err)
	return svc
}

func (f *serviceFixture) membership(t *testing.T, planID string, resourceID *string) *domain.Membership {
	t.Helper()
	m, err := f.svc.Membership.CreateMembership(context.Background(), dto.CreateMembershipRequest{
		MemberID:   memberID,
		PlanID:     planID,
		ResourceID: resourceID,
		DateStart:  f.clock.Now(),
	}, adminID)
	require.NoError(t, err)
	return m
}

// activeMembership creates, confirms and activates a membership on the plan.
func (f *serviceFixture) activeMembership(t *testing.T, planID string) *domain.Membership {
	t.Helper()
	ctx := context.Background()
	m := f.membership(t, planID, nil)
	_, err := f.svc.Membership.Confirm(ctx, m.MembershipID, adminID)
	require.NoError(t, err)
	active, err := f.svc.Membership.Activate(ctx, m.MembershipID, adminID)
	require.NoError(t, err)
	return active
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
