package services

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/platform/config"
)

// Gateways bundles the external collaborators the services talk to.
type Gateways struct {
	Billing  gateways.BillingGateway
	Sequence gateways.SequenceGenerator
	Notifier gateways.Notifier
	Clock    gateways.Clock
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw Gateways, packages domain.CreditPackageCatalog) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger is shared by every service that grants or consumes entitlements
	container.Ledger = NewLedgerService(repos.LedgerRepo, gw.Clock)

	container.Plan = NewPlanService(repos, gw.Billing, gw.Clock)
	container.Catalog = NewCatalogService(repos.ServiceRepo, gw.Clock)
	container.Resource = NewResourceService(repos, gw.Clock)
	container.Membership = NewMembershipService(repos, container.Ledger, gw.Billing, gw.Sequence, gw.Clock)
	container.Sweep = NewSweepService(repos, container.Membership, gw.Clock,
		WithSweepNotifier(gw.Notifier),
		WithReminderDays(cfg.RenewalReminderDays),
	)
	container.AccessRequest = NewAccessRequestService(repos, container.Ledger, gw.Billing, gw.Sequence, gw.Clock,
		WithAccessRequestNotifier(gw.Notifier),
	)
	container.Deposit = NewDepositService(repos, gw.Sequence, gw.Clock)
	container.CreditPackage = NewCreditPackageService(repos, container.Ledger, gw.Billing, packages, gw.Clock)
	container.Lead = NewLeadService(repos, container.Membership, gw.Clock)

	return container
}
