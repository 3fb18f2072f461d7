package services

// ServiceContainer holds all service interfaces the handlers and background jobs use.
type ServiceContainer struct {
	Ledger        LedgerSvcFacade
	Plan          PlanSvcFacade
	Catalog       CatalogSvcFacade
	Resource      ResourceSvcFacade
	Membership    MembershipSvcFacade
	Sweep         SweepSvc
	AccessRequest AccessRequestSvcFacade
	Deposit       DepositSvcFacade
	CreditPackage CreditPackageSvcFacade
	Lead          LeadSvcFacade
}
