package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager         TransactionManager
	PlanRepo          PlanRepositoryFacade
	ServiceRepo       ServiceRepositoryFacade
	ResourceRepo      ResourceRepositoryFacade
	MembershipRepo    MembershipRepositoryFacade
	LedgerRepo        LedgerRepositoryFacade
	AccessRequestRepo AccessRequestRepositoryFacade
	DepositRepo       DepositRepositoryFacade
	LeadRepo          LeadRepositoryFacade
	RatingRepo        RatingRepositoryFacade
	NoteRepo          NoteRepositoryFacade
}
