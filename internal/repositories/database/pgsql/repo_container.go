package pgsql

import (
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto one pool. All of them read the
// transaction carried by ctx, so WithinTransaction spans them.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}
	catalogRepo := newPgxCatalogRepository(base)
	recordsRepo := newPgxRecordsRepository(base)

	return portsrepo.RepositoryProvider{
		TxManager:         &base,
		PlanRepo:          catalogRepo,
		ServiceRepo:       catalogRepo,
		ResourceRepo:      newPgxResourceRepository(base),
		MembershipRepo:    newPgxMembershipRepository(base),
		LedgerRepo:        newPgxLedgerRepository(base),
		AccessRequestRepo: newPgxAccessRequestRepository(base),
		DepositRepo:       recordsRepo,
		LeadRepo:          recordsRepo,
		RatingRepo:        recordsRepo,
		NoteRepo:          recordsRepo,
	}
}

// NewBillingGateway returns the billing gateway backed by the same database.
func NewBillingGateway(dbPool *pgxpool.Pool, clock gateways.Clock) gateways.BillingGateway {
	return newPgxBillingRepository(BaseRepository{Pool: dbPool}, clock)
}

// NewSequenceGenerator returns the reference generator backed by the same database.
func NewSequenceGenerator(dbPool *pgxpool.Pool) gateways.SequenceGenerator {
	return newPgxSequenceRepository(BaseRepository{Pool: dbPool})
}
