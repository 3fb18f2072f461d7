// Package memory is an in-process store implementing every repository port, the billing
// gateway and the reference sequence. It backs STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	"github.com/SscSPs/cowork_membership_app/internal/utils/pagination"
)

type txKey struct{}

// Store keeps all records in maps guarded by mu. Transactions are serialized by txMu and
// roll back by restoring a snapshot taken at begin.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	plans          map[string]domain.MembershipPlan
	services       map[string]domain.Service
	resources      map[string]domain.Resource
	memberships    map[string]domain.Membership
	ledger         []domain.LedgerEntry
	accessRequests map[string]domain.AccessRequest
	deposits       map[string]domain.SecurityDeposit
	leads          map[string]domain.Lead
	ratings        map[string]domain.MembershipRating
	notes          []domain.RecordNote

	products        map[string]domain.BillableProduct
	invoices        map[string]domain.Invoice
	billingRequests map[string]domain.BillingRequest
	sequences       map[domain.SequenceCode]int64

	now func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *Store {
	return &Store{
		plans:           make(map[string]domain.MembershipPlan),
		services:        make(map[string]domain.Service),
		resources:       make(map[string]domain.Resource),
		memberships:     make(map[string]domain.Membership),
		accessRequests:  make(map[string]domain.AccessRequest),
		deposits:        make(map[string]domain.SecurityDeposit),
		leads:           make(map[string]domain.Lead),
		ratings:         make(map[string]domain.MembershipRating),
		products:        make(map[string]domain.BillableProduct),
		invoices:        make(map[string]domain.Invoice),
		billingRequests: make(map[string]domain.BillingRequest),
		sequences:       make(map[domain.SequenceCode]int64),
		now:             time.Now,
	}
}

// SetClock makes the store stamp billing documents with clock instead of the wall clock.
func (s *Store) SetClock(clock gateways.Clock) {
	s.now = clock.Now
}

var (
	_ portsrepo.TransactionManager            = (*Store)(nil)
	_ portsrepo.PlanRepositoryFacade          = (*Store)(nil)
	_ portsrepo.ServiceRepositoryFacade       = (*Store)(nil)
	_ portsrepo.ResourceRepositoryFacade      = (*Store)(nil)
	_ portsrepo.MembershipRepositoryFacade    = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade        = (*Store)(nil)
	_ portsrepo.AccessRequestRepositoryFacade = (*Store)(nil)
	_ portsrepo.DepositRepositoryFacade       = (*Store)(nil)
	_ portsrepo.LeadRepositoryFacade          = (*Store)(nil)
	_ portsrepo.RatingRepositoryFacade        = (*Store)(nil)
	_ portsrepo.NoteRepositoryFacade          = (*Store)(nil)
	_ gateways.BillingGateway                 = (*Store)(nil)
	_ gateways.SequenceGenerator              = (*Store)(nil)
)

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:         s,
		PlanRepo:          s,
		ServiceRepo:       s,
		ResourceRepo:      s,
		MembershipRepo:    s,
		LedgerRepo:        s,
		AccessRequestRepo: s,
		DepositRepo:       s,
		LeadRepo:          s,
		RatingRepo:        s,
		NoteRepo:          s,
	}
}

type snapshot struct {
	plans           map[string]domain.MembershipPlan
	services        map[string]domain.Service
	resources       map[string]domain.Resource
	memberships     map[string]domain.Membership
	ledgerLen       int
	accessRequests  map[string]domain.AccessRequest
	deposits        map[string]domain.SecurityDeposit
	leads           map[string]domain.Lead
	ratings         map[string]domain.MembershipRating
	notesLen        int
	products        map[string]domain.BillableProduct
	invoices        map[string]domain.Invoice
	billingRequests map[string]domain.BillingRequest
	sequences       map[domain.SequenceCode]int64
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		plans:           copyMap(s.plans),
		services:        copyMap(s.services),
		resources:       copyMap(s.resources),
		memberships:     copyMap(s.memberships),
		ledgerLen:       len(s.ledger),
		accessRequests:  copyMap(s.accessRequests),
		deposits:        copyMap(s.deposits),
		leads:           copyMap(s.leads),
		ratings:         copyMap(s.ratings),
		notesLen:        len(s.notes),
		products:        copyMap(s.products),
		invoices:        copyMap(s.invoices),
		billingRequests: copyMap(s.billingRequests),
		sequences:       copyMap(s.sequences),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = snap.plans
	s.services = snap.services
	s.resources = snap.resources
	s.memberships = snap.memberships
	s.ledger = s.ledger[:snap.ledgerLen]
	s.accessRequests = snap.accessRequests
	s.deposits = snap.deposits
	s.leads = snap.leads
	s.ratings = snap.ratings
	s.notes = s.notes[:snap.notesLen]
	s.products = snap.products
	s.invoices = snap.invoices
	s.billingRequests = snap.billingRequests
	s.sequences = snap.sequences
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(bool)
	return ok
}

// WithinTransaction runs fn atomically. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.takeSnapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// write applies a mutation. Outside a transaction it waits for running transactions so a
// later rollback cannot discard it.
func (s *Store) write(ctx context.Context, fn func() error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// read runs fn under the read lock.
func (s *Store) read(ctx context.Context, fn func() error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// NextReference hands out the next reference of a sequence.
func (s *Store) NextReference(ctx context.Context, code domain.SequenceCode) (string, error) {
	var ref string
	err := s.write(ctx, func() error {
		s.sequences[code]++
		ref = code.FormatReference(s.sequences[code])
		return nil
	})
	return ref, err
}

// page sorts items newest first by (at, id), applies the cursor and cuts one page.
func page[T any](items []T, key func(T) (time.Time, string), limit int, nextToken *string) ([]T, *string, error) {
	cursor, err := pagination.DecodeOptional(nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	sort.Slice(items, func(i, j int) bool {
		ai, ii := key(items[i])
		aj, ij := key(items[j])
		if ai.Equal(aj) {
			return ii > ij
		}
		return ai.After(aj)
	})
	limit = pagination.NormalizeLimit(limit)
	out := make([]T, 0, limit)
	for _, item := range items {
		at, id := key(item)
		if cursor != nil && !cursor.After(at, id) {
			continue
		}
		if len(out) == limit {
			last := out[len(out)-1]
			lastAt, lastID := key(last)
			token := pagination.EncodeToken(lastAt, lastID)
			return out, &token, nil
		}
		out = append(out, item)
	}
	return out, nil, nil
}
