package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	"github.com/SscSPs/cowork_membership_app/internal/models"
	"github.com/SscSPs/cowork_membership_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const ledgerColumns = `entry_id, member_id, membership_id, access_request_id, entitlement, kind, amount, description,
	occurred_at, expires_on, price_per_unit, invoice_id, sale_order_ref, created_by`

// PgxLedgerRepository persists the append-only entitlement ledger.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(base BaseRepository) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: base}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// ledgerWhere renders a LedgerFilter as SQL conditions.
func ledgerWhere(filter domain.LedgerFilter) *whereClause {
	w := &whereClause{}
	w.addIf("member_id = ?", filter.MemberID)
	w.addIf("membership_id = ?", filter.MembershipID)
	w.addIf("entitlement = ?", string(filter.Entitlement))
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		w.add("kind = ANY(?)", kinds)
	}
	w.addIf("sale_order_ref = ?", filter.SaleOrderRef)
	if filter.Since != nil {
		w.add("occurred_at >= ?", *filter.Since)
	}
	if filter.IgnoreExpired {
		w.add("(expires_on IS NULL OR expires_on >= ?)", domain.DateOf(filter.AsOf))
	}
	return w
}

func (r *PgxLedgerRepository) SumEntries(ctx context.Context, filter domain.LedgerFilter) (decimal.Decimal, error) {
	w := ledgerWhere(filter)
	query := `SELECT COALESCE(SUM(amount), 0) FROM entitlement_ledger` + w.String() + `;`

	var total decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, w.args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return total, nil
}

func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	w := ledgerWhere(filter)
	limitArg, err := w.keyset("occurred_at", "entry_id", limit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + ledgerColumns + ` FROM entitlement_ledger` + w.String() +
		` ORDER BY occurred_at DESC, entry_id DESC LIMIT ` + limitArg + `;`
	rows, err := r.db(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var ms []models.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.EntryID, &m.MemberID, &m.MembershipID, &m.AccessRequestID, &m.Entitlement, &m.Kind, &m.Amount, &m.Description,
			&m.OccurredAt, &m.ExpiresOn, &m.PricePerUnit, &m.InvoiceID, &m.SaleOrderRef, &m.CreatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	ms, next := trimPage(ms, limit, func(m models.LedgerEntry) (time.Time, string) { return m.OccurredAt, m.EntryID })
	return mapping.ToDomainLedgerEntrySlice(ms), next, nil
}

func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `INSERT INTO entitlement_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, m.MemberID, m.MembershipID, m.AccessRequestID, m.Entitlement, m.Kind, m.Amount, m.Description,
		m.OccurredAt, m.ExpiresOn, m.PricePerUnit, m.InvoiceID, m.SaleOrderRef, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to append ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

// LockSaleOrder takes a transaction-scoped advisory lock keyed on the order reference, so two
// deliveries of the same order check for earlier entries one after another. An order may carry
// several package lines, which rules out a unique index on the reference.
func (r *PgxLedgerRepository) LockSaleOrder(ctx context.Context, orderRef string) error {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return fmt.Errorf("sale order %s can only be locked inside a transaction", orderRef)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, "sale_order:"+orderRef); err != nil {
		return fmt.Errorf("failed to lock sale order %s: %w", orderRef, err)
	}
	return nil
}
