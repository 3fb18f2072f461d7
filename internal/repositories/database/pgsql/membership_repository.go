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
)

const membershipColumns = `membership_id, reference, member_id, plan_id, resource_id, date_start, date_end, state,
	policies_accepted, benefit_period_start, lead_id, renewed_from_id, rating_id, notes, portal_token_hash,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxMembershipRepository persists memberships and their invoice links.
type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(base BaseRepository) *PgxMembershipRepository {
	return &PgxMembershipRepository{BaseRepository: base}
}

var _ portsrepo.MembershipRepositoryFacade = (*PgxMembershipRepository)(nil)

func scanMembershipModel(row pgx.Row) (models.Membership, error) {
	var m models.Membership
	err := row.Scan(
		&m.MembershipID, &m.Reference, &m.MemberID, &m.PlanID, &m.ResourceID, &m.DateStart, &m.DateEnd, &m.State,
		&m.PoliciesAccepted, &m.BenefitPeriodStart, &m.LeadID, &m.RenewedFromID, &m.RatingID, &m.Notes, &m.PortalTokenHash,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// invoiceIDs loads the invoice links of the given memberships, oldest link first.
func (r *PgxMembershipRepository) invoiceIDs(ctx context.Context, membershipIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(membershipIDs))
	if len(membershipIDs) == 0 {
		return out, nil
	}
	query := `SELECT membership_id, invoice_id FROM membership_invoices
		WHERE membership_id = ANY($1)
		ORDER BY linked_at, invoice_id;`
	rows, err := r.db(ctx).Query(ctx, query, membershipIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership invoices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var membershipID, invoiceID string
		if err := rows.Scan(&membershipID, &invoiceID); err != nil {
			return nil, fmt.Errorf("failed to scan membership invoice row: %w", err)
		}
		out[membershipID] = append(out[membershipID], invoiceID)
	}
	return out, rows.Err()
}

func (r *PgxMembershipRepository) findMembership(ctx context.Context, membershipID, lock string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE membership_id = $1` + lock + `;`
	m, err := scanMembershipModel(r.db(ctx).QueryRow(ctx, query, membershipID))
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: membership %s", apperrors.ErrNotFound, membershipID)
		}
		return nil, fmt.Errorf("failed to find membership by ID %s: %w", membershipID, err)
	}
	links, err := r.invoiceIDs(ctx, []string{membershipID})
	if err != nil {
		return nil, err
	}
	membership := mapping.ToDomainMembership(m, links[membershipID])
	return &membership, nil
}

func (r *PgxMembershipRepository) FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	return r.findMembership(ctx, membershipID, "")
}

func (r *PgxMembershipRepository) FindMembershipByIDForUpdate(ctx context.Context, membershipID string) (*domain.Membership, error) {
	return r.findMembership(ctx, membershipID, " FOR UPDATE")
}

func (r *PgxMembershipRepository) ListMemberships(ctx context.Context, filter domain.MembershipFilter, limit int, nextToken *string) ([]domain.Membership, *string, error) {
	var w whereClause
	w.addIf("member_id = ?", filter.MemberID)
	w.addIf("plan_id = ?", filter.PlanID)
	w.addIf("state = ?", string(filter.State))
	limitArg, err := w.keyset("created_at", "membership_id", limit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + membershipColumns + ` FROM memberships` + w.String() +
		` ORDER BY created_at DESC, membership_id DESC LIMIT ` + limitArg + `;`
	rows, err := r.db(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var ms []models.Membership
	for rows.Next() {
		m, err := scanMembershipModel(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating membership rows: %w", err)
	}
	rows.Close()

	ms, next := trimPage(ms, limit, func(m models.Membership) (time.Time, string) { return m.CreatedAt, m.MembershipID })
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.MembershipID
	}
	links, err := r.invoiceIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	memberships := make([]domain.Membership, len(ms))
	for i, m := range ms {
		memberships[i] = mapping.ToDomainMembership(m, links[m.MembershipID])
	}
	return memberships, next, nil
}

func (r *PgxMembershipRepository) CountActiveByPlan(ctx context.Context, planID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM memberships WHERE plan_id = $1 AND state IN ($2, $3);`
	err := r.db(ctx).QueryRow(ctx, query, planID, string(domain.MembershipConfirmed), string(domain.MembershipActive)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count memberships on plan %s: %w", planID, err)
	}
	return count, nil
}

func (r *PgxMembershipRepository) dueIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select due memberships: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan due membership ids: %w", err)
	}
	return ids, nil
}

func (r *PgxMembershipRepository) DueForExpiry(ctx context.Context, today time.Time) ([]string, error) {
	query := `SELECT membership_id FROM memberships
		WHERE state = $1 AND date_end < $2
		ORDER BY reference;`
	return r.dueIDs(ctx, query, string(domain.MembershipActive), domain.DateOf(today))
}

func (r *PgxMembershipRepository) DueForRenewalReminder(ctx context.Context, date time.Time) ([]string, error) {
	query := `SELECT m.membership_id FROM memberships m
		JOIN membership_plans p ON p.plan_id = m.plan_id
		WHERE m.state = $1 AND NOT p.auto_renew AND m.date_end = $2
		ORDER BY m.reference;`
	return r.dueIDs(ctx, query, string(domain.MembershipActive), domain.DateOf(date))
}

// DueForMonthlyReset narrows candidates in SQL and applies the month-end clamping of
// domain.MonthlyResetDue in Go.
func (r *PgxMembershipRepository) DueForMonthlyReset(ctx context.Context, today time.Time) ([]string, error) {
	day := domain.DateOf(today)
	query := `SELECT m.membership_id, m.date_start, m.benefit_period_start FROM memberships m
		JOIN membership_plans p ON p.plan_id = m.plan_id
		WHERE m.state = $1 AND p.is_recurring
		ORDER BY m.reference;`
	rows, err := r.db(ctx).Query(ctx, query, string(domain.MembershipActive))
	if err != nil {
		return nil, fmt.Errorf("failed to select memberships due for monthly reset: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		var start time.Time
		var periodStart *time.Time
		if err := rows.Scan(&id, &start, &periodStart); err != nil {
			return nil, fmt.Errorf("failed to scan monthly reset candidate: %w", err)
		}
		if !domain.MonthlyResetDue(start, day) {
			continue
		}
		if periodStart == nil || domain.DateOf(*periodStart).Before(day) {
			ids = append(ids, id)
		}
	}
	return ids, rows.Err()
}

func (r *PgxMembershipRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	m := mapping.ToModelMembership(membership)
	query := `INSERT INTO memberships (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.MembershipID, m.Reference, m.MemberID, m.PlanID, m.ResourceID, m.DateStart, m.DateEnd, m.State,
		m.PoliciesAccepted, m.BenefitPeriodStart, m.LeadID, m.RenewedFromID, m.RatingID, m.Notes, m.PortalTokenHash,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: membership %s already exists", apperrors.ErrDuplicate, m.Reference)
		}
		return fmt.Errorf("failed to save membership %s: %w", m.MembershipID, err)
	}
	for _, invoiceID := range membership.InvoiceIDs {
		if err := r.LinkInvoice(ctx, m.MembershipID, invoiceID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMembership leaves invoice links untouched; LinkInvoice owns them.
func (r *PgxMembershipRepository) UpdateMembership(ctx context.Context, membership domain.Membership) error {
	m := mapping.ToModelMembership(membership)
	query := `
		UPDATE memberships
		SET resource_id = $2, date_start = $3, date_end = $4, state = $5, policies_accepted = $6,
			benefit_period_start = $7, lead_id = $8, rating_id = $9, notes = $10, portal_token_hash = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE membership_id = $1;`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.MembershipID, m.ResourceID, m.DateStart, m.DateEnd, m.State, m.PoliciesAccepted,
		m.BenefitPeriodStart, m.LeadID, m.RatingID, m.Notes, m.PortalTokenHash,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership %s: %w", m.MembershipID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMembershipRepository) LinkInvoice(ctx context.Context, membershipID, invoiceID string) error {
	query := `INSERT INTO membership_invoices (membership_id, invoice_id) VALUES ($1, $2)
		ON CONFLICT (membership_id, invoice_id) DO NOTHING;`
	if _, err := r.db(ctx).Exec(ctx, query, membershipID, invoiceID); err != nil {
		return fmt.Errorf("failed to link invoice %s to membership %s: %w", invoiceID, membershipID, err)
	}
	return nil
}
