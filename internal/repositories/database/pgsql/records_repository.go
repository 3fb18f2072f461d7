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

const depositColumns = `deposit_id, reference, membership_id, member_id, amount, state, date_paid, date_returned,
	withhold_reason, created_at, created_by, last_updated_at, last_updated_by`

const leadColumns = `lead_id, contact_name, email, phone, space_type, preferred_resource_type, city, requested_start,
	requirements, is_cowork_lead, member_id, membership_id, created_at`

const ratingColumns = `rating_id, membership_id, member_id, space_type, score, feedback, rated_on,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxRecordsRepository persists the records that hang off a membership: security deposits,
// intake leads, ratings and notes.
type PgxRecordsRepository struct {
	BaseRepository
}

func newPgxRecordsRepository(base BaseRepository) *PgxRecordsRepository {
	return &PgxRecordsRepository{BaseRepository: base}
}

var (
	_ portsrepo.DepositRepositoryFacade = (*PgxRecordsRepository)(nil)
	_ portsrepo.LeadRepositoryFacade    = (*PgxRecordsRepository)(nil)
	_ portsrepo.RatingRepositoryFacade  = (*PgxRecordsRepository)(nil)
	_ portsrepo.NoteRepositoryFacade    = (*PgxRecordsRepository)(nil)
)

func (r *PgxRecordsRepository) findDeposit(ctx context.Context, column, value string) (*domain.SecurityDeposit, error) {
	query := `SELECT ` + depositColumns + ` FROM security_deposits WHERE ` + column + ` = $1;`
	var m models.SecurityDeposit
	err := r.db(ctx).QueryRow(ctx, query, value).Scan(
		&m.DepositID, &m.Reference, &m.MembershipID, &m.MemberID, &m.Amount, &m.State, &m.DatePaid, &m.DateReturned,
		&m.WithholdReason, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: deposit with %s %s", apperrors.ErrNotFound, column, value)
		}
		return nil, fmt.Errorf("failed to find deposit by %s %s: %w", column, value, err)
	}
	deposit := mapping.ToDomainDeposit(m)
	return &deposit, nil
}

func (r *PgxRecordsRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.SecurityDeposit, error) {
	return r.findDeposit(ctx, "deposit_id", depositID)
}

func (r *PgxRecordsRepository) FindDepositByMembership(ctx context.Context, membershipID string) (*domain.SecurityDeposit, error) {
	return r.findDeposit(ctx, "membership_id", membershipID)
}

func (r *PgxRecordsRepository) SaveDeposit(ctx context.Context, deposit domain.SecurityDeposit) error {
	m := mapping.ToModelDeposit(deposit)
	query := `INSERT INTO security_deposits (` + depositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.DepositID, m.Reference, m.MembershipID, m.MemberID, m.Amount, m.State, m.DatePaid, m.DateReturned,
		m.WithholdReason, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: membership %s already has a deposit", apperrors.ErrDuplicate, m.MembershipID)
		}
		return fmt.Errorf("failed to save deposit %s: %w", m.DepositID, err)
	}
	return nil
}

func (r *PgxRecordsRepository) UpdateDeposit(ctx context.Context, deposit domain.SecurityDeposit) error {
	m := mapping.ToModelDeposit(deposit)
	query := `
		UPDATE security_deposits
		SET state = $2, date_paid = $3, date_returned = $4, withhold_reason = $5, last_updated_at = $6, last_updated_by = $7
		WHERE deposit_id = $1;`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.DepositID, m.State, m.DatePaid, m.DateReturned, m.WithholdReason, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update deposit %s: %w", m.DepositID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanLeadModel(row pgx.Row) (models.Lead, error) {
	var m models.Lead
	err := row.Scan(
		&m.LeadID, &m.ContactName, &m.Email, &m.Phone, &m.SpaceType, &m.PreferredResourceType, &m.City, &m.RequestedStart,
		&m.Requirements, &m.IsCoworkLead, &m.MemberID, &m.MembershipID, &m.CreatedAt,
	)
	return m, err
}

func (r *PgxRecordsRepository) FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_id = $1;`
	m, err := scanLeadModel(r.db(ctx).QueryRow(ctx, query, leadID))
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: lead %s", apperrors.ErrNotFound, leadID)
		}
		return nil, fmt.Errorf("failed to find lead by ID %s: %w", leadID, err)
	}
	lead := mapping.ToDomainLead(m)
	return &lead, nil
}

func (r *PgxRecordsRepository) ListLeads(ctx context.Context, limit int, nextToken *string) ([]domain.Lead, *string, error) {
	var w whereClause
	limitArg, err := w.keyset("created_at", "lead_id", limit, nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := `SELECT ` + leadColumns + ` FROM leads` + w.String() +
		` ORDER BY created_at DESC, lead_id DESC LIMIT ` + limitArg + `;`
	rows, err := r.db(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []domain.Lead{}
	for rows.Next() {
		m, err := scanLeadModel(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, mapping.ToDomainLead(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating lead rows: %w", err)
	}
	leads, next := trimPage(leads, limit, func(l domain.Lead) (time.Time, string) { return l.CreatedAt, l.LeadID })
	return leads, next, nil
}

func (r *PgxRecordsRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	m := mapping.ToModelLead(lead)
	query := `INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.LeadID, m.ContactName, m.Email, m.Phone, m.SpaceType, m.PreferredResourceType, m.City, m.RequestedStart,
		m.Requirements, m.IsCoworkLead, m.MemberID, m.MembershipID, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lead with ID %s already exists", apperrors.ErrDuplicate, m.LeadID)
		}
		return fmt.Errorf("failed to save lead %s: %w", m.LeadID, err)
	}
	return nil
}

func (r *PgxRecordsRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	m := mapping.ToModelLead(lead)
	query := `UPDATE leads SET member_id = $2, membership_id = $3, requirements = $4 WHERE lead_id = $1;`
	cmdTag, err := r.db(ctx).Exec(ctx, query, m.LeadID, m.MemberID, m.MembershipID, m.Requirements)
	if err != nil {
		return fmt.Errorf("failed to update lead %s: %w", m.LeadID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecordsRepository) FindRatingByMembership(ctx context.Context, membershipID string) (*domain.MembershipRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM membership_ratings WHERE membership_id = $1;`
	var m models.MembershipRating
	err := r.db(ctx).QueryRow(ctx, query, membershipID).Scan(
		&m.RatingID, &m.MembershipID, &m.MemberID, &m.SpaceType, &m.Score, &m.Feedback, &m.RatedOn,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: rating of membership %s", apperrors.ErrNotFound, membershipID)
		}
		return nil, fmt.Errorf("failed to find rating of membership %s: %w", membershipID, err)
	}
	rating := mapping.ToDomainRating(m)
	return &rating, nil
}

func (r *PgxRecordsRepository) SaveRating(ctx context.Context, rating domain.MembershipRating) error {
	m := mapping.ToModelRating(rating)
	query := `INSERT INTO membership_ratings (` + ratingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.RatingID, m.MembershipID, m.MemberID, m.SpaceType, m.Score, m.Feedback, m.RatedOn,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: membership %s is already rated", apperrors.ErrDuplicate, m.MembershipID)
		}
		return fmt.Errorf("failed to save rating %s: %w", m.RatingID, err)
	}
	return nil
}

func (r *PgxRecordsRepository) UpdateRating(ctx context.Context, rating domain.MembershipRating) error {
	m := mapping.ToModelRating(rating)
	query := `
		UPDATE membership_ratings
		SET score = $2, feedback = $3, rated_on = $4, last_updated_at = $5, last_updated_by = $6
		WHERE rating_id = $1;`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.RatingID, m.Score, m.Feedback, m.RatedOn, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update rating %s: %w", m.RatingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecordsRepository) AddNote(ctx context.Context, note domain.RecordNote) error {
	m := mapping.ToModelNote(note)
	query := `INSERT INTO record_notes (note_id, subject, record_id, body, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);`
	if _, err := r.db(ctx).Exec(ctx, query, m.NoteID, m.Subject, m.RecordID, m.Body, m.CreatedAt, m.CreatedBy); err != nil {
		return fmt.Errorf("failed to add note to %s %s: %w", m.Subject, m.RecordID, err)
	}
	return nil
}

func (r *PgxRecordsRepository) ListNotes(ctx context.Context, subject domain.NoteSubject, recordID string) ([]domain.RecordNote, error) {
	query := `SELECT note_id, subject, record_id, body, created_at, created_by FROM record_notes
		WHERE subject = $1 AND record_id = $2
		ORDER BY created_at, note_id;`
	rows, err := r.db(ctx).Query(ctx, query, string(subject), recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes of %s %s: %w", subject, recordID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.RecordNote])
	if err != nil {
		return nil, fmt.Errorf("failed to scan note rows: %w", err)
	}
	notes := make([]domain.RecordNote, len(ms))
	for i, m := range ms {
		notes[i] = mapping.ToDomainNote(m)
	}
	return notes, nil
}
