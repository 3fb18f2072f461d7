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

const accessRequestColumns = `access_request_id, reference, membership_id, member_id, service_id, scheduled_start,
	duration_hours, state, payment_method, description, price, credits_cost, credits_used, passes_used,
	call_room_hours_used, invoice_id, is_guest, guest_name, guest_email, guest_count, approved_by, approved_at,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccessRequestRepository persists service bookings.
type PgxAccessRequestRepository struct {
	BaseRepository
}

func newPgxAccessRequestRepository(base BaseRepository) *PgxAccessRequestRepository {
	return &PgxAccessRequestRepository{BaseRepository: base}
}

var _ portsrepo.AccessRequestRepositoryFacade = (*PgxAccessRequestRepository)(nil)

func scanAccessRequest(row pgx.Row) (*domain.AccessRequest, error) {
	var m models.AccessRequest
	err := row.Scan(
		&m.AccessRequestID, &m.Reference, &m.MembershipID, &m.MemberID, &m.ServiceID, &m.ScheduledStart,
		&m.DurationHours, &m.State, &m.PaymentMethod, &m.Description, &m.Price, &m.CreditsCost, &m.CreditsUsed, &m.PassesUsed,
		&m.CallRoomHoursUsed, &m.InvoiceID, &m.IsGuest, &m.GuestName, &m.GuestEmail, &m.GuestCount, &m.ApprovedBy, &m.ApprovedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	req := mapping.ToDomainAccessRequest(m)
	return &req, nil
}

func collectAccessRequests(rows pgx.Rows) ([]domain.AccessRequest, error) {
	defer rows.Close()
	requests := []domain.AccessRequest{}
	for rows.Next() {
		req, err := scanAccessRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access request row: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access request rows: %w", err)
	}
	return requests, nil
}

func (r *PgxAccessRequestRepository) findAccessRequest(ctx context.Context, requestID, lock string) (*domain.AccessRequest, error) {
	query := `SELECT ` + accessRequestColumns + ` FROM access_requests WHERE access_request_id = $1` + lock + `;`
	req, err := scanAccessRequest(r.db(ctx).QueryRow(ctx, query, requestID))
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: access request %s", apperrors.ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to find access request by ID %s: %w", requestID, err)
	}
	return req, nil
}

func (r *PgxAccessRequestRepository) FindAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	return r.findAccessRequest(ctx, requestID, "")
}

func (r *PgxAccessRequestRepository) FindAccessRequestByIDForUpdate(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	return r.findAccessRequest(ctx, requestID, " FOR UPDATE")
}

func (r *PgxAccessRequestRepository) ListAccessRequests(ctx context.Context, filter domain.AccessRequestFilter, limit int, nextToken *string) ([]domain.AccessRequest, *string, error) {
	var w whereClause
	w.addIf("membership_id = ?", filter.MembershipID)
	w.addIf("service_id = ?", filter.ServiceID)
	w.addIf("state = ?", string(filter.State))
	limitArg, err := w.keyset("scheduled_start", "access_request_id", limit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + accessRequestColumns + ` FROM access_requests` + w.String() +
		` ORDER BY scheduled_start DESC, access_request_id DESC LIMIT ` + limitArg + `;`
	rows, err := r.db(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list access requests: %w", err)
	}
	requests, err := collectAccessRequests(rows)
	if err != nil {
		return nil, nil, err
	}
	requests, next := trimPage(requests, limit, func(a domain.AccessRequest) (time.Time, string) {
		return a.ScheduledStart, a.AccessRequestID
	})
	return requests, next, nil
}

// FindSlotHolders returns the candidates for an overlap check; the caller compares end times
// because durations are fractional hours.
func (r *PgxAccessRequestRepository) FindSlotHolders(ctx context.Context, serviceID, excludeID string, startsBefore time.Time) ([]domain.AccessRequest, error) {
	query := `SELECT ` + accessRequestColumns + ` FROM access_requests
		WHERE service_id = $1 AND access_request_id <> $2 AND state NOT IN ($3, $4) AND scheduled_start < $5
		ORDER BY scheduled_start;`
	rows, err := r.db(ctx).Query(ctx, query, serviceID, excludeID,
		string(domain.AccessRequestRejected), string(domain.AccessRequestCancelled), startsBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to find slot holders for service %s: %w", serviceID, err)
	}
	return collectAccessRequests(rows)
}

func (r *PgxAccessRequestRepository) SaveAccessRequest(ctx context.Context, request domain.AccessRequest) error {
	m := mapping.ToModelAccessRequest(request)
	query := `INSERT INTO access_requests (` + accessRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.AccessRequestID, m.Reference, m.MembershipID, m.MemberID, m.ServiceID, m.ScheduledStart,
		m.DurationHours, m.State, m.PaymentMethod, m.Description, m.Price, m.CreditsCost, m.CreditsUsed, m.PassesUsed,
		m.CallRoomHoursUsed, m.InvoiceID, m.IsGuest, m.GuestName, m.GuestEmail, m.GuestCount, m.ApprovedBy, m.ApprovedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: access request %s already exists", apperrors.ErrDuplicate, m.Reference)
		}
		return fmt.Errorf("failed to save access request %s: %w", m.AccessRequestID, err)
	}
	return nil
}

func (r *PgxAccessRequestRepository) UpdateAccessRequest(ctx context.Context, request domain.AccessRequest) error {
	m := mapping.ToModelAccessRequest(request)
	query := `
		UPDATE access_requests
		SET service_id = $2, scheduled_start = $3, duration_hours = $4, state = $5, payment_method = $6,
			description = $7, price = $8, credits_cost = $9, credits_used = $10, passes_used = $11,
			call_room_hours_used = $12, invoice_id = $13, is_guest = $14, guest_name = $15, guest_email = $16,
			guest_count = $17, approved_by = $18, approved_at = $19, last_updated_at = $20, last_updated_by = $21
		WHERE access_request_id = $1;`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.AccessRequestID, m.ServiceID, m.ScheduledStart, m.DurationHours, m.State, m.PaymentMethod,
		m.Description, m.Price, m.CreditsCost, m.CreditsUsed, m.PassesUsed,
		m.CallRoomHoursUsed, m.InvoiceID, m.IsGuest, m.GuestName, m.GuestEmail,
		m.GuestCount, m.ApprovedBy, m.ApprovedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update access request %s: %w", m.AccessRequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
