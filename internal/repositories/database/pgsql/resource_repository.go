package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	"github.com/SscSPs/cowork_membership_app/internal/models"
	"github.com/SscSPs/cowork_membership_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const resourceColumns = `resource_id, kind, name, code, resource_type, floor_id, building, address, city, room_number,
	capacity, price_per_hour, price_per_day, price_per_month, is_exclusive, state, member_id, membership_id,
	date_start, date_end, created_at, created_by, last_updated_at, last_updated_by`

// PgxResourceRepository persists desks, beds and floors in one table.
type PgxResourceRepository struct {
	BaseRepository
}

func newPgxResourceRepository(base BaseRepository) *PgxResourceRepository {
	return &PgxResourceRepository{BaseRepository: base}
}

var _ portsrepo.ResourceRepositoryFacade = (*PgxResourceRepository)(nil)

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var m models.Resource
	err := row.Scan(
		&m.ResourceID, &m.Kind, &m.Name, &m.Code, &m.ResourceType, &m.FloorID, &m.Building, &m.Address, &m.City, &m.RoomNumber,
		&m.Capacity, &m.PricePerHour, &m.PricePerDay, &m.PricePerMonth, &m.IsExclusive, &m.State, &m.MemberID, &m.MembershipID,
		&m.DateStart, &m.DateEnd, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	res := mapping.ToDomainResource(m)
	return &res, nil
}

func (r *PgxResourceRepository) findResource(ctx context.Context, resourceID, lock string) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE resource_id = $1` + lock + `;`
	res, err := scanResource(r.db(ctx).QueryRow(ctx, query, resourceID))
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: resource %s", apperrors.ErrNotFound, resourceID)
		}
		return nil, fmt.Errorf("failed to find resource by ID %s: %w", resourceID, err)
	}
	return res, nil
}

func (r *PgxResourceRepository) FindResourceByID(ctx context.Context, resourceID string) (*domain.Resource, error) {
	return r.findResource(ctx, resourceID, "")
}

func (r *PgxResourceRepository) FindResourceByIDForUpdate(ctx context.Context, resourceID string) (*domain.Resource, error) {
	return r.findResource(ctx, resourceID, " FOR UPDATE")
}

// FindFirstAvailable skips rows another transaction is allocating, so two concurrent
// confirmations never receive the same desk.
func (r *PgxResourceRepository) FindFirstAvailable(ctx context.Context, kind domain.ResourceKind) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources
		WHERE kind = $1 AND state = $2
		ORDER BY code
		LIMIT 1
		FOR UPDATE SKIP LOCKED;`
	res, err := scanResource(r.db(ctx).QueryRow(ctx, query, string(kind), string(domain.ResourceAvailable)))
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: no available %s", apperrors.ErrNotFound, kind)
		}
		return nil, fmt.Errorf("failed to find an available %s: %w", kind, err)
	}
	return res, nil
}

func (r *PgxResourceRepository) ListResources(ctx context.Context, filter domain.ResourceFilter) ([]domain.Resource, error) {
	var w whereClause
	w.addIf("kind = ?", string(filter.Kind))
	w.addIf("resource_type = ?", filter.ResourceType)
	w.addIf("city = ?", filter.City)
	w.addIf("state = ?", string(filter.State))

	query := `SELECT ` + resourceColumns + ` FROM resources` + w.String() + ` ORDER BY kind, code;`
	rows, err := r.db(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	resources := []domain.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resources = append(resources, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}
	return resources, nil
}

func (r *PgxResourceRepository) SaveResource(ctx context.Context, resource domain.Resource) error {
	m := mapping.ToModelResource(resource)
	query := `INSERT INTO resources (` + resourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.ResourceID, m.Kind, m.Name, m.Code, m.ResourceType, m.FloorID, m.Building, m.Address, m.City, m.RoomNumber,
		m.Capacity, m.PricePerHour, m.PricePerDay, m.PricePerMonth, m.IsExclusive, m.State, m.MemberID, m.MembershipID,
		m.DateStart, m.DateEnd, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s with code %s already exists", apperrors.ErrDuplicate, m.Kind, m.Code)
		}
		return fmt.Errorf("failed to save resource %s: %w", m.ResourceID, err)
	}
	return nil
}

func (r *PgxResourceRepository) UpdateResourceAllocation(ctx context.Context, resource domain.Resource) error {
	m := mapping.ToModelResource(resource)
	query := `
		UPDATE resources
		SET state = $2, member_id = $3, membership_id = $4, date_start = $5, date_end = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE resource_id = $1;`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.ResourceID, m.State, m.MemberID, m.MembershipID, m.DateStart, m.DateEnd, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation of resource %s: %w", m.ResourceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
