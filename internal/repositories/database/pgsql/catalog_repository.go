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

const planColumns = `plan_id, name, description, space_type, duration_unit, duration_value, price, currency_code,
	credits_included, passes_included, call_room_hours_included, is_recurring, auto_renew, requires_deposit,
	deposit_amount, allows_exclusive_floor, policy_ids, product_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const serviceColumns = `service_id, name, code, description, service_type, space_type, is_paid, price, credits_cost,
	allow_credit_payment, requires_approval, product_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxCatalogRepository persists membership plans and the bookable service catalog.
type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(base BaseRepository) *PgxCatalogRepository {
	return &PgxCatalogRepository{BaseRepository: base}
}

var (
	_ portsrepo.PlanRepositoryFacade    = (*PgxCatalogRepository)(nil)
	_ portsrepo.ServiceRepositoryFacade = (*PgxCatalogRepository)(nil)
)

func scanPlan(row pgx.Row) (*domain.MembershipPlan, error) {
	var m models.MembershipPlan
	err := row.Scan(
		&m.PlanID, &m.Name, &m.Description, &m.SpaceType, &m.DurationUnit, &m.DurationValue, &m.Price, &m.CurrencyCode,
		&m.CreditsIncluded, &m.PassesIncluded, &m.CallRoomHoursIncluded, &m.IsRecurring, &m.AutoRenew, &m.RequiresDeposit,
		&m.DepositAmount, &m.AllowsExclusiveFloor, &m.PolicyIDs, &m.ProductID, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	plan := mapping.ToDomainPlan(m)
	return &plan, nil
}

func (r *PgxCatalogRepository) FindPlanByID(ctx context.Context, planID string) (*domain.MembershipPlan, error) {
	query := `SELECT ` + planColumns + ` FROM membership_plans WHERE plan_id = $1;`
	plan, err := scanPlan(r.db(ctx).QueryRow(ctx, query, planID))
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: plan %s", apperrors.ErrNotFound, planID)
		}
		return nil, fmt.Errorf("failed to find plan by ID %s: %w", planID, err)
	}
	return plan, nil
}

func (r *PgxCatalogRepository) ListPlans(ctx context.Context, spaceType domain.SpaceType, activeOnly bool) ([]domain.MembershipPlan, error) {
	query := `SELECT ` + planColumns + ` FROM membership_plans
		WHERE ($1 = '' OR space_type = $1) AND (NOT $2 OR is_active)
		ORDER BY name;`
	rows, err := r.db(ctx).Query(ctx, query, string(spaceType), activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.MembershipPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}
	return plans, nil
}

func (r *PgxCatalogRepository) SavePlan(ctx context.Context, plan domain.MembershipPlan) error {
	m := mapping.ToModelPlan(plan)
	query := `INSERT INTO membership_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.PlanID, m.Name, m.Description, m.SpaceType, m.DurationUnit, m.DurationValue, m.Price, m.CurrencyCode,
		m.CreditsIncluded, m.PassesIncluded, m.CallRoomHoursIncluded, m.IsRecurring, m.AutoRenew, m.RequiresDeposit,
		m.DepositAmount, m.AllowsExclusiveFloor, m.PolicyIDs, m.ProductID, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: plan with ID %s already exists", apperrors.ErrDuplicate, m.PlanID)
		}
		return fmt.Errorf("failed to save plan %s: %w", m.PlanID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UpdatePlan(ctx context.Context, plan domain.MembershipPlan) error {
	m := mapping.ToModelPlan(plan)
	query := `
		UPDATE membership_plans
		SET name = $2, description = $3, price = $4, currency_code = $5, credits_included = $6, passes_included = $7,
			call_room_hours_included = $8, is_recurring = $9, auto_renew = $10, requires_deposit = $11,
			deposit_amount = $12, allows_exclusive_floor = $13, policy_ids = $14, product_id = $15, is_active = $16,
			last_updated_at = $17, last_updated_by = $18
		WHERE plan_id = $1;`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.PlanID, m.Name, m.Description, m.Price, m.CurrencyCode, m.CreditsIncluded, m.PassesIncluded,
		m.CallRoomHoursIncluded, m.IsRecurring, m.AutoRenew, m.RequiresDeposit,
		m.DepositAmount, m.AllowsExclusiveFloor, m.PolicyIDs, m.ProductID, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan %s: %w", m.PlanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var m models.Service
	err := row.Scan(
		&m.ServiceID, &m.Name, &m.Code, &m.Description, &m.ServiceType, &m.SpaceType, &m.IsPaid, &m.Price, &m.CreditsCost,
		&m.AllowCreditPayment, &m.RequiresApproval, &m.ProductID, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	svc := mapping.ToDomainService(m)
	return &svc, nil
}

func (r *PgxCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE service_id = $1;`
	svc, err := scanService(r.db(ctx).QueryRow(ctx, query, serviceID))
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return nil, fmt.Errorf("%w: service %s", apperrors.ErrNotFound, serviceID)
		}
		return nil, fmt.Errorf("failed to find service by ID %s: %w", serviceID, err)
	}
	return svc, nil
}

func (r *PgxCatalogRepository) ListServices(ctx context.Context, activeOnly bool) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE (NOT $1 OR is_active) ORDER BY code;`
	rows, err := r.db(ctx).Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service rows: %w", err)
	}
	return services, nil
}

func (r *PgxCatalogRepository) SaveService(ctx context.Context, service domain.Service) error {
	m := mapping.ToModelService(service)
	query := `INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.ServiceID, m.Name, m.Code, m.Description, m.ServiceType, m.SpaceType, m.IsPaid, m.Price, m.CreditsCost,
		m.AllowCreditPayment, m.RequiresApproval, m.ProductID, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: service with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save service %s: %w", m.ServiceID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) UpdateService(ctx context.Context, service domain.Service) error {
	m := mapping.ToModelService(service)
	query := `
		UPDATE services
		SET name = $2, description = $3, is_paid = $4, price = $5, credits_cost = $6, allow_credit_payment = $7,
			requires_approval = $8, product_id = $9, is_active = $10, last_updated_at = $11, last_updated_by = $12
		WHERE service_id = $1;`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.ServiceID, m.Name, m.Description, m.IsPaid, m.Price, m.CreditsCost, m.AllowCreditPayment,
		m.RequiresApproval, m.ProductID, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", m.ServiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LockServiceForBooking takes a row lock on the service so concurrent bookings of the same
// service check their slots one after another.
func (r *PgxCatalogRepository) LockServiceForBooking(ctx context.Context, serviceID string) error {
	var id string
	err := r.db(ctx).QueryRow(ctx, `SELECT service_id FROM services WHERE service_id = $1 FOR UPDATE;`, serviceID).Scan(&id)
	if err != nil {
		if err = notFound(err); err == apperrors.ErrNotFound {
			return fmt.Errorf("%w: service %s", apperrors.ErrNotFound, serviceID)
		}
		return fmt.Errorf("failed to lock service %s: %w", serviceID, err)
	}
	return nil
}
