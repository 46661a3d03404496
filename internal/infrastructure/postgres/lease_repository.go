package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

var _ repository.LeaseRepository = (*LeaseRepo)(nil)

// LeaseRepo implementación de LeaseRepository (usable con pool o tx).
type LeaseRepo struct {
	q Querier
}

// NewLeaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeaseRepository(q Querier) *LeaseRepo {
	return &LeaseRepo{q: q}
}

const leaseColumns = `id, property_id, unit_id, tenant_id, bank_account_id, start_date, end_date,
	monthly_rent, security_deposit, rent_due_day, status, terms,
	signed_by_tenant, signed_by_owner, created_at, updated_at`

// Create persiste un contrato.
func (r *LeaseRepo) Create(l *entity.LeaseAgreement) error {
	query := `
		INSERT INTO lease_agreements (` + leaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.PropertyID, l.UnitID, l.TenantID, nullIfEmpty(l.BankAccountID),
		l.StartDate, l.EndDate, l.MonthlyRent, l.SecurityDeposit, l.RentDueDay,
		l.Status, l.Terms, l.SignedByTenant, l.SignedByOwner, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lease: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID.
func (r *LeaseRepo) GetByID(id string) (*entity.LeaseAgreement, error) {
	query := `SELECT ` + leaseColumns + ` FROM lease_agreements WHERE id = $1`
	l, err := scanLeaseInto(r.q.QueryRow(context.Background(), query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lease: %w", err)
	}
	return l, nil
}

// ListByProperty lista contratos de la propiedad.
func (r *LeaseRepo) ListByProperty(propertyID string, limit, offset int) ([]*entity.LeaseAgreement, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM lease_agreements WHERE property_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, propertyID, limit, offset)
}

// ListByTenant lista contratos del inquilino.
func (r *LeaseRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.LeaseAgreement, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM lease_agreements WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, tenantID, limit, offset)
}

// ListByOwner lista contratos de todas las propiedades del owner.
func (r *LeaseRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.LeaseAgreement, error) {
	query := `
		SELECT l.id, l.property_id, l.unit_id, l.tenant_id, l.bank_account_id, l.start_date, l.end_date,
		       l.monthly_rent, l.security_deposit, l.rent_due_day, l.status, l.terms,
		       l.signed_by_tenant, l.signed_by_owner, l.created_at, l.updated_at
		FROM lease_agreements l
		JOIN properties p ON p.id = l.property_id
		WHERE p.owner_id = $1
		ORDER BY l.created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, ownerID, limit, offset)
}

// ListActiveEndingAfter devuelve contratos activos con end_date >= asOf.
func (r *LeaseRepo) ListActiveEndingAfter(asOf time.Time) ([]*entity.LeaseAgreement, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM lease_agreements
		WHERE status = 'active' AND end_date >= $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, asOf)
	if err != nil {
		return nil, fmt.Errorf("list active leases: %w", err)
	}
	return collectLeases(rows)
}

// ExistsActiveOverlap indica si la unidad tiene un contrato activo cuyo rango
// se solapa con [start, end] (rangos cerrados), excluyendo excludeID.
func (r *LeaseRepo) ExistsActiveOverlap(unitID string, start, end time.Time, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lease_agreements
			WHERE unit_id = $1 AND status = 'active'
			  AND start_date <= $3 AND end_date >= $2
			  AND ($4 = '' OR id <> $4::uuid)
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, unitID, start, end, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check lease overlap: %w", err)
	}
	return exists, nil
}

// ExistsActiveForTenantInProperty indica si el inquilino ya tiene un contrato
// activo en la propiedad.
func (r *LeaseRepo) ExistsActiveForTenantInProperty(tenantID, propertyID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lease_agreements
			WHERE tenant_id = $1 AND property_id = $2 AND status = 'active'
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, tenantID, propertyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tenant active lease: %w", err)
	}
	return exists, nil
}

// ExistsActiveForProperty indica si alguna unidad de la propiedad tiene un
// contrato activo.
func (r *LeaseRepo) ExistsActiveForProperty(propertyID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lease_agreements
			WHERE property_id = $1 AND status = 'active'
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, propertyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check property active leases: %w", err)
	}
	return exists, nil
}

// Update persiste los campos mutables del contrato.
func (r *LeaseRepo) Update(l *entity.LeaseAgreement) error {
	query := `
		UPDATE lease_agreements
		SET bank_account_id = $2, end_date = $3, monthly_rent = $4, security_deposit = $5,
		    rent_due_day = $6, terms = $7, signed_by_tenant = $8, signed_by_owner = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, nullIfEmpty(l.BankAccountID), l.EndDate, l.MonthlyRent, l.SecurityDeposit,
		l.RentDueDay, l.Terms, l.SignedByTenant, l.SignedByOwner, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lease: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado del contrato.
func (r *LeaseRepo) UpdateStatus(id, status string) error {
	query := `UPDATE lease_agreements SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update lease status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el contrato.
func (r *LeaseRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM lease_agreements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LeaseRepo) list(query string, args ...any) ([]*entity.LeaseAgreement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	return collectLeases(rows)
}

func collectLeases(rows pgx.Rows) ([]*entity.LeaseAgreement, error) {
	defer rows.Close()
	var list []*entity.LeaseAgreement
	for rows.Next() {
		l, err := scanLeaseInto(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan lease: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLeaseInto(scan func(dest ...any) error) (*entity.LeaseAgreement, error) {
	var l entity.LeaseAgreement
	var bankAccountID *string
	err := scan(
		&l.ID, &l.PropertyID, &l.UnitID, &l.TenantID, &bankAccountID,
		&l.StartDate, &l.EndDate, &l.MonthlyRent, &l.SecurityDeposit, &l.RentDueDay,
		&l.Status, &l.Terms, &l.SignedByTenant, &l.SignedByOwner, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if bankAccountID != nil {
		l.BankAccountID = *bankAccountID
	}
	return &l, nil
}

var _ repository.TenantPropertyRepository = (*TenantPropertyRepo)(nil)

// TenantPropertyRepo implementación de TenantPropertyRepository.
type TenantPropertyRepo struct {
	q Querier
}

// NewTenantPropertyRepository construye el adaptador.
func NewTenantPropertyRepository(q Querier) *TenantPropertyRepo {
	return &TenantPropertyRepo{q: q}
}

// Create persiste la relación; el par (tenant, property) es único.
func (r *TenantPropertyRepo) Create(tp *entity.TenantProperty) error {
	query := `
		INSERT INTO tenant_properties (id, tenant_id, property_id, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		tp.ID, tp.TenantID, tp.PropertyID, tp.Status, tp.StartDate, tp.EndDate,
		tp.CreatedAt, tp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant property: %w", err)
	}
	return nil
}

// GetByTenantAndProperty obtiene la relación, o nil si no existe.
func (r *TenantPropertyRepo) GetByTenantAndProperty(tenantID, propertyID string) (*entity.TenantProperty, error) {
	query := `
		SELECT id, tenant_id, property_id, status, start_date, end_date, created_at, updated_at
		FROM tenant_properties WHERE tenant_id = $1 AND property_id = $2`
	var tp entity.TenantProperty
	err := r.q.QueryRow(context.Background(), query, tenantID, propertyID).Scan(
		&tp.ID, &tp.TenantID, &tp.PropertyID, &tp.Status, &tp.StartDate, &tp.EndDate,
		&tp.CreatedAt, &tp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant property: %w", err)
	}
	return &tp, nil
}

// Update persiste los campos mutables de la relación.
func (r *TenantPropertyRepo) Update(tp *entity.TenantProperty) error {
	query := `
		UPDATE tenant_properties
		SET status = $2, start_date = $3, end_date = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tp.ID, tp.Status, tp.StartDate, tp.EndDate, tp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant property: %w", err)
	}
	return nil
}
