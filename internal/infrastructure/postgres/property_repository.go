package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// PropertyRepo implementación de PropertyRepository (usable con pool o tx).
type PropertyRepo struct {
	q Querier
}

// NewPropertyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPropertyRepository(q Querier) *PropertyRepo {
	return &PropertyRepo{q: q}
}

const propertyColumns = `id, owner_id, title, property_type, address, city, state, postal_code, description, is_available, created_at, updated_at`

// Create persiste una propiedad.
func (r *PropertyRepo) Create(p *entity.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.OwnerID, p.Title, p.PropertyType, p.Address, p.City, p.State,
		p.PostalCode, p.Description, p.IsAvailable, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// GetByID obtiene una propiedad por ID.
func (r *PropertyRepo) GetByID(id string) (*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	var p entity.Property
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.PropertyType, &p.Address, &p.City, &p.State,
		&p.PostalCode, &p.Description, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

// ListByOwner lista propiedades del owner con paginación.
func (r *PropertyRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Property
	for rows.Next() {
		var p entity.Property
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Title, &p.PropertyType, &p.Address, &p.City, &p.State,
			&p.PostalCode, &p.Description, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountAvailableByOwner cuenta propiedades disponibles del owner (cupo del plan).
func (r *PropertyRepo) CountAvailableByOwner(ownerID string) (int, error) {
	query := `SELECT count(*) FROM properties WHERE owner_id = $1 AND is_available`
	var count int
	if err := r.q.QueryRow(context.Background(), query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return count, nil
}

// Update persiste los campos mutables de la propiedad.
func (r *PropertyRepo) Update(p *entity.Property) error {
	query := `
		UPDATE properties
		SET title = $2, address = $3, city = $4, state = $5, postal_code = $6,
		    description = $7, is_available = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Title, p.Address, p.City, p.State, p.PostalCode,
		p.Description, p.IsAvailable, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	return nil
}

// Delete elimina la propiedad; units, cuentas e imágenes caen por FK en cascada.
func (r *PropertyRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación de UnitRepository (usable con pool o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

const unitColumns = `id, property_id, unit_number, monthly_rent, bedrooms, bathrooms, square_feet, business_type, is_available, created_at, updated_at`

// Create persiste una unidad. El par (property_id, unit_number) es único.
func (r *UnitRepo) Create(u *entity.PropertyUnit) error {
	query := `
		INSERT INTO property_units (` + unitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.PropertyID, u.UnitNumber, u.MonthlyRent, u.Bedrooms, u.Bathrooms,
		u.SquareFeet, u.BusinessType, u.IsAvailable, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *UnitRepo) GetByID(id string) (*entity.PropertyUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM property_units WHERE id = $1`
	var u entity.PropertyUnit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.PropertyID, &u.UnitNumber, &u.MonthlyRent, &u.Bedrooms, &u.Bathrooms,
		&u.SquareFeet, &u.BusinessType, &u.IsAvailable, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// ListByProperty lista las unidades de la propiedad.
func (r *UnitRepo) ListByProperty(propertyID string) ([]*entity.PropertyUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM property_units WHERE property_id = $1 ORDER BY unit_number`
	rows, err := r.q.Query(context.Background(), query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.PropertyUnit
	for rows.Next() {
		var u entity.PropertyUnit
		if err := rows.Scan(
			&u.ID, &u.PropertyID, &u.UnitNumber, &u.MonthlyRent, &u.Bedrooms, &u.Bathrooms,
			&u.SquareFeet, &u.BusinessType, &u.IsAvailable, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// CountByProperty cuenta unidades de la propiedad (cupo del plan).
func (r *UnitRepo) CountByProperty(propertyID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM property_units WHERE property_id = $1`, propertyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count units: %w", err)
	}
	return count, nil
}

// Update persiste los campos mutables de la unidad.
func (r *UnitRepo) Update(u *entity.PropertyUnit) error {
	query := `
		UPDATE property_units
		SET monthly_rent = $2, bedrooms = $3, bathrooms = $4, square_feet = $5,
		    business_type = $6, is_available = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.MonthlyRent, u.Bedrooms, u.Bathrooms, u.SquareFeet,
		u.BusinessType, u.IsAvailable, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// SetAvailability cambia solo el flag is_available.
func (r *UnitRepo) SetAvailability(id string, available bool) error {
	query := `UPDATE property_units SET is_available = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, available); err != nil {
		return fmt.Errorf("set unit availability: %w", err)
	}
	return nil
}

// Delete elimina la unidad.
func (r *UnitRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM property_units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
