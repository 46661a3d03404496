package repository

import (
	"time"

	"github.com/tu-usuario/rentpro/internal/domain/entity"
)

// LeaseRepository define el puerto de persistencia para LeaseAgreement.
type LeaseRepository interface {
	Create(lease *entity.LeaseAgreement) error
	GetByID(id string) (*entity.LeaseAgreement, error)
	ListByProperty(propertyID string, limit, offset int) ([]*entity.LeaseAgreement, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.LeaseAgreement, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.LeaseAgreement, error)
	// ListActiveEndingAfter devuelve contratos activos con end_date >= asOf
	// (entrada del generador de facturas de renta).
	ListActiveEndingAfter(asOf time.Time) ([]*entity.LeaseAgreement, error)
	// ExistsActiveOverlap indica si la unidad tiene un contrato activo cuyo rango
	// se solapa con [start, end], excluyendo excludeID (vacío para creación).
	ExistsActiveOverlap(unitID string, start, end time.Time, excludeID string) (bool, error)
	// ExistsActiveForTenantInProperty indica si el inquilino ya tiene un contrato
	// activo en la propiedad.
	ExistsActiveForTenantInProperty(tenantID, propertyID string) (bool, error)
	// ExistsActiveForProperty indica si alguna unidad de la propiedad tiene un
	// contrato activo (bloquea el borrado de la propiedad).
	ExistsActiveForProperty(propertyID string) (bool, error)
	Update(lease *entity.LeaseAgreement) error
	UpdateStatus(id, status string) error
	Delete(id string) error
}

// TenantPropertyRepository define el puerto para la relación inquilino-propiedad.
type TenantPropertyRepository interface {
	Create(tp *entity.TenantProperty) error
	GetByTenantAndProperty(tenantID, propertyID string) (*entity.TenantProperty, error)
	Update(tp *entity.TenantProperty) error
}
