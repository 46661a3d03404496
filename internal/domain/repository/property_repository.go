package repository

import "github.com/tu-usuario/rentpro/internal/domain/entity"

// PropertyRepository define el puerto de persistencia para Property.
type PropertyRepository interface {
	Create(property *entity.Property) error
	GetByID(id string) (*entity.Property, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Property, error)
	// CountAvailableByOwner cuenta propiedades disponibles del owner (cupo del plan).
	CountAvailableByOwner(ownerID string) (int, error)
	Update(property *entity.Property) error
	// Delete elimina la propiedad; units, cuentas e imágenes caen por FK en cascada.
	Delete(id string) error
}

// UnitRepository define el puerto de persistencia para PropertyUnit.
type UnitRepository interface {
	Create(unit *entity.PropertyUnit) error
	GetByID(id string) (*entity.PropertyUnit, error)
	ListByProperty(propertyID string) ([]*entity.PropertyUnit, error)
	CountByProperty(propertyID string) (int, error)
	Update(unit *entity.PropertyUnit) error
	// SetAvailability cambia solo el flag is_available.
	SetAvailability(id string, available bool) error
	Delete(id string) error
}

// ImageRepository define el puerto de persistencia para PropertyImage.
type ImageRepository interface {
	Create(image *entity.PropertyImage) error
	GetByID(id string) (*entity.PropertyImage, error)
	ListByProperty(propertyID string) ([]*entity.PropertyImage, error)
	Delete(id string) error
}

// BankAccountRepository define el puerto de persistencia para BankAccount.
type BankAccountRepository interface {
	Create(account *entity.BankAccount) error
	GetByID(id string) (*entity.BankAccount, error)
	ListByProperty(propertyID string) ([]*entity.BankAccount, error)
	// GetActiveByPropertyAndType devuelve la cuenta activa del tipo dado, o nil.
	GetActiveByPropertyAndType(propertyID, accountType string) (*entity.BankAccount, error)
	Update(account *entity.BankAccount) error
	Delete(id string) error
}
