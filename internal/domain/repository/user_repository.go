package repository

import "github.com/tu-usuario/rentpro/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
}

// OwnerRepository define el puerto de persistencia para perfiles PropertyOwner.
type OwnerRepository interface {
	Create(owner *entity.PropertyOwner) error
	GetByID(id string) (*entity.PropertyOwner, error)
	GetByUserID(userID string) (*entity.PropertyOwner, error)
}

// TenantRepository define el puerto de persistencia para perfiles Tenant.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	GetByUserID(userID string) (*entity.Tenant, error)
}
