package entity

import "time"

// Tipos de usuario del sistema (coinciden con actor.Type).
const (
	UserTypeSuperAdmin = "superadmin"
	UserTypeOwner      = "owner"
	UserTypeTenant     = "tenant"
	UserTypeManager    = "manager"
)

// User cuenta de acceso al sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	UserType     string // ver constantes UserType*
	PhoneNumber  string
	Address      string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertyOwner perfil de propietario: administra propiedades y contrata un plan.
type PropertyOwner struct {
	ID          string
	UserID      string
	CompanyName string
	TaxID       string
	Verified    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tenant perfil de inquilino.
type Tenant struct {
	ID               string
	UserID           string
	EmergencyContact string
	EmploymentInfo   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PropertyManager perfil de administrador delegado de propiedades.
type PropertyManager struct {
	ID        string
	UserID    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
