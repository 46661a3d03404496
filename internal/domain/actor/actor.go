package actor

// Type discrimina los roles cerrados del sistema. Reemplaza los chequeos
// dinámicos de tipo de usuario por un conjunto conocido en compile time.
type Type string

const (
	TypeOwner      Type = "owner"
	TypeTenant     Type = "tenant"
	TypeManager    Type = "manager"
	TypeSuperAdmin Type = "superadmin"
)

// Actor identifica a quién ejecuta una operación: el tipo de rol, el usuario
// y el ID del perfil asociado (PropertyOwner, Tenant o PropertyManager).
// SuperAdmin no tiene perfil.
type Actor struct {
	Type      Type
	UserID    string
	ProfileID string
}

// Owner construye un actor propietario.
func Owner(userID, ownerID string) Actor {
	return Actor{Type: TypeOwner, UserID: userID, ProfileID: ownerID}
}

// Tenant construye un actor inquilino.
func Tenant(userID, tenantID string) Actor {
	return Actor{Type: TypeTenant, UserID: userID, ProfileID: tenantID}
}

// Manager construye un actor administrador de propiedades.
func Manager(userID, managerID string) Actor {
	return Actor{Type: TypeManager, UserID: userID, ProfileID: managerID}
}

// SuperAdmin construye el actor con privilegios globales.
func SuperAdmin(userID string) Actor {
	return Actor{Type: TypeSuperAdmin, UserID: userID}
}

// IsOwner indica si el actor es un propietario.
func (a Actor) IsOwner() bool { return a.Type == TypeOwner }

// IsTenant indica si el actor es un inquilino.
func (a Actor) IsTenant() bool { return a.Type == TypeTenant }

// IsSuperAdmin indica si el actor tiene privilegios globales.
func (a Actor) IsSuperAdmin() bool { return a.Type == TypeSuperAdmin }

// OwnsProfile indica si el actor es del tipo dado y su perfil coincide.
// El superadmin pasa cualquier chequeo de propiedad.
func (a Actor) OwnsProfile(t Type, profileID string) bool {
	if a.Type == TypeSuperAdmin {
		return true
	}
	return a.Type == t && a.ProfileID == profileID
}

// ParseType valida un tipo de actor serializado (claims JWT).
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeOwner, TypeTenant, TypeManager, TypeSuperAdmin:
		return Type(s), true
	}
	return "", false
}
