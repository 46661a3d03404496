package dto

import "time"

// RegisterOwnerRequest entrada para registro de propietario (password en texto,
// se hashea en el use case).
type RegisterOwnerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=1,max=200"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
	Address     string `json:"address" validate:"omitempty,max=300"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	TaxID       string `json:"tax_id" validate:"omitempty,max=50"`
}

// RegisterTenantRequest entrada para registro de inquilino. Si lo inicia un
// propietario lleva property_id y la relación nace activa.
type RegisterTenantRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FullName         string `json:"full_name" validate:"required,min=1,max=200"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,max=30"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=200"`
	EmploymentInfo   string `json:"employment_info" validate:"omitempty,max=300"`
	PropertyID       string `json:"property_id" validate:"omitempty,uuid"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	UserType    string    `json:"user_type"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el perfil asociado al tipo de usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	ProfileID string       `json:"profile_id,omitempty"` // ID del perfil owner/tenant
}
