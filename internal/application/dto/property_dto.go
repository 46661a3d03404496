package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePropertyRequest body para POST /api/properties.
type CreatePropertyRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	PropertyType string `json:"property_type" validate:"required,oneof=residential commercial"`
	Address      string `json:"address" validate:"required,max=300"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"omitempty,max=100"`
	PostalCode   string `json:"postal_code" validate:"omitempty,max=20"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
}

// UpdatePropertyRequest body para PUT /api/properties/:id.
type UpdatePropertyRequest struct {
	Title       string `json:"title" validate:"omitempty,min=1,max=200"`
	Address     string `json:"address" validate:"omitempty,max=300"`
	City        string `json:"city" validate:"omitempty,max=100"`
	State       string `json:"state" validate:"omitempty,max=100"`
	PostalCode  string `json:"postal_code" validate:"omitempty,max=20"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	IsAvailable *bool  `json:"is_available"`
}

// PropertyResponse propiedad en respuestas.
type PropertyResponse struct {
	ID           string             `json:"id"`
	OwnerID      string             `json:"owner_id"`
	Title        string             `json:"title"`
	PropertyType string             `json:"property_type"`
	Address      string             `json:"address"`
	City         string             `json:"city"`
	State        string             `json:"state,omitempty"`
	PostalCode   string             `json:"postal_code,omitempty"`
	Description  string             `json:"description,omitempty"`
	IsAvailable  bool               `json:"is_available"`
	Units        []UnitResponse     `json:"units,omitempty"`
	Images       []PropertyImageRef `json:"images,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// AddImageRequest body para POST /api/properties/:id/images.
type AddImageRequest struct {
	URL     string `json:"url" validate:"required,url,max=500"`
	Caption string `json:"caption" validate:"omitempty,max=200"`
}

// PropertyImageRef imagen en respuestas de propiedad.
type PropertyImageRef struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// CreateUnitRequest body para POST /api/properties/:id/units.
// En propiedades comerciales bedrooms/bathrooms se fuerzan a 0.
type CreateUnitRequest struct {
	UnitNumber   string          `json:"unit_number" validate:"required,min=1,max=50"`
	MonthlyRent  decimal.Decimal `json:"monthly_rent" validate:"required"`
	Bedrooms     int             `json:"bedrooms" validate:"min=0"`
	Bathrooms    int             `json:"bathrooms" validate:"min=0"`
	SquareFeet   int             `json:"square_feet" validate:"min=0"`
	BusinessType string          `json:"business_type" validate:"omitempty,max=100"`
}

// UpdateUnitRequest body para PUT /api/units/:id.
type UpdateUnitRequest struct {
	MonthlyRent  decimal.Decimal `json:"monthly_rent"`
	Bedrooms     *int            `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms    *int            `json:"bathrooms" validate:"omitempty,min=0"`
	SquareFeet   *int            `json:"square_feet" validate:"omitempty,min=0"`
	BusinessType string          `json:"business_type" validate:"omitempty,max=100"`
	IsAvailable  *bool           `json:"is_available"`
}

// UnitResponse unidad en respuestas.
type UnitResponse struct {
	ID           string          `json:"id"`
	PropertyID   string          `json:"property_id"`
	UnitNumber   string          `json:"unit_number"`
	MonthlyRent  decimal.Decimal `json:"monthly_rent"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	SquareFeet   int             `json:"square_feet,omitempty"`
	BusinessType string          `json:"business_type,omitempty"`
	IsAvailable  bool            `json:"is_available"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateBankAccountRequest body para POST /api/properties/:id/bank-accounts.
type CreateBankAccountRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	AccountType string `json:"account_type" validate:"required,oneof=Stripe Paypal"`
	AccountMode string `json:"account_mode" validate:"required,oneof=Sandbox Live"`
	ClientID    string `json:"client_id" validate:"omitempty,max=200"`
	SecretKey   string `json:"secret_key" validate:"required,max=200"`
}

// UpdateBankAccountRequest body para PUT /api/bank-accounts/:id.
type UpdateBankAccountRequest struct {
	Title       string `json:"title" validate:"omitempty,min=1,max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=Active Inactive"`
	AccountMode string `json:"account_mode" validate:"omitempty,oneof=Sandbox Live"`
	ClientID    string `json:"client_id" validate:"omitempty,max=200"`
	SecretKey   string `json:"secret_key" validate:"omitempty,max=200"`
}

// BankAccountResponse cuenta de cobro en respuestas. SecretKey nunca se expone.
type BankAccountResponse struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	Title       string    `json:"title"`
	AccountType string    `json:"account_type"`
	Status      string    `json:"status"`
	AccountMode string    `json:"account_mode"`
	ClientID    string    `json:"client_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
