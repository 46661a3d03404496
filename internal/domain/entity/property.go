package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de propiedad.
const (
	PropertyTypeResidential = "residential"
	PropertyTypeCommercial  = "commercial"
)

// Property inmueble administrado por un propietario.
type Property struct {
	ID           string
	OwnerID      string
	Title        string
	PropertyType string // ver constantes PropertyType*
	Address      string
	City         string
	State        string
	PostalCode   string
	Description  string
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCommercial indica si la propiedad es de tipo comercial.
func (p *Property) IsCommercial() bool {
	return p.PropertyType == PropertyTypeCommercial
}

// PropertyUnit subdivisión arrendable de una propiedad (apartamento, local).
// Invariante: el número de unidades por propiedad no supera max_units del plan
// activo del propietario. En propiedades comerciales bedrooms y bathrooms son 0.
type PropertyUnit struct {
	ID           string
	PropertyID   string
	UnitNumber   string // único dentro de la propiedad
	MonthlyRent  decimal.Decimal
	Bedrooms     int
	Bathrooms    int
	SquareFeet   int
	BusinessType string // solo unidades comerciales
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertyImage imagen asociada a una propiedad.
type PropertyImage struct {
	ID         string
	PropertyID string
	URL        string
	Caption    string
	CreatedAt  time.Time
}
