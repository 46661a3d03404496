package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Conceptos facturables.
const (
	InvoiceTypeRent            = "rent"
	InvoiceTypeSecurityDeposit = "security_deposit"
	InvoiceTypeMaintenance     = "maintenance"
)

// Invoice documento de cobro emitido sobre un contrato. property/unit/tenant
// se denormalizan desde el contrato al construirla. total_amount se calcula en
// el constructor (amount + late_fee), nunca en un hook de persistencia. Una
// factura pagada solo muta sus IDs de correlación con el proveedor.
type Invoice struct {
	ID            string
	LeaseID       string
	PropertyID    string
	UnitID        string
	TenantID      string
	InvoiceNumber string // único global, ej. RENT-3FA84C21
	InvoiceType   string // ver constantes InvoiceType*
	Description   string
	Amount        decimal.Decimal
	LateFee       decimal.Decimal
	TotalAmount   decimal.Decimal
	DueDate       time.Time
	IssueDate     time.Time
	Status        string // ver constantes InvoiceStatus*
	PaymentDate   *time.Time
	BankAccountID string

	// Correlación con el proveedor de pagos
	StripeCheckoutID      string
	StripePaymentIntentID string
	PaymentURL            string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid indica si la factura ya fue saldada.
func (i *Invoice) IsPaid() bool { return i.Status == InvoiceStatusPaid }
