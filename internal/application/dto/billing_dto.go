package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices (emisión manual por el
// propietario). property/unit/tenant se denormalizan desde el contrato.
type CreateInvoiceRequest struct {
	LeaseID     string          `json:"lease_id" validate:"required,uuid"`
	InvoiceType string          `json:"invoice_type" validate:"required,oneof=rent security_deposit maintenance"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	LateFee     decimal.Decimal `json:"late_fee"`
	DueDate     string          `json:"due_date" validate:"required"` // YYYY-MM-DD
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	LeaseID       string          `json:"lease_id"`
	PropertyID    string          `json:"property_id"`
	UnitID        string          `json:"unit_id"`
	TenantID      string          `json:"tenant_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceType   string          `json:"invoice_type"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	LateFee       decimal.Decimal `json:"late_fee"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DueDate       time.Time       `json:"due_date"`
	IssueDate     time.Time       `json:"issue_date"`
	Status        string          `json:"status"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	PaymentURL    string          `json:"payment_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CheckoutResponse salida de POST /api/invoices/:id/checkout.
type CheckoutResponse struct {
	InvoiceID   string `json:"invoice_id"`
	CheckoutID  string `json:"checkout_id"`
	CheckoutURL string `json:"checkout_url"`
}

// VerifyCheckoutRequest body para POST /api/invoices/verify-checkout
// (retorno del success_url; la fuente de verdad es el proveedor, no el cliente).
type VerifyCheckoutRequest struct {
	SessionID string `json:"session_id" validate:"required,max=200"`
}

// VerifyCheckoutResponse salida de la verificación de una sesión de pago.
type VerifyCheckoutResponse struct {
	InvoiceID string `json:"invoice_id"`
	Status    string `json:"status"` // estado resultante de la factura
	Paid      bool   `json:"paid"`
}

// RecordPaymentRequest body para POST /api/payments (pago manual: efectivo o
// transferencia registrada por el propietario).
type RecordPaymentRequest struct {
	InvoiceID     string          `json:"invoice_id" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Method        string          `json:"method" validate:"required,oneof=cash bank_transfer"`
	TransactionID string          `json:"transaction_id" validate:"omitempty,max=100"`
	PaymentDate   string          `json:"payment_date" validate:"omitempty"` // YYYY-MM-DD, por defecto hoy
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID            string          `json:"id"`
	LeaseID       string          `json:"lease_id,omitempty"`
	PaymentType   string          `json:"payment_type"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	Status        string          `json:"status"`
	Method        string          `json:"method"`
	PaidByID      string          `json:"paid_by_id,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
