package billing

import (
	"context"

	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de facturación. La confirmación de pago (marcar paid + crear Payment)
// es atómica: o ambas quedan o ninguna.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// Config parámetros de facturación y del gateway de pagos.
type Config struct {
	Currency      string // ej. "usd"
	SuccessURL    string
	CancelURL     string
	WebhookSecret string
	// LeadDays días de anticipación con que se emite la factura de renta.
	LeadDays int
}
