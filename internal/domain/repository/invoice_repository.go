package repository

import (
	"time"

	"github.com/tu-usuario/rentpro/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByCheckoutID(checkoutID string) (*entity.Invoice, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Invoice, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Invoice, error)
	// ExistsForLeaseAndDue indica si ya hay una factura del tipo dado para el
	// contrato con ese vencimiento (idempotencia del generador).
	ExistsForLeaseAndDue(leaseID string, dueDate time.Time, invoiceType string) (bool, error)
	Update(invoice *entity.Invoice) error
	// UpdateCheckout persiste solo los campos de correlación con el proveedor.
	UpdateCheckout(invoice *entity.Invoice) error
	// MarkPaid fija status=paid y payment_date; devuelve false si la factura ya
	// estaba pagada (no-op idempotente).
	MarkPaid(id string, paidAt time.Time, paymentIntentID string) (bool, error)
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByLease(leaseID string, limit, offset int) ([]*entity.Payment, error)
	ListByPayer(userID string, limit, offset int) ([]*entity.Payment, error)
	CountByTransactionID(transactionID string) (int, error)
	Update(payment *entity.Payment) error
}
