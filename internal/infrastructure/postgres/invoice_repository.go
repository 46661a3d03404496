package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, lease_id, property_id, unit_id, tenant_id, invoice_number, invoice_type,
	description, amount, late_fee, total_amount, due_date, issue_date, status,
	payment_date, bank_account_id, stripe_checkout_id, stripe_payment_intent_id,
	payment_url, created_at, updated_at`

// Create persiste una factura. invoice_number es único global.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.LeaseID, inv.PropertyID, inv.UnitID, inv.TenantID, inv.InvoiceNumber,
		inv.InvoiceType, inv.Description, inv.Amount, inv.LateFee, inv.TotalAmount,
		inv.DueDate, inv.IssueDate, inv.Status, inv.PaymentDate, nullIfEmpty(inv.BankAccountID),
		nullIfEmpty(inv.StripeCheckoutID), nullIfEmpty(inv.StripePaymentIntentID),
		inv.PaymentURL, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCheckoutID obtiene la factura correlacionada con una sesión de checkout.
func (r *InvoiceRepo) GetByCheckoutID(checkoutID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE stripe_checkout_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, checkoutID))
}

// ListByOwner lista facturas de las propiedades del owner.
func (r *InvoiceRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT i.id, i.lease_id, i.property_id, i.unit_id, i.tenant_id, i.invoice_number, i.invoice_type,
		       i.description, i.amount, i.late_fee, i.total_amount, i.due_date, i.issue_date, i.status,
		       i.payment_date, i.bank_account_id, i.stripe_checkout_id, i.stripe_payment_intent_id,
		       i.payment_url, i.created_at, i.updated_at
		FROM invoices i
		JOIN properties p ON p.id = i.property_id
		WHERE p.owner_id = $1
		ORDER BY i.due_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, ownerID, limit, offset)
}

// ListByTenant lista facturas del inquilino.
func (r *InvoiceRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE tenant_id = $1
		ORDER BY due_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, tenantID, limit, offset)
}

// ExistsForLeaseAndDue indica si ya hay una factura del tipo dado para el
// contrato con ese vencimiento (idempotencia del generador).
func (r *InvoiceRepo) ExistsForLeaseAndDue(leaseID string, dueDate time.Time, invoiceType string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invoices
			WHERE lease_id = $1 AND due_date = $2 AND invoice_type = $3 AND status <> 'cancelled'
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, leaseID, dueDate, invoiceType).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check invoice exists: %w", err)
	}
	return exists, nil
}

// Update persiste los campos mutables de la factura.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET description = $2, amount = $3, late_fee = $4, total_amount = $5,
		    due_date = $6, status = $7, payment_date = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Description, inv.Amount, inv.LateFee, inv.TotalAmount,
		inv.DueDate, inv.Status, inv.PaymentDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateCheckout persiste solo los campos de correlación con el proveedor.
func (r *InvoiceRepo) UpdateCheckout(inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET stripe_checkout_id = $2, stripe_payment_intent_id = $3, payment_url = $4,
		    bank_account_id = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, nullIfEmpty(inv.StripeCheckoutID), nullIfEmpty(inv.StripePaymentIntentID),
		inv.PaymentURL, nullIfEmpty(inv.BankAccountID),
	)
	if err != nil {
		return fmt.Errorf("update invoice checkout: %w", err)
	}
	return nil
}

// MarkPaid fija status=paid y payment_date solo si la factura no estaba paga;
// devuelve false si ya lo estaba (no-op idempotente).
func (r *InvoiceRepo) MarkPaid(id string, paidAt time.Time, paymentIntentID string) (bool, error) {
	query := `
		UPDATE invoices
		SET status = 'paid', payment_date = $2,
		    stripe_payment_intent_id = COALESCE($3, stripe_payment_intent_id),
		    updated_at = now()
		WHERE id = $1 AND status <> 'paid'`
	tag, err := r.q.Exec(context.Background(), query, id, paidAt, nullIfEmpty(paymentIntentID))
	if err != nil {
		return false, fmt.Errorf("mark invoice paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InvoiceRepo) scanOne(row pgx.Row) (*entity.Invoice, error) {
	inv, err := scanInvoiceInto(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoiceInto(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoiceInto(scan func(dest ...any) error) (*entity.Invoice, error) {
	var inv entity.Invoice
	var bankAccountID, checkoutID, intentID *string
	err := scan(
		&inv.ID, &inv.LeaseID, &inv.PropertyID, &inv.UnitID, &inv.TenantID,
		&inv.InvoiceNumber, &inv.InvoiceType, &inv.Description, &inv.Amount, &inv.LateFee,
		&inv.TotalAmount, &inv.DueDate, &inv.IssueDate, &inv.Status, &inv.PaymentDate,
		&bankAccountID, &checkoutID, &intentID, &inv.PaymentURL, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if bankAccountID != nil {
		inv.BankAccountID = *bankAccountID
	}
	if checkoutID != nil {
		inv.StripeCheckoutID = *checkoutID
	}
	if intentID != nil {
		inv.StripePaymentIntentID = *intentID
	}
	return &inv, nil
}

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, lease_id, payment_type, amount, due_date, payment_date, status, method,
	paid_by_id, transaction_id, stripe_payment_intent_id, stripe_payment_method_id,
	created_at, updated_at`

// Create persiste un pago. transaction_id es único: la clave de deduplicación
// ante entregas repetidas del webhook.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nullIfEmpty(p.LeaseID), p.PaymentType, p.Amount, p.DueDate, p.PaymentDate,
		p.Status, p.Method, nullIfEmpty(p.PaidByID), nullIfEmpty(p.TransactionID),
		nullIfEmpty(p.StripePaymentIntentID), nullIfEmpty(p.StripePaymentMethodID),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPaymentInto(r.q.QueryRow(context.Background(), query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListByLease lista pagos de un contrato.
func (r *PaymentRepo) ListByLease(leaseID string, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments WHERE lease_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, leaseID, limit, offset)
}

// ListByPayer lista pagos hechos por un usuario.
func (r *PaymentRepo) ListByPayer(userID string, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments WHERE paid_by_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

// CountByTransactionID cuenta pagos con ese transaction_id (dedupe webhook).
func (r *PaymentRepo) CountByTransactionID(transactionID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM payments WHERE transaction_id = $1`, transactionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count payments by transaction: %w", err)
	}
	return count, nil
}

// Update persiste los campos mutables del pago.
func (r *PaymentRepo) Update(p *entity.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, payment_date = $3, transaction_id = $4,
		    stripe_payment_intent_id = $5, stripe_payment_method_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Status, p.PaymentDate, nullIfEmpty(p.TransactionID),
		nullIfEmpty(p.StripePaymentIntentID), nullIfEmpty(p.StripePaymentMethodID), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) list(query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPaymentInto(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPaymentInto(scan func(dest ...any) error) (*entity.Payment, error) {
	var p entity.Payment
	var leaseID, paidBy, txID, intentID, methodID *string
	err := scan(
		&p.ID, &leaseID, &p.PaymentType, &p.Amount, &p.DueDate, &p.PaymentDate,
		&p.Status, &p.Method, &paidBy, &txID, &intentID, &methodID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if leaseID != nil {
		p.LeaseID = *leaseID
	}
	if paidBy != nil {
		p.PaidByID = *paidBy
	}
	if txID != nil {
		p.TransactionID = *txID
	}
	if intentID != nil {
		p.StripePaymentIntentID = *intentID
	}
	if methodID != nil {
		p.StripePaymentMethodID = *methodID
	}
	return &p, nil
}
