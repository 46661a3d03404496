package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// ConfirmPayment liquida una factura de forma idempotente: dentro de una
// transacción deduplica por transaction_id, marca la factura paid (no-op si ya
// lo estaba) y crea el Payment completed. Las notificaciones salen solo cuando
// esta llamada fue la que liquidó la factura.
func (uc *BillingUseCase) ConfirmPayment(ctx context.Context, invoiceID, transactionID, paymentIntentID, paymentMethodID, method string) error {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}

	var settled bool
	now := time.Now()
	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		if transactionID != "" {
			count, err := paymentRepo.CountByTransactionID(transactionID)
			if err != nil {
				return err
			}
			if count > 0 {
				// Entrega repetida del webhook: ya procesada.
				return nil
			}
		}
		marked, err := invoiceRepo.MarkPaid(invoice.ID, now, paymentIntentID)
		if err != nil {
			return err
		}
		if !marked {
			return nil
		}
		settled = true

		tenant, err := uc.tenantRepo.GetByID(invoice.TenantID)
		if err != nil {
			return err
		}
		paidBy := ""
		if tenant != nil {
			paidBy = tenant.UserID
		}
		txID := transactionID
		if txID == "" {
			txID = "PAY-" + invoice.InvoiceNumber
		}
		return paymentRepo.Create(&entity.Payment{
			ID:                    uuid.New().String(),
			LeaseID:               invoice.LeaseID,
			PaymentType:           invoice.InvoiceType,
			Amount:                invoice.TotalAmount,
			DueDate:               &invoice.DueDate,
			PaymentDate:           &now,
			Status:                entity.PaymentStatusCompleted,
			Method:                method,
			PaidByID:              paidBy,
			TransactionID:         txID,
			StripePaymentIntentID: paymentIntentID,
			StripePaymentMethodID: paymentMethodID,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	})
	if err != nil {
		return err
	}
	if !settled {
		return nil
	}

	uc.log.Info().
		Str("invoice_id", invoice.ID).
		Str("invoice_number", invoice.InvoiceNumber).
		Str("transaction_id", transactionID).
		Msg("factura liquidada")
	uc.notifyPaymentReceived(ctx, invoice)
	return nil
}

// RecordManualPayment registra un pago en efectivo o por transferencia hecho
// fuera del gateway. Solo el propietario de la propiedad lo registra; liquida
// la factura con la misma ruta idempotente que el webhook.
func (uc *BillingUseCase) RecordManualPayment(ctx context.Context, act actor.Actor, in dto.RecordPaymentRequest) (*entity.Invoice, error) {
	if act.IsTenant() {
		return nil, domain.ErrForbidden
	}
	invoice, err := uc.GetInvoice(act, in.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.IsPaid() {
		return nil, domain.ErrConflict
	}
	if !in.Amount.Equal(invoice.TotalAmount) {
		return nil, domain.ErrInvalidInput
	}
	txID := in.TransactionID
	if txID == "" {
		txID = "CASH-" + newInvoiceNumber()[5:]
	}
	if err := uc.ConfirmPayment(ctx, invoice.ID, txID, "", "", in.Method); err != nil {
		return nil, err
	}
	return uc.invoiceRepo.GetByID(invoice.ID)
}

// CreateSecurityDepositCharge registra el cargo pendiente del depósito de
// garantía de un contrato.
func (uc *BillingUseCase) CreateSecurityDepositCharge(act actor.Actor, leaseID string) (*entity.Payment, error) {
	if act.IsTenant() {
		return nil, domain.ErrForbidden
	}
	lease, err := uc.authorizedLease(act, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.SecurityDeposit.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenantRepo.GetByID(lease.TenantID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	paidBy := ""
	if tenant != nil {
		paidBy = tenant.UserID
	}
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		LeaseID:     lease.ID,
		PaymentType: entity.PaymentTypeSecurityDeposit,
		Amount:      lease.SecurityDeposit,
		DueDate:     &lease.StartDate,
		Status:      entity.PaymentStatusPending,
		Method:      entity.PaymentMethodBankTransfer,
		PaidByID:    paidBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// notifyPaymentReceived avisa al inquilino y al propietario; no bloqueante.
func (uc *BillingUseCase) notifyPaymentReceived(ctx context.Context, invoice *entity.Invoice) {
	if tenant, err := uc.tenantRepo.GetByID(invoice.TenantID); err == nil && tenant != nil {
		uc.notifier.Notify(ctx, tenant.UserID, entity.NotificationPaymentReceived,
			"Pago recibido",
			"Tu pago de la factura "+invoice.InvoiceNumber+" fue procesado",
			invoice.ID)
	}
	prop, err := uc.propRepo.GetByID(invoice.PropertyID)
	if err != nil || prop == nil {
		return
	}
	owner, err := uc.ownerRepo.GetByID(prop.OwnerID)
	if err != nil || owner == nil {
		return
	}
	uc.notifier.Notify(ctx, owner.UserID, entity.NotificationPaymentReceived,
		"Pago recibido",
		"La factura "+invoice.InvoiceNumber+" de "+prop.Title+" fue pagada",
		invoice.ID)
}
