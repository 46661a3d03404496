package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentpro/internal/application/billing"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
)

// BillingHandler maneja facturas, checkout y pagos.
type BillingHandler struct {
	uc *billing.BillingUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.BillingUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Create POST /api/invoices (propietario)
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LeaseID == "" || in.Amount.IsZero() || in.DueDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lease_id, amount y due_date son requeridos"})
	}
	invoice, err := h.uc.CreateInvoice(GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(invoice))
}

// List GET /api/invoices
func (h *BillingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	invoices, err := h.uc.ListInvoices(GetActor(c), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return c.JSON(out)
}

// GetByID GET /api/invoices/:id
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.uc.GetInvoice(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInvoiceResponse(invoice))
}

// Checkout POST /api/invoices/:id/checkout
func (h *BillingHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.uc.InitiateCheckout(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VerifyCheckout POST /api/invoices/verify-checkout
func (h *BillingHandler) VerifyCheckout(c *fiber.Ctx) error {
	var in dto.VerifyCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "session_id es requerido"})
	}
	out, err := h.uc.VerifyCheckout(c.Context(), GetActor(c), in.SessionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordPayment POST /api/payments (propietario: efectivo o transferencia)
func (h *BillingHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.InvoiceID == "" || in.Amount.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoice_id y amount son requeridos"})
	}
	if in.Method != entity.PaymentMethodCash && in.Method != entity.PaymentMethodBankTransfer {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "method debe ser cash o bank_transfer"})
	}
	invoice, err := h.uc.RecordManualPayment(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(invoice))
}

// ListPayments GET /api/payments?lease_id=...
func (h *BillingHandler) ListPayments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	payments, err := h.uc.ListPayments(GetActor(c), c.Query("lease_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return c.JSON(out)
}

// SecurityDeposit POST /api/leases/:id/security-deposit
func (h *BillingHandler) SecurityDeposit(c *fiber.Ctx) error {
	payment, err := h.uc.CreateSecurityDepositCharge(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(payment))
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		LeaseID:       inv.LeaseID,
		PropertyID:    inv.PropertyID,
		UnitID:        inv.UnitID,
		TenantID:      inv.TenantID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceType:   inv.InvoiceType,
		Description:   inv.Description,
		Amount:        inv.Amount,
		LateFee:       inv.LateFee,
		TotalAmount:   inv.TotalAmount,
		DueDate:       inv.DueDate,
		IssueDate:     inv.IssueDate,
		Status:        inv.Status,
		PaymentDate:   inv.PaymentDate,
		PaymentURL:    inv.PaymentURL,
		CreatedAt:     inv.CreatedAt,
	}
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		LeaseID:       p.LeaseID,
		PaymentType:   p.PaymentType,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		PaymentDate:   p.PaymentDate,
		Status:        p.Status,
		Method:        p.Method,
		PaidByID:      p.PaidByID,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}
