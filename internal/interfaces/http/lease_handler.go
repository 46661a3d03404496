package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/lease"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/schedule"
)

// LeaseHandler maneja el ciclo de vida de contratos de arrendamiento.
type LeaseHandler struct {
	uc *lease.LeaseUseCase
}

// NewLeaseHandler construye el handler.
func NewLeaseHandler(uc *lease.LeaseUseCase) *LeaseHandler {
	return &LeaseHandler{uc: uc}
}

// Create POST /api/leases (propietario)
func (h *LeaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UnitID == "" || in.TenantID == "" || in.StartDate == "" || in.EndDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unit_id, tenant_id, start_date y end_date son requeridos"})
	}
	if in.RentDueDay < 1 || in.RentDueDay > 31 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rent_due_day debe estar entre 1 y 31"})
	}
	l, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLeaseResponse(l))
}

// List GET /api/leases (propietario: sus propiedades; inquilino: los suyos)
func (h *LeaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	act := GetActor(c)
	var (
		leases []*entity.LeaseAgreement
		err    error
	)
	if act.Type == actor.TypeTenant {
		leases, err = h.uc.ListByTenant(act.ProfileID, page)
	} else {
		leases, err = h.uc.ListByOwner(act.ProfileID, page)
	}
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LeaseResponse, 0, len(leases))
	for _, l := range leases {
		out = append(out, toLeaseResponse(l))
	}
	return c.JSON(out)
}

// GetByID GET /api/leases/:id
func (h *LeaseHandler) GetByID(c *fiber.Ctx) error {
	l, err := h.uc.GetByID(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeaseResponse(l))
}

// Update PUT /api/leases/:id
func (h *LeaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	l, err := h.uc.Update(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeaseResponse(l))
}

// ChangeStatus PATCH /api/leases/:id/status
func (h *LeaseHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeLeaseStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	l, err := h.uc.ChangeStatus(c.Context(), GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeaseResponse(l))
}

// Delete DELETE /api/leases/:id
func (h *LeaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toLeaseResponse(l *entity.LeaseAgreement) *dto.LeaseResponse {
	out := &dto.LeaseResponse{
		ID:              l.ID,
		PropertyID:      l.PropertyID,
		UnitID:          l.UnitID,
		TenantID:        l.TenantID,
		BankAccountID:   l.BankAccountID,
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		MonthlyRent:     l.MonthlyRent,
		SecurityDeposit: l.SecurityDeposit,
		RentDueDay:      l.RentDueDay,
		Status:          l.Status,
		Terms:           l.Terms,
		SignedByTenant:  l.SignedByTenant,
		SignedByOwner:   l.SignedByOwner,
		CreatedAt:       l.CreatedAt,
	}
	if l.Status == entity.LeaseStatusActive {
		next := schedule.NextPaymentDate(time.Now(), l.RentDueDay)
		out.NextPaymentDate = &next
	}
	return out
}
