package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/registry"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
)

// PropertyHandler maneja propiedades, unidades y cuentas de cobro.
type PropertyHandler struct {
	uc *registry.RegistryUseCase
}

// NewPropertyHandler construye el handler.
func NewPropertyHandler(uc *registry.RegistryUseCase) *PropertyHandler {
	return &PropertyHandler{uc: uc}
}

// Create POST /api/properties (propietario con suscripción activa y cupo)
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePropertyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" || in.Address == "" || in.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title, address y city son requeridos"})
	}
	if in.PropertyType != entity.PropertyTypeResidential && in.PropertyType != entity.PropertyTypeCommercial {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "property_type debe ser residential o commercial"})
	}
	prop, err := h.uc.CreateProperty(c.Context(), GetActor(c).ProfileID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPropertyResponse(prop, nil))
}

// List GET /api/properties
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	props, err := h.uc.ListProperties(GetActor(c).ProfileID, page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, toPropertyResponse(p, nil))
	}
	return c.JSON(out)
}

// GetByID GET /api/properties/:id (incluye unidades e imágenes)
func (h *PropertyHandler) GetByID(c *fiber.Ctx) error {
	prop, units, images, err := h.uc.GetProperty(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := toPropertyResponse(prop, units)
	for _, img := range images {
		out.Images = append(out.Images, dto.PropertyImageRef{ID: img.ID, URL: img.URL, Caption: img.Caption})
	}
	return c.JSON(out)
}

// Update PUT /api/properties/:id
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePropertyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	prop, err := h.uc.UpdateProperty(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPropertyResponse(prop, nil))
}

// Delete DELETE /api/properties/:id (409 si hay contratos activos)
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteProperty(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddUnit POST /api/properties/:id/units
func (h *PropertyHandler) AddUnit(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UnitNumber == "" || in.MonthlyRent.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unit_number y monthly_rent son requeridos"})
	}
	unit, err := h.uc.AddUnit(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUnitResponse(unit))
}

// UpdateUnit PUT /api/units/:id
func (h *PropertyHandler) UpdateUnit(c *fiber.Ctx) error {
	var in dto.UpdateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.uc.UpdateUnit(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUnitResponse(unit))
}

// DeleteUnit DELETE /api/units/:id
func (h *PropertyHandler) DeleteUnit(c *fiber.Ctx) error {
	if err := h.uc.DeleteUnit(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddImage POST /api/properties/:id/images
func (h *PropertyHandler) AddImage(c *fiber.Ctx) error {
	var in dto.AddImageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url es requerida"})
	}
	img, err := h.uc.AddImage(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PropertyImageRef{ID: img.ID, URL: img.URL, Caption: img.Caption})
}

// DeleteImage DELETE /api/images/:id
func (h *PropertyHandler) DeleteImage(c *fiber.Ctx) error {
	if err := h.uc.DeleteImage(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateBankAccount POST /api/properties/:id/bank-accounts
func (h *PropertyHandler) CreateBankAccount(c *fiber.Ctx) error {
	var in dto.CreateBankAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" || in.SecretKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y secret_key son requeridos"})
	}
	account, err := h.uc.CreateBankAccount(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBankAccountResponse(account))
}

// ListBankAccounts GET /api/properties/:id/bank-accounts
func (h *PropertyHandler) ListBankAccounts(c *fiber.Ctx) error {
	accounts, err := h.uc.ListBankAccounts(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.BankAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toBankAccountResponse(a))
	}
	return c.JSON(out)
}

// UpdateBankAccount PUT /api/bank-accounts/:id
func (h *PropertyHandler) UpdateBankAccount(c *fiber.Ctx) error {
	var in dto.UpdateBankAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	account, err := h.uc.UpdateBankAccount(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBankAccountResponse(account))
}

// DeleteBankAccount DELETE /api/bank-accounts/:id
func (h *PropertyHandler) DeleteBankAccount(c *fiber.Ctx) error {
	if err := h.uc.DeleteBankAccount(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toPropertyResponse(p *entity.Property, units []*entity.PropertyUnit) *dto.PropertyResponse {
	out := &dto.PropertyResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		PropertyType: p.PropertyType,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		PostalCode:   p.PostalCode,
		Description:  p.Description,
		IsAvailable:  p.IsAvailable,
		CreatedAt:    p.CreatedAt,
	}
	for _, u := range units {
		out.Units = append(out.Units, *toUnitResponse(u))
	}
	return out
}

func toUnitResponse(u *entity.PropertyUnit) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:           u.ID,
		PropertyID:   u.PropertyID,
		UnitNumber:   u.UnitNumber,
		MonthlyRent:  u.MonthlyRent,
		Bedrooms:     u.Bedrooms,
		Bathrooms:    u.Bathrooms,
		SquareFeet:   u.SquareFeet,
		BusinessType: u.BusinessType,
		IsAvailable:  u.IsAvailable,
		CreatedAt:    u.CreatedAt,
	}
}

// toBankAccountResponse nunca expone secret_key.
func toBankAccountResponse(a *entity.BankAccount) *dto.BankAccountResponse {
	return &dto.BankAccountResponse{
		ID:          a.ID,
		PropertyID:  a.PropertyID,
		Title:       a.Title,
		AccountType: a.AccountType,
		Status:      a.Status,
		AccountMode: a.AccountMode,
		ClientID:    a.ClientID,
		CreatedAt:   a.CreatedAt,
	}
}
