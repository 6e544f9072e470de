package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/crm"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

// ContactPersonHandler maneja personas de contacto como subrecurso del cliente:
// /api/customers/:customerId/contact-persons
type ContactPersonHandler struct {
	uc *crm.ContactPersonUseCase
}

// NewContactPersonHandler construye el handler.
func NewContactPersonHandler(uc *crm.ContactPersonUseCase) *ContactPersonHandler {
	return &ContactPersonHandler{uc: uc}
}

// Create POST /api/customers/:customerId/contact-persons
func (h *ContactPersonHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.CreateContactPersonRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	contact, err := h.uc.Create(c.UserContext(), tenantID, c.Params("customerId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// List GET /api/customers/:customerId/contact-persons
func (h *ContactPersonHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.List(c.UserContext(), tenantID, c.Params("customerId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/customers/:customerId/contact-persons/:id
func (h *ContactPersonHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateContactPersonRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	contact, err := h.uc.Update(c.UserContext(), tenantID, c.Params("customerId"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contact)
}

// Delete DELETE /api/customers/:customerId/contact-persons/:id
func (h *ContactPersonHandler) Delete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), tenantID, c.Params("customerId"), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
