package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/crm"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

// NoteHandler maneja las notas de clientes (protegido).
type NoteHandler struct {
	uc *crm.NoteUseCase
}

// NewNoteHandler construye el handler.
func NewNoteHandler(uc *crm.NoteUseCase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

// Create POST /api/notes
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	note, err := h.uc.Create(c.UserContext(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// List GET /api/notes?limit=20&offset=0
func (h *NoteHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.List(c.UserContext(), tenantID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/notes/:id
func (h *NoteHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	note, err := h.uc.Get(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// Update PUT /api/notes/:id
func (h *NoteHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	note, err := h.uc.Update(c.UserContext(), tenantID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// Delete DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
