package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/analytics"
)

// RevenueHandler serie de ingresos para el dashboard (protegido).
type RevenueHandler struct {
	uc *analytics.RevenueUseCase
}

// NewRevenueHandler construye el handler.
func NewRevenueHandler(uc *analytics.RevenueUseCase) *RevenueHandler {
	return &RevenueHandler{uc: uc}
}

// Revenue godoc
// @Summary      Serie de ingresos de facturas pagadas
// @Description  Agrupa los totales de facturas pagadas del tenant por hora, día o mes según el período.
// @Tags         revenue
// @Produce      json
// @Param        period  query  string  false  "today | week | month | year (default month)"
// @Success      200  {array}   dto.RevenuePointResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/revenue [get]
func (h *RevenueHandler) Revenue(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	series, err := h.uc.Revenue(c.UserContext(), tenantID, c.Query("period", "month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(series)
}
