package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apimarket/internal/application/dto"
	"github.com/jhoicas/apimarket/internal/application/inventory"
)

// InventoryHandler maneja movimientos de stock y el cierre de inventario (protegido).
type InventoryHandler struct {
	uc      *inventory.RegisterMovementUseCase
	closing *inventory.ClosingReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, closing *inventory.ClosingReportUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, closing: closing}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  inbound suma y outbound resta la cantidad. Si no se envía employee_id se usa el empleado del token.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, kind, quantity, reason, employee_id"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), GetEmployeeID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /movimientos/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetMovement(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClosingReport godoc
// @Summary      Cierre de inventario
// @Description  Todos los productos con su stock y el subconjunto por debajo del umbral de stock bajo.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClosingReportResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /cierre-inventario [get]
func (h *InventoryHandler) ClosingReport(c *fiber.Ctx) error {
	out, err := h.closing.Generate(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
