package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-admin/internal/application/usecase"
)

// AssignmentHandler revocación puntual de asignaciones.
type AssignmentHandler struct {
	uc *usecase.AssignmentUseCase
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *usecase.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// Revoke godoc
// @Summary      Revocar asignación
// @Tags         assignments
// @Security     Bearer
// @Param        id   path  string  true  "ID de la asignación"
// @Success      204
// @Success      207  {object}  dto.AssignmentRevokeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assignments/{id} [delete]
func (h *AssignmentHandler) Revoke(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Revoke(c.UserContext(), tenantID, c.Params("id"), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	if len(out.HistoryErrors) > 0 {
		return c.Status(fiber.StatusMultiStatus).JSON(out)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
