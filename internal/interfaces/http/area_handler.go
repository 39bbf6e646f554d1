package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-admin/internal/application/dto"
	"github.com/jhoicas/inventario-admin/internal/application/usecase"
)

// AreaHandler áreas y sus bodegas vinculadas.
type AreaHandler struct {
	uc *usecase.AreaUseCase
}

// NewAreaHandler construye el handler.
func NewAreaHandler(uc *usecase.AreaUseCase) *AreaHandler {
	return &AreaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAreaRequest  true  "Datos del área"
// @Success      201   {object}  dto.AreaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/areas [post]
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	var in dto.CreateAreaRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), tenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener área
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  dto.AreaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/areas/{id} [get]
func (h *AreaHandler) GetByID(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar áreas
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.AreaListResponse
// @Router       /api/areas [get]
func (h *AreaHandler) List(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), tenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetWarehouses godoc
// @Summary      Definir las bodegas de un área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del área"
// @Param        body  body  dto.SetAreaWarehousesRequest  true  "Conjunto deseado de bodegas"
// @Success      200   {object}  dto.AreaWarehousesResponse
// @Success      207   {object}  dto.AreaWarehousesResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/areas/{id}/warehouses [put]
func (h *AreaHandler) SetWarehouses(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	var in dto.SetAreaWarehousesRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetWarehouses(c.UserContext(), tenantID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(reconcileStatus(out.Assignments.Outcome)).JSON(out)
}
