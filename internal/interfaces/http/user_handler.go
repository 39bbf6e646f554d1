package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-admin/internal/application/dto"
	"github.com/jhoicas/inventario-admin/internal/application/usecase"
)

// UserHandler administración de usuarios: datos, estado, relaciones e historial.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
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

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Actualizar usuario y sus relaciones
// @Description  Areas y warehouses son el conjunto deseado completo. Responde 207 si parte de las asignaciones no se aplicó.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserUpdateResponse
// @Success      207   {object}  dto.UserUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	var in dto.UpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateUserWithAssignments(c.UserContext(), tenantID, c.Params("id"), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(reconcileStatus(out.Assignments.Outcome)).JSON(out)
}

// SetStatus godoc
// @Summary      Habilitar o deshabilitar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.SetUserStatusRequest  true  "Nuevo estado y motivo"
// @Success      200   {object}  dto.UserStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/status [patch]
func (h *UserHandler) SetStatus(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	var in dto.SetUserStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetUserStatus(c.UserContext(), tenantID, c.Params("id"), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Assignments godoc
// @Summary      Asignaciones activas del usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.AssignmentListResponse
// @Router       /api/users/{id}/assignments [get]
func (h *UserHandler) Assignments(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListActiveAssignments(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignmentHistory godoc
// @Summary      Historial de asignaciones del usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del usuario"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.AssignmentHistoryListResponse
// @Router       /api/users/{id}/history/assignments [get]
func (h *UserHandler) AssignmentHistory(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListAssignmentHistory(c.UserContext(), tenantID, c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EnablementHistory godoc
// @Summary      Historial de habilitación del usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del usuario"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.EnablementHistoryListResponse
// @Router       /api/users/{id}/history/enablement [get]
func (h *UserHandler) EnablementHistory(c *fiber.Ctx) error {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListEnablementHistory(c.UserContext(), tenantID, c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
