package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-admin/internal/application/dto"
	"github.com/jhoicas/inventario-admin/internal/domain/access"
)

// Me godoc
// @Summary      Sesión actual
// @Description  Identidad del token y permisos del rol según la matriz. Un rol desconocido no tiene permisos.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/me [get]
func Me(c *fiber.Ctx) error {
	perms := access.PermissionsFor(GetRole(c))
	out := dto.SessionResponse{
		UserID:      GetUserID(c),
		TenantID:    GetTenantID(c),
		Name:        localString(c, LocalName),
		Role:        GetRole(c),
		Permissions: make([]string, 0, len(perms)),
	}
	for _, p := range perms {
		out.Permissions = append(out.Permissions, string(p))
	}
	return c.JSON(out)
}
