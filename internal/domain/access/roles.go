// Package access centraliza la canonicalización de roles y la matriz de permisos.
// Todo es puro: sin estado ni I/O.
package access

import (
	"strings"
	"unicode"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// roleAliases mapea las grafías que envía el backend al rol canónico.
// Las claves ya están canonicalizadas (mayúsculas, sin tildes, separador "_").
var roleAliases = map[string]string{
	entity.RoleAdmin:               entity.RoleAdmin,
	"ADMINISTRADOR":                entity.RoleAdmin,
	"SUPER_ADMIN":                  entity.RoleAdmin,
	"SUPERADMIN":                   entity.RoleAdmin,
	entity.RoleAreaManager:         entity.RoleAreaManager,
	"JEFE_AREA":                    entity.RoleAreaManager,
	"JEFE_DE_AREA":                 entity.RoleAreaManager,
	"MANAGER":                      entity.RoleAreaManager,
	entity.RoleWarehouseSupervisor: entity.RoleWarehouseSupervisor,
	"BODEGUERO":                    entity.RoleWarehouseSupervisor,
	"SUPERVISOR":                   entity.RoleWarehouseSupervisor,
	"SUPERVISOR_BODEGA":            entity.RoleWarehouseSupervisor,
	"SUPERVISOR_DE_BODEGA":         entity.RoleWarehouseSupervisor,
}

// canonicalKey quita tildes, pasa a mayúsculas y unifica separadores: "Jefe de Área" -> "JEFE_DE_AREA".
func canonicalKey(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(raw))
	if err != nil {
		s = strings.TrimSpace(raw)
	}
	s = strings.ToUpper(s)
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '.' {
			return '_'
		}
		return r
	}, s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

// NormalizeRole devuelve el rol canónico para raw. ok=false si el rol es desconocido.
func NormalizeRole(raw string) (role string, ok bool) {
	role, ok = roleAliases[canonicalKey(raw)]
	return role, ok
}

// CanManageAreas indica si el rol puede ser jefe de área (asignaciones AREA_MANAGER).
func CanManageAreas(role string) bool {
	r, ok := NormalizeRole(role)
	return ok && r == entity.RoleAreaManager
}

// CanSuperviseWarehouses indica si el rol puede supervisar bodegas (asignaciones WAREHOUSE_SUPERVISOR).
func CanSuperviseWarehouses(role string) bool {
	r, ok := NormalizeRole(role)
	return ok && r == entity.RoleWarehouseSupervisor
}
