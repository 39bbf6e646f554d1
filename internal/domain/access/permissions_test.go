package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-admin/internal/domain/access"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Canonicalización de roles
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeRole_Alias(t *testing.T) {
	cases := map[string]string{
		"admin":                entity.RoleAdmin,
		"Administrador":        entity.RoleAdmin,
		"super-admin":          entity.RoleAdmin,
		"JEFE_AREA":            entity.RoleAreaManager,
		"Jefe de Área":         entity.RoleAreaManager,
		"  jefe  de  area ":    entity.RoleAreaManager,
		"area_manager":         entity.RoleAreaManager,
		"BODEGUERO":            entity.RoleWarehouseSupervisor,
		"bodeguero":            entity.RoleWarehouseSupervisor,
		"Supervisor de Bodega": entity.RoleWarehouseSupervisor,
		"warehouse-supervisor": entity.RoleWarehouseSupervisor,
	}
	for raw, want := range cases {
		got, ok := access.NormalizeRole(raw)
		assert.True(t, ok, "rol %q debe reconocerse", raw)
		assert.Equal(t, want, got, "rol %q", raw)
	}
}

func TestNormalizeRole_Desconocido(t *testing.T) {
	for _, raw := range []string{"", "vendedor", "root", "___"} {
		_, ok := access.NormalizeRole(raw)
		assert.False(t, ok, "rol %q no debe reconocerse", raw)
	}
}

func TestCapacidades_PorRol(t *testing.T) {
	assert.True(t, access.CanManageAreas("JEFE_AREA"))
	assert.False(t, access.CanManageAreas(entity.RoleAdmin))
	assert.False(t, access.CanManageAreas(entity.RoleWarehouseSupervisor))

	assert.True(t, access.CanSuperviseWarehouses("BODEGUERO"))
	assert.False(t, access.CanSuperviseWarehouses(entity.RoleAdmin))
	assert.False(t, access.CanSuperviseWarehouses("desconocido"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Matriz de permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestHasPermission_BodegueroVeProductos(t *testing.T) {
	assert.True(t, access.HasPermission("BODEGUERO", access.ProductsView))
	assert.True(t, access.HasPermission(entity.RoleWarehouseSupervisor, access.ProductsView))
	assert.False(t, access.HasPermission("BODEGUERO", access.UsersEdit))
}

func TestHasPermission_AdminTieneTodo(t *testing.T) {
	for _, p := range access.AllPermissions {
		assert.True(t, access.HasPermission("ADMIN", p), "admin debe tener %s", p)
	}
}

func TestHasPermission_RolDesconocido_Denegado(t *testing.T) {
	for _, p := range access.AllPermissions {
		assert.False(t, access.HasPermission("vendedor", p))
		assert.False(t, access.HasPermission("", p))
	}
	assert.Empty(t, access.PermissionsFor("vendedor"))
}

func TestHasPermission_PermisoDesconocido_Denegado(t *testing.T) {
	assert.False(t, access.HasPermission(entity.RoleAdmin, access.Permission("LAUNCH_ROCKETS")))
}

func TestHasPermission_JefeDeArea(t *testing.T) {
	assert.True(t, access.HasPermission("Jefe de Área", access.AreasView))
	assert.True(t, access.HasPermission("Jefe de Área", access.ReportsExport))
	assert.False(t, access.HasPermission("Jefe de Área", access.AreasManage))
	assert.False(t, access.HasPermission("Jefe de Área", access.UsersToggleStatus))
}

func TestHasAllPermissions(t *testing.T) {
	assert.True(t, access.HasAllPermissions("BODEGUERO", []access.Permission{access.BoxesView, access.ProductsManage}))
	assert.False(t, access.HasAllPermissions("BODEGUERO", []access.Permission{access.BoxesView, access.UsersView}))
	assert.True(t, access.HasAllPermissions("BODEGUERO", nil), "lista vacía: verdadero")
	assert.False(t, access.HasAllPermissions("vendedor", []access.Permission{access.BoxesView}))
}

func TestHasAnyPermission(t *testing.T) {
	assert.True(t, access.HasAnyPermission("BODEGUERO", []access.Permission{access.UsersView, access.BoxesView}))
	assert.False(t, access.HasAnyPermission("BODEGUERO", []access.Permission{access.UsersView, access.AreasManage}))
	assert.False(t, access.HasAnyPermission("ADMIN", nil), "lista vacía: falso")
}
