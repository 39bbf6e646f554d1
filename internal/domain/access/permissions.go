package access

import "github.com/jhoicas/inventario-admin/internal/domain/entity"

// Permission es una operación permitida de la consola.
type Permission string

const (
	UsersView         Permission = "USERS_VIEW"
	UsersCreate       Permission = "USERS_CREATE"
	UsersEdit         Permission = "USERS_EDIT"
	UsersToggleStatus Permission = "USERS_TOGGLE_STATUS"
	AreasView         Permission = "AREAS_VIEW"
	AreasManage       Permission = "AREAS_MANAGE"
	WarehousesView    Permission = "WAREHOUSES_VIEW"
	WarehousesManage  Permission = "WAREHOUSES_MANAGE"
	AssignmentsManage Permission = "ASSIGNMENTS_MANAGE"
	HistoryView       Permission = "HISTORY_VIEW"
	BoxesView         Permission = "BOXES_VIEW"
	BoxesManage       Permission = "BOXES_MANAGE"
	ProductsView      Permission = "PRODUCTS_VIEW"
	ProductsManage    Permission = "PRODUCTS_MANAGE"
	ReportsExport     Permission = "REPORTS_EXPORT"
)

// AllPermissions lista todos los permisos conocidos.
var AllPermissions = []Permission{
	UsersView, UsersCreate, UsersEdit, UsersToggleStatus,
	AreasView, AreasManage,
	WarehousesView, WarehousesManage,
	AssignmentsManage, HistoryView,
	BoxesView, BoxesManage,
	ProductsView, ProductsManage,
	ReportsExport,
}

type permissionSet map[Permission]struct{}

func setOf(perms ...Permission) permissionSet {
	s := make(permissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// matrix: rol canónico -> permisos. Un rol ausente equivale al conjunto vacío.
var matrix = map[string]permissionSet{
	entity.RoleAdmin: setOf(AllPermissions...),
	entity.RoleAreaManager: setOf(
		UsersView,
		AreasView,
		WarehousesView,
		HistoryView,
		BoxesView, BoxesManage,
		ProductsView,
		ReportsExport,
	),
	entity.RoleWarehouseSupervisor: setOf(
		WarehousesView,
		BoxesView, BoxesManage,
		ProductsView, ProductsManage,
	),
}

func permissionsOf(role string) permissionSet {
	canonical, ok := NormalizeRole(role)
	if !ok {
		return nil
	}
	return matrix[canonical]
}

// HasPermission indica si role tiene permission. Roles desconocidos no tienen permisos.
func HasPermission(role string, permission Permission) bool {
	_, ok := permissionsOf(role)[permission]
	return ok
}

// HasAllPermissions es true si role tiene todos los permisos (true para lista vacía).
func HasAllPermissions(role string, permissions []Permission) bool {
	set := permissionsOf(role)
	for _, p := range permissions {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

// HasAnyPermission es true si role tiene al menos uno de los permisos (false para lista vacía).
func HasAnyPermission(role string, permissions []Permission) bool {
	set := permissionsOf(role)
	for _, p := range permissions {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

// PermissionsFor devuelve los permisos del rol en el orden de AllPermissions.
func PermissionsFor(role string) []Permission {
	set := permissionsOf(role)
	out := make([]Permission, 0, len(set))
	for _, p := range AllPermissions {
		if _, ok := set[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
