package entity

import "time"

// Roles canónicos. El backend puede enviar alias (JEFE_AREA, BODEGUERO...); ver access.NormalizeRole.
const (
	RoleAdmin               = "ADMIN"
	RoleAreaManager         = "AREA_MANAGER"
	RoleWarehouseSupervisor = "WAREHOUSE_SUPERVISOR"
)

// Estados de usuario.
const (
	UserStatusEnabled  = "ENABLED"
	UserStatusDisabled = "DISABLED"
)

// User es la proyección de lectura/escritura de un usuario del backend (pertenece a un tenant).
// Areas y Warehouses reflejan las asignaciones activas AREA_MANAGER y WAREHOUSE_SUPERVISOR.
type User struct {
	ID         string
	TenantID   string
	Email      string
	Name       string
	Phone      string
	Role       string
	Status     string
	Areas      []string
	Warehouses []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsEnabled se deriva de Status; el flag lo controla el backend.
func (u *User) IsEnabled() bool {
	return u != nil && u.Status == UserStatusEnabled
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s string) bool {
	return s == UserStatusEnabled || s == UserStatusDisabled
}

// Actor identifica a quien ejecuta una operación (se toma del token).
type Actor struct {
	ID   string
	Name string
}
