package entity

import "time"

// Tipos de asignación.
const (
	AssignmentAreaManager         = "AREA_MANAGER"         // usuario -> área
	AssignmentWarehouseSupervisor = "WAREHOUSE_SUPERVISOR" // usuario -> bodega
	AssignmentAreaWarehouse       = "AREA_WAREHOUSE"       // área -> bodega
)

// Assignment es un vínculo dirigido SubjectID -> EntityID de un tipo dado.
// Para AREA_MANAGER y WAREHOUSE_SUPERVISOR el sujeto es un usuario; para AREA_WAREHOUSE es un área.
// Solo puede existir una asignación activa por (Kind, SubjectID, EntityID).
type Assignment struct {
	ID         string
	TenantID   string
	Kind       string
	SubjectID  string
	EntityID   string
	AssignedAt time.Time
	RevokedAt  *time.Time
}

// IsActive se deriva de RevokedAt.
func (a *Assignment) IsActive() bool {
	return a != nil && a.RevokedAt == nil
}
