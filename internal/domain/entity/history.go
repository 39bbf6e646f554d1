package entity

import "time"

// Tipos de entidad en el historial de asignaciones.
const (
	HistoryEntityArea      = "AREA"
	HistoryEntityWarehouse = "WAREHOUSE"
)

// Acciones del historial de asignaciones.
const (
	HistoryActionAssigned = "ASSIGNED"
	HistoryActionRemoved  = "REMOVED"
)

// Acciones del historial de habilitación.
const (
	EnablementActionEnabled  = "ENABLED"
	EnablementActionDisabled = "DISABLED"
)

// AssignmentHistoryEntry registro inmutable de un cambio de asignación. Solo lo crea el Recorder.
type AssignmentHistoryEntry struct {
	ID              string
	TenantID        string
	UserID          string
	EntityID        string
	EntityType      string // AREA, WAREHOUSE
	Action          string // ASSIGNED, REMOVED
	PerformedBy     string
	PerformedByName string
	Timestamp       time.Time
}

// UserEnablementHistoryEntry registro inmutable de una transición de estado de usuario.
type UserEnablementHistoryEntry struct {
	ID              string
	TenantID        string
	UserID          string
	Action          string // ENABLED, DISABLED
	PerformedByID   string
	PerformedByName string
	Reason          string // obligatorio en DISABLED
	OccurredAt      time.Time
}
