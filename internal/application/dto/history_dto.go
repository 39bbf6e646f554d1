package dto

import "time"

// AssignmentHistoryResponse entrada del historial de asignaciones.
type AssignmentHistoryResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	EntityID        string    `json:"entity_id"`
	EntityType      string    `json:"entity_type"`
	Action          string    `json:"action"`
	PerformedBy     string    `json:"performed_by"`
	PerformedByName string    `json:"performed_by_name"`
	Timestamp       time.Time `json:"timestamp"`
}

// AssignmentHistoryListResponse historial paginado, el más reciente primero.
type AssignmentHistoryListResponse struct {
	Items []AssignmentHistoryResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}

// EnablementHistoryResponse entrada del historial de habilitación.
type EnablementHistoryResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Action          string    `json:"action"`
	PerformedByID   string    `json:"performed_by_id"`
	PerformedByName string    `json:"performed_by_name"`
	Reason          string    `json:"reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// EnablementHistoryListResponse historial paginado, el más reciente primero.
type EnablementHistoryListResponse struct {
	Items []EnablementHistoryResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}
