package dto

import "time"

// AssignmentResponse vínculo activo o revocado.
type AssignmentResponse struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	SubjectID  string     `json:"subject_id"`
	EntityID   string     `json:"entity_id"`
	AssignedAt time.Time  `json:"assigned_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

// AssignmentListResponse asignaciones activas de un usuario.
type AssignmentListResponse struct {
	Items []AssignmentResponse `json:"items"`
}

// AssignmentRevokeResponse resultado de revocar una asignación por ID.
// HistoryErrors no vacío: la revocación se aplicó pero el historial no quedó completo.
type AssignmentRevokeResponse struct {
	AssignmentID  string   `json:"assignment_id"`
	Revoked       bool     `json:"revoked"`
	HistoryErrors []string `json:"history_errors,omitempty"`
}
