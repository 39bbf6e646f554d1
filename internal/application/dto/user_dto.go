package dto

import "time"

// UpdateUserRequest actualización parcial de un usuario.
// Un campo nil no se toca. Areas/Warehouses son el conjunto DESEADO completo (no un delta):
// nil = no se envió, lista vacía = quitar todas.
type UpdateUserRequest struct {
	Name       *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string   `json:"email" validate:"omitempty,email"`
	Phone      *string   `json:"phone" validate:"omitempty,max=30"`
	Role       *string   `json:"role" validate:"omitempty,min=1,max=50"`
	Status     *string   `json:"status" validate:"omitempty,oneof=ENABLED DISABLED"`
	Reason     string    `json:"reason" validate:"max=500"`
	Areas      *[]string `json:"areas" validate:"omitempty,dive,required,max=64"`
	Warehouses *[]string `json:"warehouses" validate:"omitempty,dive,required,max=64"`
}

// SetUserStatusRequest habilita o deshabilita un usuario. Reason es obligatorio al deshabilitar.
type SetUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ENABLED DISABLED"`
	Reason string `json:"reason" validate:"max=500"`
}

// UserResponse vista de un usuario con sus relaciones.
type UserResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Areas      []string  `json:"areas"`
	Warehouses []string  `json:"warehouses"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AssignmentOperationResponse una operación de la reconciliación.
type AssignmentOperationResponse struct {
	Kind     string `json:"kind"`
	Action   string `json:"action"`
	EntityID string `json:"entity_id"`
	NoOp     bool   `json:"no_op,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AssignmentResultResponse resultado itemizado de la reconciliación.
// Outcome: NO_CHANGES | APPLIED | PARTIAL | FAILED.
type AssignmentResultResponse struct {
	Outcome string                        `json:"outcome"`
	Applied []AssignmentOperationResponse `json:"applied"`
	Failed  []AssignmentOperationResponse `json:"failed"`
}

// UserUpdateResponse salida de la actualización orquestada.
type UserUpdateResponse struct {
	User          UserResponse             `json:"user"`
	Assignments   AssignmentResultResponse `json:"assignments"`
	HistoryErrors []string                 `json:"history_errors,omitempty"`
}

// UserStatusResponse salida del cambio de estado.
type UserStatusResponse struct {
	User    UserResponse               `json:"user"`
	Changed bool                       `json:"changed"`
	Entry   *EnablementHistoryResponse `json:"entry,omitempty"`
}
