package dto

import "time"

// CreateAreaRequest entrada para crear un área.
type CreateAreaRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=500"`
}

// AreaResponse salida de un área.
type AreaResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AreaListResponse lista paginada de áreas.
type AreaListResponse struct {
	Items []AreaResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SetAreaWarehousesRequest conjunto deseado de bodegas del área.
type SetAreaWarehousesRequest struct {
	WarehouseIDs []string `json:"warehouse_ids" validate:"dive,required,max=64"`
}

// AreaWarehousesResponse bodegas del área tras la reconciliación.
type AreaWarehousesResponse struct {
	AreaID       string                   `json:"area_id"`
	WarehouseIDs []string                 `json:"warehouse_ids"`
	Assignments  AssignmentResultResponse `json:"assignments"`
}
