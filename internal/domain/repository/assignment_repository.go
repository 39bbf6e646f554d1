package repository

import (
	"context"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

// AssignmentRepository puerto de los vínculos jefe-área, supervisor-bodega y área-bodega.
// Cada método es una llamada independiente que puede fallar.
//
// Contrato de errores:
//   - Assign*: domain.ErrConflict si ya existe una asignación activa igual.
//   - Remove*: domain.ErrNotFound si no hay asignación activa que revocar.
//   - cualquier otro error es de transporte.
//
// Las remociones revocan directamente por clave (tipo, sujeto, entidad) o por ID;
// no se hace lectura previa de la colección.
type AssignmentRepository interface {
	AssignManagerToArea(ctx context.Context, tenantID, areaID, userID string) (*entity.Assignment, error)
	RemoveManagerFromArea(ctx context.Context, tenantID, areaID, userID string) error
	AssignSupervisorToWarehouse(ctx context.Context, tenantID, warehouseID, userID string) (*entity.Assignment, error)
	RemoveSupervisorFromWarehouse(ctx context.Context, tenantID, warehouseID, userID string) error
	AssignWarehouseToArea(ctx context.Context, tenantID, areaID, warehouseID string) (*entity.Assignment, error)
	RemoveWarehouseFromArea(ctx context.Context, tenantID, areaID, warehouseID string) error
	RemoveAssignment(ctx context.Context, tenantID, assignmentID string) error

	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, tenantID, assignmentID string) (*entity.Assignment, error)
	ListActiveBySubject(ctx context.Context, tenantID, subjectID string) ([]*entity.Assignment, error)
}
