package repository

import (
	"context"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

// AssignmentHistoryRepository historial append-only de asignaciones. No existe Update ni Delete.
type AssignmentHistoryRepository interface {
	Create(ctx context.Context, entry *entity.AssignmentHistoryEntry) error
	ListByUser(ctx context.Context, tenantID, userID string, limit, offset int) ([]*entity.AssignmentHistoryEntry, error)
}

// EnablementHistoryRepository historial append-only de habilitación/deshabilitación de usuarios.
type EnablementHistoryRepository interface {
	Create(ctx context.Context, entry *entity.UserEnablementHistoryEntry) error
	ListByUser(ctx context.Context, tenantID, userID string, limit, offset int) ([]*entity.UserEnablementHistoryEntry, error)
}
