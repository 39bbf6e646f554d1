package repository

import (
	"context"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

// UserRepository puerto de persistencia para User (DIP).
// GetByID devuelve (nil, nil) si no existe; Areas y Warehouses se leen de las asignaciones activas.
type UserRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*entity.User, error)
	// Update persiste solo los campos escalares (nombre, teléfono, rol, estado...).
	Update(ctx context.Context, user *entity.User) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.User, error)
}
