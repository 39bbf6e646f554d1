package repository

import (
	"context"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

// AreaRepository define el puerto de persistencia para Area (DIP).
type AreaRepository interface {
	Create(ctx context.Context, area *entity.Area) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Area, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Area, error)
}
