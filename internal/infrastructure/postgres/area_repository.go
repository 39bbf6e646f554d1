package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

var _ repository.AreaRepository = (*AreaRepo)(nil)

// AreaRepo implementación del puerto AreaRepository sobre PostgreSQL.
type AreaRepo struct {
	db querier
}

// NewAreaRepository construye el adaptador de persistencia para áreas.
func NewAreaRepository(db querier) *AreaRepo {
	return &AreaRepo{db: db}
}

// Create persiste una nueva área.
func (r *AreaRepo) Create(ctx context.Context, area *entity.Area) error {
	query := `
		INSERT INTO areas (id, tenant_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		area.ID, area.TenantID, area.Name, area.Description, area.CreatedAt, area.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert area: %w", err)
	}
	return nil
}

// GetByID obtiene un área del tenant.
func (r *AreaRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Area, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM areas WHERE tenant_id = $1 AND id = $2`
	var a entity.Area
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&a.ID, &a.TenantID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	return &a, nil
}

// ListByTenant lista áreas del tenant ordenadas por nombre.
func (r *AreaRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Area, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM areas WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, tenantID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
