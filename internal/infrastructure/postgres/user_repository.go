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

var _ repository.UserRepository = (*UserRepo)(nil)

// userColumns incluye las áreas y bodegas activas como arrays ordenados.
const userColumns = `
	u.id, u.tenant_id, u.email, u.name, u.phone, u.role, u.status, u.created_at, u.updated_at,
	COALESCE((SELECT array_agg(a.entity_id ORDER BY a.entity_id) FROM assignments a
		WHERE a.tenant_id = u.tenant_id AND a.subject_id = u.id
		  AND a.kind = 'AREA_MANAGER' AND a.revoked_at IS NULL), '{}') AS areas,
	COALESCE((SELECT array_agg(a.entity_id ORDER BY a.entity_id) FROM assignments a
		WHERE a.tenant_id = u.tenant_id AND a.subject_id = u.id
		  AND a.kind = 'WAREHOUSE_SUPERVISOR' AND a.revoked_at IS NULL), '{}') AS warehouses`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db querier) *UserRepo {
	return &UserRepo{db: db}
}

// GetByID obtiene un usuario del tenant con sus relaciones activas.
func (r *UserRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.tenant_id = $1 AND u.id = $2`
	u, err := scanUser(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// Update actualiza los campos escalares; las relaciones viven en assignments.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET email = $3, name = $4, phone = $5, role = $6, status = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.db.Exec(ctx, query,
		user.TenantID, user.ID, user.Email, user.Name, user.Phone, user.Role, user.Status, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email duplicado: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListByTenant lista usuarios del tenant ordenados por nombre.
func (r *UserRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u WHERE u.tenant_id = $1 ORDER BY u.name, u.id LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, tenantID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Email, &u.Name, &u.Phone, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
		&u.Areas, &u.Warehouses,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
