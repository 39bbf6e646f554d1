package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo vínculos sobre la tabla assignments. La unicidad de la asignación activa
// la garantiza el índice parcial assignments_active_uq.
type AssignmentRepo struct {
	db querier
}

// NewAssignmentRepository construye el adaptador.
func NewAssignmentRepository(db querier) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

func (r *AssignmentRepo) insert(ctx context.Context, tenantID, kind, subjectID, entityID string) (*entity.Assignment, error) {
	a := &entity.Assignment{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Kind:       kind,
		SubjectID:  subjectID,
		EntityID:   entityID,
		AssignedAt: time.Now().UTC(),
	}
	query := `
		INSERT INTO assignments (id, tenant_id, kind, subject_id, entity_id, assigned_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(ctx, query, a.ID, a.TenantID, a.Kind, a.SubjectID, a.EntityID, a.AssignedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	return a, nil
}

// revoke marca revoked_at en la asignación activa de la clave, sin lectura previa.
func (r *AssignmentRepo) revoke(ctx context.Context, tenantID, kind, subjectID, entityID string) error {
	query := `
		UPDATE assignments SET revoked_at = $5
		WHERE tenant_id = $1 AND kind = $2 AND subject_id = $3 AND entity_id = $4 AND revoked_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, tenantID, kind, subjectID, entityID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("revoke assignment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

// AssignManagerToArea crea el vínculo AREA_MANAGER usuario -> área.
func (r *AssignmentRepo) AssignManagerToArea(ctx context.Context, tenantID, areaID, userID string) (*entity.Assignment, error) {
	return r.insert(ctx, tenantID, entity.AssignmentAreaManager, userID, areaID)
}

// RemoveManagerFromArea revoca el vínculo AREA_MANAGER activo.
func (r *AssignmentRepo) RemoveManagerFromArea(ctx context.Context, tenantID, areaID, userID string) error {
	return r.revoke(ctx, tenantID, entity.AssignmentAreaManager, userID, areaID)
}

// AssignSupervisorToWarehouse crea el vínculo WAREHOUSE_SUPERVISOR usuario -> bodega.
func (r *AssignmentRepo) AssignSupervisorToWarehouse(ctx context.Context, tenantID, warehouseID, userID string) (*entity.Assignment, error) {
	return r.insert(ctx, tenantID, entity.AssignmentWarehouseSupervisor, userID, warehouseID)
}

// RemoveSupervisorFromWarehouse revoca el vínculo WAREHOUSE_SUPERVISOR activo.
func (r *AssignmentRepo) RemoveSupervisorFromWarehouse(ctx context.Context, tenantID, warehouseID, userID string) error {
	return r.revoke(ctx, tenantID, entity.AssignmentWarehouseSupervisor, userID, warehouseID)
}

// AssignWarehouseToArea crea el vínculo AREA_WAREHOUSE área -> bodega.
func (r *AssignmentRepo) AssignWarehouseToArea(ctx context.Context, tenantID, areaID, warehouseID string) (*entity.Assignment, error) {
	return r.insert(ctx, tenantID, entity.AssignmentAreaWarehouse, areaID, warehouseID)
}

// RemoveWarehouseFromArea revoca el vínculo AREA_WAREHOUSE activo.
func (r *AssignmentRepo) RemoveWarehouseFromArea(ctx context.Context, tenantID, areaID, warehouseID string) error {
	return r.revoke(ctx, tenantID, entity.AssignmentAreaWarehouse, areaID, warehouseID)
}

// RemoveAssignment revoca una asignación activa por ID.
func (r *AssignmentRepo) RemoveAssignment(ctx context.Context, tenantID, assignmentID string) error {
	query := `
		UPDATE assignments SET revoked_at = $3
		WHERE tenant_id = $1 AND id = $2 AND revoked_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, tenantID, assignmentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("revoke assignment by id: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

// GetByID obtiene una asignación (activa o revocada).
func (r *AssignmentRepo) GetByID(ctx context.Context, tenantID, assignmentID string) (*entity.Assignment, error) {
	query := `
		SELECT id, tenant_id, kind, subject_id, entity_id, assigned_at, revoked_at
		FROM assignments WHERE tenant_id = $1 AND id = $2`
	a, err := scanAssignment(r.db.QueryRow(ctx, query, tenantID, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// ListActiveBySubject asignaciones activas del sujeto, de la más antigua a la más nueva.
func (r *AssignmentRepo) ListActiveBySubject(ctx context.Context, tenantID, subjectID string) ([]*entity.Assignment, error) {
	query := `
		SELECT id, tenant_id, kind, subject_id, entity_id, assigned_at, revoked_at
		FROM assignments
		WHERE tenant_id = $1 AND subject_id = $2 AND revoked_at IS NULL
		ORDER BY assigned_at, entity_id`
	rows, err := r.db.Query(ctx, query, tenantID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAssignment(row pgx.Row) (*entity.Assignment, error) {
	var a entity.Assignment
	if err := row.Scan(&a.ID, &a.TenantID, &a.Kind, &a.SubjectID, &a.EntityID, &a.AssignedAt, &a.RevokedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
