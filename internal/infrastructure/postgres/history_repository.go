package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

var (
	_ repository.AssignmentHistoryRepository = (*AssignmentHistoryRepo)(nil)
	_ repository.EnablementHistoryRepository = (*EnablementHistoryRepo)(nil)
)

// AssignmentHistoryRepo historial append-only de asignaciones.
type AssignmentHistoryRepo struct {
	db querier
}

// NewAssignmentHistoryRepository construye el adaptador.
func NewAssignmentHistoryRepository(db querier) *AssignmentHistoryRepo {
	return &AssignmentHistoryRepo{db: db}
}

// Create inserta una entrada.
func (r *AssignmentHistoryRepo) Create(ctx context.Context, e *entity.AssignmentHistoryEntry) error {
	query := `
		INSERT INTO assignment_history
			(id, tenant_id, user_id, entity_id, entity_type, action, performed_by, performed_by_name, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.TenantID, e.UserID, e.EntityID, e.EntityType, e.Action, e.PerformedBy, e.PerformedByName, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert assignment history: %w", err)
	}
	return nil
}

// ListByUser entradas del usuario, la más reciente primero.
func (r *AssignmentHistoryRepo) ListByUser(ctx context.Context, tenantID, userID string, limit, offset int) ([]*entity.AssignmentHistoryEntry, error) {
	query := `
		SELECT id, tenant_id, user_id, entity_id, entity_type, action, performed_by, performed_by_name, occurred_at
		FROM assignment_history
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY occurred_at DESC, id DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, tenantID, userID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list assignment history: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssignmentHistoryEntry
	for rows.Next() {
		var e entity.AssignmentHistoryEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.EntityID, &e.EntityType, &e.Action,
			&e.PerformedBy, &e.PerformedByName, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan assignment history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// EnablementHistoryRepo historial append-only de habilitación.
type EnablementHistoryRepo struct {
	db querier
}

// NewEnablementHistoryRepository construye el adaptador.
func NewEnablementHistoryRepository(db querier) *EnablementHistoryRepo {
	return &EnablementHistoryRepo{db: db}
}

// Create inserta una entrada.
func (r *EnablementHistoryRepo) Create(ctx context.Context, e *entity.UserEnablementHistoryEntry) error {
	query := `
		INSERT INTO user_enablement_history
			(id, tenant_id, user_id, action, performed_by_id, performed_by_name, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.TenantID, e.UserID, e.Action, e.PerformedByID, e.PerformedByName, e.Reason, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert enablement history: %w", err)
	}
	return nil
}

// ListByUser entradas del usuario, la más reciente primero.
func (r *EnablementHistoryRepo) ListByUser(ctx context.Context, tenantID, userID string, limit, offset int) ([]*entity.UserEnablementHistoryEntry, error) {
	query := `
		SELECT id, tenant_id, user_id, action, performed_by_id, performed_by_name, reason, occurred_at
		FROM user_enablement_history
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY occurred_at DESC, id DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, tenantID, userID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list enablement history: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserEnablementHistoryEntry
	for rows.Next() {
		var e entity.UserEnablementHistoryEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.Action, &e.PerformedByID,
			&e.PerformedByName, &e.Reason, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan enablement history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
