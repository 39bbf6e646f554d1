package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo asignaciones en memoria con índice de activas por (tenant, tipo, sujeto, entidad).
type AssignmentRepo struct {
	mu     sync.RWMutex
	byID   map[string]*entity.Assignment
	active map[string]string
	now    func() time.Time
}

// NewAssignmentRepository construye el repositorio vacío.
func NewAssignmentRepository() *AssignmentRepo {
	return &AssignmentRepo{
		byID:   make(map[string]*entity.Assignment),
		active: make(map[string]string),
		now:    time.Now,
	}
}

func activeKey(tenantID, kind, subjectID, entityID string) string {
	return tenantID + "|" + kind + "|" + subjectID + "|" + entityID
}

func (r *AssignmentRepo) assign(tenantID, kind, subjectID, entityID string) (*entity.Assignment, error) {
	if tenantID == "" || subjectID == "" || entityID == "" {
		return nil, domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := activeKey(tenantID, kind, subjectID, entityID)
	if _, ok := r.active[key]; ok {
		return nil, domain.ErrConflict
	}
	a := &entity.Assignment{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Kind:       kind,
		SubjectID:  subjectID,
		EntityID:   entityID,
		AssignedAt: r.now().UTC(),
	}
	r.byID[a.ID] = a
	r.active[key] = a.ID
	out := *a
	return &out, nil
}

func (r *AssignmentRepo) revoke(tenantID, kind, subjectID, entityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := activeKey(tenantID, kind, subjectID, entityID)
	id, ok := r.active[key]
	if !ok {
		return domain.ErrAssignmentNotFound
	}
	r.revokeLocked(key, id)
	return nil
}

func (r *AssignmentRepo) revokeLocked(key, id string) {
	now := r.now().UTC()
	r.byID[id].RevokedAt = &now
	delete(r.active, key)
}

// AssignManagerToArea crea el vínculo AREA_MANAGER usuario -> área.
func (r *AssignmentRepo) AssignManagerToArea(_ context.Context, tenantID, areaID, userID string) (*entity.Assignment, error) {
	return r.assign(tenantID, entity.AssignmentAreaManager, userID, areaID)
}

// RemoveManagerFromArea revoca el vínculo AREA_MANAGER activo.
func (r *AssignmentRepo) RemoveManagerFromArea(_ context.Context, tenantID, areaID, userID string) error {
	return r.revoke(tenantID, entity.AssignmentAreaManager, userID, areaID)
}

// AssignSupervisorToWarehouse crea el vínculo WAREHOUSE_SUPERVISOR usuario -> bodega.
func (r *AssignmentRepo) AssignSupervisorToWarehouse(_ context.Context, tenantID, warehouseID, userID string) (*entity.Assignment, error) {
	return r.assign(tenantID, entity.AssignmentWarehouseSupervisor, userID, warehouseID)
}

// RemoveSupervisorFromWarehouse revoca el vínculo WAREHOUSE_SUPERVISOR activo.
func (r *AssignmentRepo) RemoveSupervisorFromWarehouse(_ context.Context, tenantID, warehouseID, userID string) error {
	return r.revoke(tenantID, entity.AssignmentWarehouseSupervisor, userID, warehouseID)
}

// AssignWarehouseToArea crea el vínculo AREA_WAREHOUSE área -> bodega.
func (r *AssignmentRepo) AssignWarehouseToArea(_ context.Context, tenantID, areaID, warehouseID string) (*entity.Assignment, error) {
	return r.assign(tenantID, entity.AssignmentAreaWarehouse, areaID, warehouseID)
}

// RemoveWarehouseFromArea revoca el vínculo AREA_WAREHOUSE activo.
func (r *AssignmentRepo) RemoveWarehouseFromArea(_ context.Context, tenantID, areaID, warehouseID string) error {
	return r.revoke(tenantID, entity.AssignmentAreaWarehouse, areaID, warehouseID)
}

// RemoveAssignment revoca una asignación activa por ID.
func (r *AssignmentRepo) RemoveAssignment(_ context.Context, tenantID, assignmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[assignmentID]
	if !ok || a.TenantID != tenantID || !a.IsActive() {
		return domain.ErrAssignmentNotFound
	}
	r.revokeLocked(activeKey(a.TenantID, a.Kind, a.SubjectID, a.EntityID), a.ID)
	return nil
}

// GetByID devuelve una copia de la asignación o (nil, nil).
func (r *AssignmentRepo) GetByID(_ context.Context, tenantID, assignmentID string) (*entity.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[assignmentID]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	out := *a
	return &out, nil
}

// ListActiveBySubject lista las asignaciones activas del sujeto, de la más antigua a la más nueva.
func (r *AssignmentRepo) ListActiveBySubject(_ context.Context, tenantID, subjectID string) ([]*entity.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Assignment
	for _, id := range r.active {
		a := r.byID[id]
		if a.TenantID == tenantID && a.SubjectID == subjectID {
			c := *a
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Assignment) int {
		if c := a.AssignedAt.Compare(b.AssignedAt); c != 0 {
			return c
		}
		if a.EntityID < b.EntityID {
			return -1
		}
		if a.EntityID > b.EntityID {
			return 1
		}
		return 0
	})
	return out, nil
}

// activeEntities IDs de entidad activos para (tenant, tipo, sujeto), ordenados.
func (r *AssignmentRepo) activeEntities(tenantID, kind, subjectID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []string{}
	for _, id := range r.active {
		a := r.byID[id]
		if a.TenantID == tenantID && a.Kind == kind && a.SubjectID == subjectID {
			out = append(out, a.EntityID)
		}
	}
	slices.Sort(out)
	return out
}
