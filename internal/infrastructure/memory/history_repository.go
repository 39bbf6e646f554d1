package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

var (
	_ repository.AssignmentHistoryRepository = (*AssignmentHistoryRepo)(nil)
	_ repository.EnablementHistoryRepository = (*EnablementHistoryRepo)(nil)
)

// AssignmentHistoryRepo historial append-only en memoria.
type AssignmentHistoryRepo struct {
	mu      sync.RWMutex
	entries []entity.AssignmentHistoryEntry
}

// NewAssignmentHistoryRepository construye el repositorio vacío.
func NewAssignmentHistoryRepository() *AssignmentHistoryRepo {
	return &AssignmentHistoryRepo{}
}

// Create agrega una entrada.
func (r *AssignmentHistoryRepo) Create(_ context.Context, e *entity.AssignmentHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

// ListByUser entradas del usuario, la más reciente primero.
func (r *AssignmentHistoryRepo) ListByUser(_ context.Context, tenantID, userID string, limit, offset int) ([]*entity.AssignmentHistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.AssignmentHistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.TenantID == tenantID && e.UserID == userID {
			out = append(out, &e)
		}
	}
	return page(out, limit, offset), nil
}

// EnablementHistoryRepo historial de habilitación en memoria.
type EnablementHistoryRepo struct {
	mu      sync.RWMutex
	entries []entity.UserEnablementHistoryEntry
}

// NewEnablementHistoryRepository construye el repositorio vacío.
func NewEnablementHistoryRepository() *EnablementHistoryRepo {
	return &EnablementHistoryRepo{}
}

// Create agrega una entrada.
func (r *EnablementHistoryRepo) Create(_ context.Context, e *entity.UserEnablementHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

// ListByUser entradas del usuario, la más reciente primero.
func (r *EnablementHistoryRepo) ListByUser(_ context.Context, tenantID, userID string, limit, offset int) ([]*entity.UserEnablementHistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.UserEnablementHistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.TenantID == tenantID && e.UserID == userID {
			out = append(out, &e)
		}
	}
	return page(out, limit, offset), nil
}
