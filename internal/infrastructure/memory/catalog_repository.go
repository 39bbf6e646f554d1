package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

var (
	_ repository.AreaRepository      = (*AreaRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
)

// AreaRepo áreas en memoria.
type AreaRepo struct {
	mu    sync.RWMutex
	areas map[string]entity.Area
}

// NewAreaRepository construye el repositorio vacío.
func NewAreaRepository() *AreaRepo {
	return &AreaRepo{areas: make(map[string]entity.Area)}
}

// Create persiste un área nueva.
func (r *AreaRepo) Create(_ context.Context, area *entity.Area) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.areas[area.ID]; ok {
		return domain.ErrConflict
	}
	r.areas[area.ID] = *area
	return nil
}

// GetByID devuelve el área o (nil, nil).
func (r *AreaRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Area, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.areas[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	return &a, nil
}

// ListByTenant lista áreas ordenadas por nombre.
func (r *AreaRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Area, error) {
	r.mu.RLock()
	var list []*entity.Area
	for _, a := range r.areas {
		if a.TenantID == tenantID {
			c := a
			list = append(list, &c)
		}
	}
	r.mu.RUnlock()
	slices.SortFunc(list, func(a, b *entity.Area) int { return strings.Compare(a.Name, b.Name) })
	return page(list, limit, offset), nil
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	mu         sync.RWMutex
	warehouses map[string]entity.Warehouse
}

// NewWarehouseRepository construye el repositorio vacío.
func NewWarehouseRepository() *WarehouseRepo {
	return &WarehouseRepo{warehouses: make(map[string]entity.Warehouse)}
}

// Create persiste una bodega nueva.
func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.warehouses[w.ID]; ok {
		return domain.ErrConflict
	}
	r.warehouses[w.ID] = *w
	return nil
}

// GetByID devuelve la bodega o (nil, nil).
func (r *WarehouseRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.warehouses[id]
	if !ok || w.TenantID != tenantID {
		return nil, nil
	}
	return &w, nil
}

// Update reemplaza nombre y dirección.
func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.warehouses[w.ID]
	if !ok || cur.TenantID != w.TenantID {
		return domain.ErrWarehouseNotFound
	}
	cur.Name = w.Name
	cur.Address = w.Address
	cur.UpdatedAt = w.UpdatedAt
	r.warehouses[w.ID] = cur
	return nil
}

// ListByTenant lista bodegas ordenadas por nombre.
func (r *WarehouseRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Warehouse, error) {
	r.mu.RLock()
	var list []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.TenantID == tenantID {
			c := w
			list = append(list, &c)
		}
	}
	r.mu.RUnlock()
	slices.SortFunc(list, func(a, b *entity.Warehouse) int { return strings.Compare(a.Name, b.Name) })
	return page(list, limit, offset), nil
}
