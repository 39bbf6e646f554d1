package seed

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-admin/internal/infrastructure/memory"
)

// Load vuelca el dataset en el store en memoria. Las relaciones de los usuarios se crean
// como asignaciones activas.
func (d *Dataset) Load(ctx context.Context, store *memory.Store) error {
	for _, a := range d.Areas {
		if err := store.Areas.Create(ctx, a); err != nil {
			return fmt.Errorf("área %s: %w", a.ID, err)
		}
	}
	for _, w := range d.Warehouses {
		if err := store.Warehouses.Create(ctx, w); err != nil {
			return fmt.Errorf("bodega %s: %w", w.ID, err)
		}
	}
	for _, u := range d.Users {
		store.Users.Put(u)
		for _, areaID := range u.Areas {
			if _, err := store.Assignments.AssignManagerToArea(ctx, d.TenantID, areaID, u.ID); err != nil {
				return fmt.Errorf("usuario %s, área %s: %w", u.ID, areaID, err)
			}
		}
		for _, warehouseID := range u.Warehouses {
			if _, err := store.Assignments.AssignSupervisorToWarehouse(ctx, d.TenantID, warehouseID, u.ID); err != nil {
				return fmt.Errorf("usuario %s, bodega %s: %w", u.ID, warehouseID, err)
			}
		}
	}
	for _, l := range d.Links {
		if _, err := store.Assignments.AssignWarehouseToArea(ctx, d.TenantID, l.AreaID, l.WarehouseID); err != nil {
			return fmt.Errorf("vínculo %s-%s: %w", l.AreaID, l.WarehouseID, err)
		}
	}
	return nil
}
