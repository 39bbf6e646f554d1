package seed

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

// WriteSQL escribe un script idempotente (ON CONFLICT DO NOTHING) para PostgreSQL.
func (d *Dataset) WriteSQL(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "-- Datos iniciales del tenant %s\n\n", d.TenantID)

	for _, a := range d.Areas {
		fmt.Fprintf(bw, "INSERT INTO areas (id, tenant_id, name, description, created_at, updated_at) VALUES (%s, %s, %s, %s, %s, %s) ON CONFLICT (id) DO NOTHING;\n",
			quote(a.ID), quote(a.TenantID), quote(a.Name), quote(a.Description), ts(a.CreatedAt), ts(a.UpdatedAt))
	}
	for _, wh := range d.Warehouses {
		fmt.Fprintf(bw, "INSERT INTO warehouses (id, tenant_id, name, address, created_at, updated_at) VALUES (%s, %s, %s, %s, %s, %s) ON CONFLICT (id) DO NOTHING;\n",
			quote(wh.ID), quote(wh.TenantID), quote(wh.Name), quote(wh.Address), ts(wh.CreatedAt), ts(wh.UpdatedAt))
	}
	for _, u := range d.Users {
		fmt.Fprintf(bw, "INSERT INTO users (id, tenant_id, email, name, phone, role, status, created_at, updated_at) VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s) ON CONFLICT (id) DO NOTHING;\n",
			quote(u.ID), quote(u.TenantID), quote(u.Email), quote(u.Name), quote(u.Phone), quote(u.Role), quote(u.Status), ts(u.CreatedAt), ts(u.UpdatedAt))
	}
	for _, u := range d.Users {
		for _, areaID := range u.Areas {
			writeAssignment(bw, d.TenantID, entity.AssignmentAreaManager, u.ID, areaID, u.CreatedAt)
		}
		for _, warehouseID := range u.Warehouses {
			writeAssignment(bw, d.TenantID, entity.AssignmentWarehouseSupervisor, u.ID, warehouseID, u.CreatedAt)
		}
	}
	for _, l := range d.Links {
		writeAssignment(bw, d.TenantID, entity.AssignmentAreaWarehouse, l.AreaID, l.WarehouseID, d.now)
	}
	return bw.Flush()
}

func writeAssignment(w io.Writer, tenantID, kind, subjectID, entityID string, at time.Time) {
	fmt.Fprintf(w, "INSERT INTO assignments (id, tenant_id, kind, subject_id, entity_id, assigned_at) VALUES (%s, %s, %s, %s, %s, %s) ON CONFLICT DO NOTHING;\n",
		quote(uuid.New().String()), quote(tenantID), quote(kind), quote(subjectID), quote(entityID), ts(at))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func ts(t time.Time) string {
	return quote(t.UTC().Format(time.RFC3339Nano))
}
