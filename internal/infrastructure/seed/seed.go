// Package seed carga datos iniciales (usuarios, áreas, bodegas y sus vínculos) desde una
// exportación CSV del backend. Sirve para el modo memoria y para generar scripts SQL.
//
// Formato, una fila por registro (la primera columna es el tipo):
//
//	area,<id>,<nombre>,<descripción>
//	warehouse,<id>,<nombre>,<dirección>
//	user,<id>,<nombre>,<email>,<teléfono>,<rol>,<estado>,<áreas a|b>,<bodegas a|b>
//	link,<área>,<bodega>
//
// Las líneas que empiezan con # se ignoran.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/access"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

// Options parámetros de lectura.
type Options struct {
	TenantID string
	// Latin1 decodifica la entrada como ISO-8859-1 (exportaciones de Excel).
	Latin1   bool
	Now      time.Time
}

// Link vínculo área -> bodega.
type Link struct {
	AreaID      string
	WarehouseID string
}

// Dataset registros leídos, en el orden del archivo.
type Dataset struct {
	TenantID   string
	Areas      []*entity.Area
	Warehouses []*entity.Warehouse
	Users      []*entity.User
	Links      []Link

	now time.Time
}

// Parse lee el CSV y valida roles, estados y capacidades.
func Parse(r io.Reader, opts Options) (*Dataset, error) {
	if strings.TrimSpace(opts.TenantID) == "" {
		return nil, fmt.Errorf("%w: tenant requerido", domain.ErrInvalidInput)
	}
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	d := &Dataset{TenantID: opts.TenantID, now: now}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if err := d.add(rec, now); err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
	}
	return d, nil
}

func (d *Dataset) add(rec []string, now time.Time) error {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	switch strings.ToLower(rec[0]) {
	case "area":
		if err := need(rec, 3); err != nil {
			return err
		}
		d.Areas = append(d.Areas, &entity.Area{
			ID: rec[1], TenantID: d.TenantID, Name: rec[2], Description: col(rec, 3),
			CreatedAt: now, UpdatedAt: now,
		})
	case "warehouse":
		if err := need(rec, 3); err != nil {
			return err
		}
		d.Warehouses = append(d.Warehouses, &entity.Warehouse{
			ID: rec[1], TenantID: d.TenantID, Name: rec[2], Address: col(rec, 3),
			CreatedAt: now, UpdatedAt: now,
		})
	case "user":
		u, err := d.parseUser(rec, now)
		if err != nil {
			return err
		}
		d.Users = append(d.Users, u)
	case "link":
		if err := need(rec, 3); err != nil {
			return err
		}
		d.Links = append(d.Links, Link{AreaID: rec[1], WarehouseID: rec[2]})
	default:
		return fmt.Errorf("%w: tipo de fila %q", domain.ErrInvalidInput, rec[0])
	}
	return nil
}

func (d *Dataset) parseUser(rec []string, now time.Time) (*entity.User, error) {
	if err := need(rec, 6); err != nil {
		return nil, err
	}
	if rec[3] == "" {
		return nil, fmt.Errorf("%w: email requerido", domain.ErrInvalidInput)
	}
	role, ok := access.NormalizeRole(rec[5])
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, rec[5])
	}
	status := strings.ToUpper(col(rec, 6))
	if status == "" {
		status = entity.UserStatusEnabled
	}
	if !entity.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	u := &entity.User{
		ID:         rec[1],
		TenantID:   d.TenantID,
		Name:       rec[2],
		Email:      rec[3],
		Phone:      rec[4],
		Role:       role,
		Status:     status,
		Areas:      splitList(col(rec, 7)),
		Warehouses: splitList(col(rec, 8)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if len(u.Areas) > 0 && !access.CanManageAreas(role) {
		return nil, fmt.Errorf("%w: %s no puede tener áreas", domain.ErrRoleCapability, u.ID)
	}
	if len(u.Warehouses) > 0 && !access.CanSuperviseWarehouses(role) {
		return nil, fmt.Errorf("%w: %s no puede tener bodegas", domain.ErrRoleCapability, u.ID)
	}
	return u, nil
}

// need exige n columnas con id y nombre no vacíos.
func need(rec []string, n int) error {
	if len(rec) < n {
		return fmt.Errorf("%w: se esperaban al menos %d columnas", domain.ErrInvalidInput, n)
	}
	if rec[1] == "" || rec[2] == "" {
		return fmt.Errorf("%w: columna obligatoria vacía", domain.ErrInvalidInput)
	}
	return nil
}

func col(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, "|") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
