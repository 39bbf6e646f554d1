package entity

import "time"

// Area es una unidad organizacional (p. ej. "Producción", "Despacho") administrada por jefes de área.
type Area struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
