package entity

import "time"

// Warehouse representa una bodega del tenant.
type Warehouse struct {
	ID        string
	TenantID  string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
