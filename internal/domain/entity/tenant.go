package entity

import "time"

// Tenant representa una organización aislada del sistema (multi-tenant).
// Ningún dato de un tenant es visible para otro.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
