package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo del tenant.
// Stock es informativo y puede quedar negativo: no existe reserva de inventario.
type Product struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta vigente, >= 0
	Stock       int
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
