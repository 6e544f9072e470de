package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueRow fila cruda para la serie de ingresos: fecha de creación y total
// de una factura pagada.
type RevenueRow struct {
	CreatedAt time.Time
	Total     decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para reportes de ingresos.
type AnalyticsRepository interface {
	// PaidInvoiceTotals devuelve (created_at, total) de las facturas pagadas
	// del tenant desde la fecha indicada, ordenadas ascendente por creación.
	PaidInvoiceTotals(ctx context.Context, tenantID string, since time.Time) ([]RevenueRow, error)
}
