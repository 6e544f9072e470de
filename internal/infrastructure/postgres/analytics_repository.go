package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para la serie de ingresos.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// PaidInvoiceTotals devuelve (created_at, total) de las facturas pagadas del
// tenant desde la fecha indicada, ascendente por creación.
func (r *AnalyticsRepo) PaidInvoiceTotals(ctx context.Context, tenantID string, since time.Time) ([]repository.RevenueRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT created_at, total
		FROM invoices
		WHERE tenant_id = $1 AND status = $2 AND created_at >= $3
		ORDER BY created_at ASC`,
		tenantID, entity.InvoiceStatusPaid, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.PaidInvoiceTotals: %w", err)
	}
	defer rows.Close()

	var out []repository.RevenueRow
	for rows.Next() {
		var row repository.RevenueRow
		if err := rows.Scan(&row.CreatedAt, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.PaidInvoiceTotals scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.PaidInvoiceTotals rows: %w", err)
	}
	return out, nil
}
