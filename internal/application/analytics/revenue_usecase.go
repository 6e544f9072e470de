// Package analytics contiene los casos de uso de reportes de ingresos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// Períodos soportados por GET /api/revenue.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// RevenueUseCase genera la serie de ingresos de facturas pagadas por período.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a la tabla de facturas; delega todo en el repositorio.
type RevenueUseCase struct {
	repo repository.AnalyticsRepository
}

// NewRevenueUseCase construye el caso de uso.
func NewRevenueUseCase(repo repository.AnalyticsRepository) *RevenueUseCase {
	return &RevenueUseCase{repo: repo}
}

// Revenue devuelve la serie de ingresos del tenant para el período indicado.
// Un período desconocido o vacío se trata como "month".
func (uc *RevenueUseCase) Revenue(ctx context.Context, tenantID, period string) ([]dto.RevenuePointResponse, error) {
	period = normalizePeriod(period)
	now := time.Now()

	rows, err := uc.repo.PaidInvoiceTotals(ctx, tenantID, periodStart(period, now))
	if err != nil {
		return nil, fmt.Errorf("revenue: facturas pagadas: %w", err)
	}
	return Series(rows, period, now), nil
}

func normalizePeriod(period string) string {
	switch period {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return period
	default:
		return PeriodMonth
	}
}

// periodStart fecha desde la que se consultan facturas para cada período.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// Series agrupa las filas en buckets según el período y rellena con cero los
// buckets sin ingresos, de modo que la serie siempre cubre el rango completo:
// hoy → por hora (00:00 hasta la hora actual), semana → últimos 7 días,
// mes → últimos 30 días, año → últimos 12 meses. Los montos se redondean a
// dos decimales por bucket.
func Series(rows []repository.RevenueRow, period string, now time.Time) []dto.RevenuePointResponse {
	period = normalizePeriod(period)

	byBucket := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		key := bucketKey(period, row.CreatedAt)
		byBucket[key] = byBucket[key].Add(row.Total)
	}

	keys := bucketRange(period, now)
	out := make([]dto.RevenuePointResponse, 0, len(keys))
	for _, key := range keys {
		out = append(out, dto.RevenuePointResponse{
			Date:    key,
			Revenue: byBucket[key].Round(2),
		})
	}
	return out
}

func bucketKey(period string, t time.Time) string {
	switch period {
	case PeriodToday:
		return fmt.Sprintf("%02d:00", t.Hour())
	case PeriodYear:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// bucketRange claves del rango completo del período, en orden cronológico.
func bucketRange(period string, now time.Time) []string {
	var keys []string
	switch period {
	case PeriodToday:
		for hour := 0; hour <= now.Hour(); hour++ {
			keys = append(keys, fmt.Sprintf("%02d:00", hour))
		}
	case PeriodWeek:
		for i := 6; i >= 0; i-- {
			keys = append(keys, now.AddDate(0, 0, -i).Format("2006-01-02"))
		}
	case PeriodYear:
		// desde el día 1 para que el paso mensual no se normalice en meses cortos
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for i := 11; i >= 0; i-- {
			keys = append(keys, first.AddDate(0, -i, 0).Format("2006-01"))
		}
	default: // month
		for i := 29; i >= 0; i-- {
			keys = append(keys, now.AddDate(0, 0, -i).Format("2006-01-02"))
		}
	}
	return keys
}
