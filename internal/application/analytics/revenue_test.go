package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fecha(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// TestSeries_SemanaAgrupaPorDiaYRellena los buckets sin facturas aparecen con
// ingreso cero y la serie cubre los últimos 7 días completos.
func TestSeries_SemanaAgrupaPorDiaYRellena(t *testing.T) {
	now := fecha("2026-08-27T14:30:00Z")
	rows := []repository.RevenueRow{
		{CreatedAt: fecha("2026-08-25T09:15:00Z"), Total: dec("100.555")},
		{CreatedAt: fecha("2026-08-25T16:40:00Z"), Total: dec("49.445")},
		{CreatedAt: fecha("2026-08-27T08:00:00Z"), Total: dec("76.23")},
	}

	serie := analytics.Series(rows, analytics.PeriodWeek, now)

	require.Len(t, serie, 7)
	assert.Equal(t, "2026-08-21", serie[0].Date)
	assert.Equal(t, "2026-08-27", serie[6].Date)

	porFecha := make(map[string]decimal.Decimal, len(serie))
	for _, p := range serie {
		porFecha[p.Date] = p.Revenue
	}
	assert.True(t, dec("150.00").Equal(porFecha["2026-08-25"]), "suma redondeada del día")
	assert.True(t, dec("76.23").Equal(porFecha["2026-08-27"]))
	assert.True(t, porFecha["2026-08-22"].IsZero(), "día sin facturas es cero")
}

// TestSeries_HoyAgrupaPorHora desde las 00:00 hasta la hora actual.
func TestSeries_HoyAgrupaPorHora(t *testing.T) {
	now := fecha("2026-08-27T14:30:00Z")
	rows := []repository.RevenueRow{
		{CreatedAt: fecha("2026-08-27T09:15:00Z"), Total: dec("50")},
		{CreatedAt: fecha("2026-08-27T09:45:00Z"), Total: dec("25")},
		{CreatedAt: fecha("2026-08-27T14:05:00Z"), Total: dec("10")},
	}

	serie := analytics.Series(rows, analytics.PeriodToday, now)

	require.Len(t, serie, 15) // 00:00 .. 14:00
	assert.Equal(t, "00:00", serie[0].Date)
	assert.Equal(t, "14:00", serie[14].Date)
	assert.True(t, dec("75").Equal(serie[9].Revenue))
	assert.True(t, dec("10").Equal(serie[14].Revenue))
}

// TestSeries_AnioAgrupaPorMes últimos 12 meses calendario.
func TestSeries_AnioAgrupaPorMes(t *testing.T) {
	now := fecha("2026-08-27T14:30:00Z")
	rows := []repository.RevenueRow{
		{CreatedAt: fecha("2025-09-10T10:00:00Z"), Total: dec("1200.50")},
		{CreatedAt: fecha("2026-08-01T10:00:00Z"), Total: dec("300")},
	}

	serie := analytics.Series(rows, analytics.PeriodYear, now)

	require.Len(t, serie, 12)
	assert.Equal(t, "2025-09", serie[0].Date)
	assert.Equal(t, "2026-08", serie[11].Date)
	assert.True(t, dec("1200.50").Equal(serie[0].Revenue))
	assert.True(t, dec("300").Equal(serie[11].Revenue))
	assert.True(t, serie[5].Revenue.IsZero())
}

// TestSeries_PeriodoDesconocidoEsMes un período no reconocido cae al mes.
func TestSeries_PeriodoDesconocidoEsMes(t *testing.T) {
	now := fecha("2026-08-27T14:30:00Z")

	serie := analytics.Series(nil, "quincena", now)

	require.Len(t, serie, 30)
	assert.Equal(t, "2026-07-29", serie[0].Date)
	assert.Equal(t, "2026-08-27", serie[29].Date)
	for _, p := range serie {
		assert.True(t, p.Revenue.IsZero())
	}
}

type fakeAnalyticsRepo struct {
	gotTenant string
	gotSince  time.Time
	rows      []repository.RevenueRow
}

func (f *fakeAnalyticsRepo) PaidInvoiceTotals(_ context.Context, tenantID string, since time.Time) ([]repository.RevenueRow, error) {
	f.gotTenant = tenantID
	f.gotSince = since
	return f.rows, nil
}

// TestRevenue_ConsultaDesdeElInicioDelPeriodo el caso de uso consulta con el
// tenant y la fecha de corte del período.
func TestRevenue_ConsultaDesdeElInicioDelPeriodo(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewRevenueUseCase(repo)

	antes := time.Now()
	serie, err := uc.Revenue(context.Background(), "tenant-a", analytics.PeriodWeek)
	require.NoError(t, err)

	assert.Equal(t, "tenant-a", repo.gotTenant)
	assert.WithinDuration(t, antes.AddDate(0, 0, -7), repo.gotSince, time.Minute)
	require.Len(t, serie, 7)
}
