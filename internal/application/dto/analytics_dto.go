package dto

import "github.com/shopspring/decimal"

// RevenuePointResponse punto de la serie de ingresos para gráficas.
// Date es la etiqueta del bucket: "15:00" (hoy), "2026-08-27" (semana/mes)
// o "2026-08" (año).
type RevenuePointResponse struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}
