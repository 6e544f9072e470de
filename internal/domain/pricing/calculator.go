// Package pricing calcula los totales de un documento comercial a partir de
// sus líneas. Función pura: sin I/O ni estado; el redondeo a 2 decimales se
// aplica una sola vez, al final, para no acumular error entre pasos.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

var cien = decimal.NewFromInt(100)

// Line una línea (cantidad, precio unitario) de entrada al cálculo.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals desglose de totales de un documento.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// Rounded devuelve los totales redondeados a 2 decimales (vista para
// persistencia y respuestas; los intermedios se mantienen exactos).
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:       t.Subtotal.Round(2),
		DiscountAmount: t.DiscountAmount.Round(2),
		TaxableAmount:  t.TaxableAmount.Round(2),
		TaxAmount:      t.TaxAmount.Round(2),
		Total:          t.Total.Round(2),
	}
}

// Calculate computa subtotal, descuento, base gravable, impuesto y total.
//
//	subtotal  = Σ cantidad_i × precio_i
//	descuento = subtotal × discountPct / 100
//	base      = subtotal − descuento
//	impuesto  = base × taxPct / 100
//	total     = base + impuesto
//
// Una lista vacía produce todos los valores en cero (documento sin líneas es
// válido; el mínimo de líneas lo exige el caller, no el cálculo).
func Calculate(lines []Line, discountPct, taxPct decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromInt(int64(l.Quantity)).Mul(l.UnitPrice))
	}
	discount := subtotal.Mul(discountPct).Div(cien)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxPct).Div(cien)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      tax,
		Total:          taxable.Add(tax),
	}
}

// LineTotal total de una línea: cantidad × precio, redondeado a 2 decimales.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(unitPrice).Round(2)
}

// ValidateLines rechaza líneas con cantidad < 1 o precio negativo. Se invoca
// antes de Calculate; el cálculo asume entrada ya validada.
func ValidateLines(lines []Line) error {
	for _, l := range lines {
		if l.Quantity < 1 {
			return domain.ErrInvalidInput
		}
		if l.UnitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// ValidatePercentage rechaza porcentajes fuera de [0, 100].
func ValidatePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(cien) {
		return domain.ErrInvalidInput
	}
	return nil
}
