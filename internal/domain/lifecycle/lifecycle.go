// Package lifecycle define las máquinas de estados de los documentos
// comerciales (cotización, pedido, factura). Los estados son etiquetas; las
// transiciones se validan al momento de actualizar, no en la base de datos.
package lifecycle

import (
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// DocType tipo de documento comercial.
type DocType string

const (
	DocQuote   DocType = "quote"
	DocOrder   DocType = "order"
	DocInvoice DocType = "invoice"
)

type machine struct {
	initial  string
	statuses map[string]bool
	terminal map[string]bool
	// reserved: estado que solo escribe la conversión, nunca un update directo.
	reserved string
}

var machines = map[DocType]machine{
	DocQuote: {
		initial: entity.QuoteStatusDraft,
		statuses: set(entity.QuoteStatusDraft, entity.QuoteStatusSent,
			entity.QuoteStatusApproved, entity.QuoteStatusRejected, entity.QuoteStatusExpired),
		terminal: set(entity.QuoteStatusRejected, entity.QuoteStatusExpired),
		reserved: entity.QuoteStatusApproved,
	},
	DocOrder: {
		initial: entity.OrderStatusPending,
		statuses: set(entity.OrderStatusPending, entity.OrderStatusProcessing,
			entity.OrderStatusCompleted, entity.OrderStatusCancelled),
		terminal: set(entity.OrderStatusCancelled),
		reserved: entity.OrderStatusCompleted,
	},
	DocInvoice: {
		initial: entity.InvoiceStatusDraft,
		statuses: set(entity.InvoiceStatusDraft, entity.InvoiceStatusSent,
			entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled),
		terminal: set(entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled),
	},
}

func set(ss ...string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// Initial estado inicial del tipo de documento.
func Initial(dt DocType) string {
	return machines[dt].initial
}

// IsValid indica si status pertenece al conjunto cerrado del tipo.
func IsValid(dt DocType, status string) bool {
	return machines[dt].statuses[status]
}

// IsTerminal indica si status no admite más transiciones.
func IsTerminal(dt DocType, status string) bool {
	return machines[dt].terminal[status]
}

// CanTransition valida un cambio de estado solicitado por un update directo.
// Mantener el mismo estado siempre es válido. Los estados reservados a la
// conversión (approved, completed) se rechazan aquí: solo los escribe el
// orquestador de conversión.
func CanTransition(dt DocType, from, to string) error {
	m, ok := machines[dt]
	if !ok {
		return fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, dt)
	}
	if !m.statuses[from] || !m.statuses[to] {
		return fmt.Errorf("%w: estado %q o %q fuera del conjunto de %s", domain.ErrInvalidInput, from, to, dt)
	}
	if from == to {
		return nil
	}
	if m.terminal[from] {
		return fmt.Errorf("%w: %s en estado terminal %q", domain.ErrInvalidTransition, dt, from)
	}
	if to == m.reserved && m.reserved != "" {
		return fmt.Errorf("%w: %q solo se asigna mediante conversión", domain.ErrInvalidTransition, to)
	}
	return nil
}

// CanConvert valida que un documento en estado from pueda convertirse (el
// estado de conversión es alcanzable desde cualquier estado no terminal).
func CanConvert(dt DocType, from string) error {
	m, ok := machines[dt]
	if !ok || m.reserved == "" {
		return fmt.Errorf("%w: %s no admite conversión", domain.ErrInvalidInput, dt)
	}
	if !m.statuses[from] {
		return fmt.Errorf("%w: estado %q fuera del conjunto de %s", domain.ErrInvalidInput, from, dt)
	}
	if m.terminal[from] {
		return fmt.Errorf("%w: %s en estado terminal %q", domain.ErrInvalidTransition, dt, from)
	}
	return nil
}

// ConversionStatus estado que adquiere el documento origen tras convertirse.
func ConversionStatus(dt DocType) string {
	return machines[dt].reserved
}
