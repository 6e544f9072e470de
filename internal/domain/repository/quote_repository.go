package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// QuoteRepository puerto de persistencia para Quote y sus líneas.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	CreateItem(ctx context.Context, item *entity.QuoteItem) error
	// GetByID retorna (nil, nil) si no existe para ese tenant.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Quote, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Quote, error)
	ListItems(ctx context.Context, tenantID, quoteID string) ([]*entity.QuoteItem, error)
	// Update escribe la cabecera filtrando por id, tenant y versión previa.
	// Retorna domain.ErrConflict si la versión no coincide (edición concurrente).
	Update(ctx context.Context, quote *entity.Quote) error
	DeleteItems(ctx context.Context, tenantID, quoteID string) error
	Delete(ctx context.Context, tenantID, id string) error
	// LinkOrder marca la cotización como approved y escribe el back-link al
	// pedido en una sola sentencia, guardada por converted_to_order_id IS NULL.
	// Retorna domain.ErrAlreadyConverted si el back-link ya estaba poblado.
	LinkOrder(ctx context.Context, tenantID, quoteID, orderID string, now time.Time) error
}

// OrderRepository puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Order, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Order, error)
	ListItems(ctx context.Context, tenantID, orderID string) ([]*entity.OrderItem, error)
	Update(ctx context.Context, order *entity.Order) error
	DeleteItems(ctx context.Context, tenantID, orderID string) error
	Delete(ctx context.Context, tenantID, id string) error
	// LinkInvoice marca el pedido como completed y escribe el back-link a la
	// factura; misma semántica que QuoteRepository.LinkOrder.
	LinkInvoice(ctx context.Context, tenantID, orderID, invoiceID string, now time.Time) error
}

// InvoiceRepository puerto de persistencia para Invoice y sus líneas.
// La factura no tiene conversión posterior, por eso no hay Link*.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Invoice, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Invoice, error)
	ListItems(ctx context.Context, tenantID, invoiceID string) ([]*entity.InvoiceItem, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	DeleteItems(ctx context.Context, tenantID, invoiceID string) error
	Delete(ctx context.Context, tenantID, id string) error
}
