package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción del motor de
// almacenamiento. Cada operación multi-paso del core (crear documento con
// líneas, reemplazar líneas, convertir) corre completa dentro de una sola
// transacción: o se persiste todo o no se persiste nada.
type TxRunner interface {
	// RunQuotes ejecuta fn con un QuoteRepository atado a la transacción.
	RunQuotes(ctx context.Context, fn func(quotes repository.QuoteRepository) error) error
	// RunOrders ejecuta fn con un OrderRepository atado a la transacción.
	RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error
	// RunInvoices ejecuta fn con un InvoiceRepository atado a la transacción.
	RunInvoices(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error
	// RunQuoteToOrder ejecuta fn con repos de cotización y pedido en la misma
	// transacción (conversión Quote→Order).
	RunQuoteToOrder(ctx context.Context, fn func(quotes repository.QuoteRepository, orders repository.OrderRepository) error) error
	// RunOrderToInvoice ejecuta fn con repos de pedido y factura en la misma
	// transacción (conversión Order→Invoice).
	RunOrderToInvoice(ctx context.Context, fn func(orders repository.OrderRepository, invoices repository.InvoiceRepository) error) error
}
