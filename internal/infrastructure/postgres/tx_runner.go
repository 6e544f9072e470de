package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunQuotes inicia una transacción con un repo de cotizaciones atado a ella.
func (r *TxRunner) RunQuotes(ctx context.Context, fn func(repository.QuoteRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewQuoteRepository(q))
	})
}

// RunOrders inicia una transacción con un repo de pedidos atado a ella.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(repository.OrderRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrderRepository(q))
	})
}

// RunInvoices inicia una transacción con un repo de facturas atado a ella.
func (r *TxRunner) RunInvoices(ctx context.Context, fn func(repository.InvoiceRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInvoiceRepository(q))
	})
}

// RunQuoteToOrder inicia una transacción con repos de cotización y pedido (conversión).
func (r *TxRunner) RunQuoteToOrder(ctx context.Context, fn func(repository.QuoteRepository, repository.OrderRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewQuoteRepository(q), NewOrderRepository(q))
	})
}

// RunOrderToInvoice inicia una transacción con repos de pedido y factura (conversión).
func (r *TxRunner) RunOrderToInvoice(ctx context.Context, fn func(repository.OrderRepository, repository.InvoiceRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewOrderRepository(q), NewInvoiceRepository(q))
	})
}
