package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, tenant_id, customer_id, order_number, order_date, status,
	       currency, tax_percentage, discount_percentage, total, notes,
	       quote_id, converted_to_invoice_id, version, created_at, updated_at`

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, tenant_id, customer_id, order_number, order_date, status,
			currency, tax_percentage, discount_percentage, total, notes, quote_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.TenantID, o.CustomerID, o.OrderNumber, o.OrderDate, o.Status,
		o.Currency, o.TaxPercentage, o.DiscountPercentage, o.Total, o.Notes,
		o.QuoteID, o.Version, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order number %s", domain.ErrDuplicate, o.OrderNumber)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, tenant_id, order_id, product_id, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.TenantID, it.ParentID, it.ProductID, it.Quantity, it.Price, it.Total)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por id dentro del tenant; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND tenant_id = $2`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByTenant lista pedidos del tenant, más recientes primero.
func (r *OrderRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// ListItems lista las líneas del pedido en orden de inserción.
func (r *OrderRepo) ListItems(ctx context.Context, tenantID, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, tenant_id, order_id, product_id, quantity, price, total
		FROM order_items WHERE order_id = $1 AND tenant_id = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.TenantID, &it.ParentID, &it.ProductID, &it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update escribe la cabecera guardada por versión (ver QuoteRepo.Update).
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders
		SET customer_id = $3, order_number = $4, order_date = $5, status = $6,
		    currency = $7, tax_percentage = $8, discount_percentage = $9, total = $10,
		    notes = $11, updated_at = $12, version = version + 1
		WHERE id = $1 AND tenant_id = $2 AND version = $13`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.TenantID, o.CustomerID, o.OrderNumber, o.OrderDate, o.Status,
		o.Currency, o.TaxPercentage, o.DiscountPercentage, o.Total, o.Notes, o.UpdatedAt,
		o.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order number %s", domain.ErrDuplicate, o.OrderNumber)
		}
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// DeleteItems elimina todas las líneas del pedido.
func (r *OrderRepo) DeleteItems(ctx context.Context, tenantID, orderID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM order_items WHERE order_id = $1 AND tenant_id = $2`, orderID, tenantID)
	if err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera del pedido.
func (r *OrderRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// LinkInvoice marca el pedido como completed y escribe el back-link a la
// factura; misma garantía de unicidad que QuoteRepo.LinkOrder.
func (r *OrderRepo) LinkInvoice(ctx context.Context, tenantID, orderID, invoiceID string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = $4, converted_to_invoice_id = $3, updated_at = $5, version = version + 1
		WHERE id = $1 AND tenant_id = $2 AND converted_to_invoice_id IS NULL`
	tag, err := r.q.Exec(ctx, query, orderID, tenantID, invoiceID, entity.OrderStatusCompleted, now)
	if err != nil {
		return fmt.Errorf("link order to invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyConverted
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.TenantID, &o.CustomerID, &o.OrderNumber, &o.OrderDate, &o.Status,
		&o.Currency, &o.TaxPercentage, &o.DiscountPercentage, &o.Total, &o.Notes,
		&o.QuoteID, &o.ConvertedToInvoiceID, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
