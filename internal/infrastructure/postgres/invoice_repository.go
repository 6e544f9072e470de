package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, tenant_id, customer_id, invoice_number, invoice_date, due_date, status,
	       currency, tax_percentage, discount_percentage, total, notes,
	       order_id, version, created_at, updated_at`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, i *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, tenant_id, customer_id, invoice_number, invoice_date, due_date, status,
			currency, tax_percentage, discount_percentage, total, notes, order_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.TenantID, i.CustomerID, i.InvoiceNumber, i.InvoiceDate, i.DueDate, i.Status,
		i.Currency, i.TaxPercentage, i.DiscountPercentage, i.Total, i.Notes,
		i.OrderID, i.Version, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s", domain.ErrDuplicate, i.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la factura.
func (r *InvoiceRepo) CreateItem(ctx context.Context, it *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, tenant_id, invoice_id, product_id, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.TenantID, it.ParentID, it.ProductID, it.Quantity, it.Price, it.Total)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por id dentro del tenant; (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND tenant_id = $2`
	i, err := scanInvoice(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return i, nil
}

// ListByTenant lista facturas del tenant, más recientes primero.
func (r *InvoiceRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// ListItems lista las líneas de la factura en orden de inserción.
func (r *InvoiceRepo) ListItems(ctx context.Context, tenantID, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, tenant_id, invoice_id, product_id, quantity, price, total
		FROM invoice_items WHERE invoice_id = $1 AND tenant_id = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, invoiceID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.TenantID, &it.ParentID, &it.ProductID, &it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update escribe la cabecera guardada por versión (ver QuoteRepo.Update).
func (r *InvoiceRepo) Update(ctx context.Context, i *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $3, invoice_number = $4, invoice_date = $5, due_date = $6, status = $7,
		    currency = $8, tax_percentage = $9, discount_percentage = $10, total = $11,
		    notes = $12, updated_at = $13, version = version + 1
		WHERE id = $1 AND tenant_id = $2 AND version = $14`
	tag, err := r.q.Exec(ctx, query,
		i.ID, i.TenantID, i.CustomerID, i.InvoiceNumber, i.InvoiceDate, i.DueDate, i.Status,
		i.Currency, i.TaxPercentage, i.DiscountPercentage, i.Total, i.Notes, i.UpdatedAt,
		i.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s", domain.ErrDuplicate, i.InvoiceNumber)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// DeleteItems elimina todas las líneas de la factura.
func (r *InvoiceRepo) DeleteItems(ctx context.Context, tenantID, invoiceID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM invoice_items WHERE invoice_id = $1 AND tenant_id = $2`, invoiceID, tenantID)
	if err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de la factura.
func (r *InvoiceRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var i entity.Invoice
	err := row.Scan(
		&i.ID, &i.TenantID, &i.CustomerID, &i.InvoiceNumber, &i.InvoiceDate, &i.DueDate, &i.Status,
		&i.Currency, &i.TaxPercentage, &i.DiscountPercentage, &i.Total, &i.Notes,
		&i.OrderID, &i.Version, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
