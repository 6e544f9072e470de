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

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, tenant_id, customer_id, quote_number, quote_date, valid_until, status,
	       currency, tax_percentage, discount_percentage, total, notes,
	       converted_to_order_id, version, created_at, updated_at`

// Create persiste la cabecera de la cotización.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	query := `
		INSERT INTO quotes (id, tenant_id, customer_id, quote_number, quote_date, valid_until, status,
			currency, tax_percentage, discount_percentage, total, notes, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.TenantID, q.CustomerID, q.QuoteNumber, q.QuoteDate, q.ValidUntil, q.Status,
		q.Currency, q.TaxPercentage, q.DiscountPercentage, q.Total, q.Notes,
		q.Version, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: quote number %s", domain.ErrDuplicate, q.QuoteNumber)
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la cotización.
func (r *QuoteRepo) CreateItem(ctx context.Context, it *entity.QuoteItem) error {
	query := `
		INSERT INTO quote_items (id, tenant_id, quote_id, product_id, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.TenantID, it.ParentID, it.ProductID, it.Quantity, it.Price, it.Total)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por id dentro del tenant; (nil, nil) si no existe.
func (r *QuoteRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1 AND tenant_id = $2`
	q, err := scanQuote(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// ListByTenant lista cotizaciones del tenant, más recientes primero.
func (r *QuoteRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quotes WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// ListItems lista las líneas de la cotización en orden de inserción.
func (r *QuoteRepo) ListItems(ctx context.Context, tenantID, quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, tenant_id, quote_id, product_id, quantity, price, total
		FROM quote_items WHERE quote_id = $1 AND tenant_id = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, quoteID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.TenantID, &it.ParentID, &it.ProductID, &it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update escribe la cabecera guardada por versión: la fila solo cambia si la
// versión en base coincide con la leída. Cero filas afectadas = edición
// concurrente (domain.ErrConflict).
func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	query := `
		UPDATE quotes
		SET customer_id = $3, quote_number = $4, quote_date = $5, valid_until = $6, status = $7,
		    currency = $8, tax_percentage = $9, discount_percentage = $10, total = $11,
		    notes = $12, updated_at = $13, version = version + 1
		WHERE id = $1 AND tenant_id = $2 AND version = $14`
	tag, err := r.q.Exec(ctx, query,
		q.ID, q.TenantID, q.CustomerID, q.QuoteNumber, q.QuoteDate, q.ValidUntil, q.Status,
		q.Currency, q.TaxPercentage, q.DiscountPercentage, q.Total, q.Notes, q.UpdatedAt,
		q.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: quote number %s", domain.ErrDuplicate, q.QuoteNumber)
		}
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// DeleteItems elimina todas las líneas de la cotización.
func (r *QuoteRepo) DeleteItems(ctx context.Context, tenantID, quoteID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM quote_items WHERE quote_id = $1 AND tenant_id = $2`, quoteID, tenantID)
	if err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de la cotización.
func (r *QuoteRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// LinkOrder marca la cotización como approved y escribe el back-link al pedido
// en una sola sentencia guardada por converted_to_order_id IS NULL: de dos
// conversiones concurrentes solo una afecta la fila.
func (r *QuoteRepo) LinkOrder(ctx context.Context, tenantID, quoteID, orderID string, now time.Time) error {
	query := `
		UPDATE quotes
		SET status = $4, converted_to_order_id = $3, updated_at = $5, version = version + 1
		WHERE id = $1 AND tenant_id = $2 AND converted_to_order_id IS NULL`
	tag, err := r.q.Exec(ctx, query, quoteID, tenantID, orderID, entity.QuoteStatusApproved, now)
	if err != nil {
		return fmt.Errorf("link quote to order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyConverted
	}
	return nil
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	err := row.Scan(
		&q.ID, &q.TenantID, &q.CustomerID, &q.QuoteNumber, &q.QuoteDate, &q.ValidUntil, &q.Status,
		&q.Currency, &q.TaxPercentage, &q.DiscountPercentage, &q.Total, &q.Notes,
		&q.ConvertedToOrderID, &q.Version, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
