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

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo implementación de NoteRepository.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

// Create persiste la nota.
func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	query := `
		INSERT INTO notes (id, tenant_id, customer_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.TenantID, n.CustomerID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota por id dentro del tenant; (nil, nil) si no existe.
func (r *NoteRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Note, error) {
	query := `
		SELECT id, tenant_id, customer_id, title, content, created_at, updated_at
		FROM notes WHERE id = $1 AND tenant_id = $2`
	var n entity.Note
	err := r.q.QueryRow(ctx, query, id, tenantID).Scan(
		&n.ID, &n.TenantID, &n.CustomerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

// ListByTenant lista notas del tenant, más recientes primero.
func (r *NoteRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Note, error) {
	query := `
		SELECT id, tenant_id, customer_id, title, content, created_at, updated_at
		FROM notes WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.TenantID, &n.CustomerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// Update escribe título y contenido de la nota.
func (r *NoteRepo) Update(ctx context.Context, n *entity.Note) error {
	query := `
		UPDATE notes SET title = $3, content = $4, updated_at = $5
		WHERE id = $1 AND tenant_id = $2`
	tag, err := r.q.Exec(ctx, query, n.ID, n.TenantID, n.Title, n.Content, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la nota del tenant.
func (r *NoteRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
