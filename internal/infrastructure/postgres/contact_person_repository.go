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

var _ repository.ContactPersonRepository = (*ContactPersonRepo)(nil)

// ContactPersonRepo implementación de ContactPersonRepository.
type ContactPersonRepo struct {
	q Querier
}

// NewContactPersonRepository construye el adaptador.
func NewContactPersonRepository(q Querier) *ContactPersonRepo {
	return &ContactPersonRepo{q: q}
}

// Create persiste la persona de contacto.
func (r *ContactPersonRepo) Create(ctx context.Context, c *entity.ContactPerson) error {
	query := `
		INSERT INTO contact_persons (id, tenant_id, customer_id, first_name, middle_name, last_name, gender, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.CustomerID, c.FirstName, c.MiddleName, c.LastName,
		c.Gender, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact person: %w", err)
	}
	return nil
}

// GetByID obtiene una persona de contacto del cliente; (nil, nil) si no existe.
func (r *ContactPersonRepo) GetByID(ctx context.Context, tenantID, customerID, id string) (*entity.ContactPerson, error) {
	query := `
		SELECT id, tenant_id, customer_id, first_name, middle_name, last_name, gender, email, phone, created_at, updated_at
		FROM contact_persons WHERE id = $1 AND tenant_id = $2 AND customer_id = $3`
	var c entity.ContactPerson
	err := r.q.QueryRow(ctx, query, id, tenantID, customerID).Scan(
		&c.ID, &c.TenantID, &c.CustomerID, &c.FirstName, &c.MiddleName, &c.LastName,
		&c.Gender, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact person: %w", err)
	}
	return &c, nil
}

// ListByCustomer lista las personas de contacto de un cliente.
func (r *ContactPersonRepo) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*entity.ContactPerson, error) {
	query := `
		SELECT id, tenant_id, customer_id, first_name, middle_name, last_name, gender, email, phone, created_at, updated_at
		FROM contact_persons WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list contact persons: %w", err)
	}
	defer rows.Close()
	var list []*entity.ContactPerson
	for rows.Next() {
		var c entity.ContactPerson
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.CustomerID, &c.FirstName, &c.MiddleName, &c.LastName,
			&c.Gender, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact person: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update escribe los campos de la persona de contacto.
func (r *ContactPersonRepo) Update(ctx context.Context, c *entity.ContactPerson) error {
	query := `
		UPDATE contact_persons
		SET first_name = $4, middle_name = $5, last_name = $6, gender = $7, email = $8, phone = $9, updated_at = $10
		WHERE id = $1 AND tenant_id = $2 AND customer_id = $3`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.CustomerID, c.FirstName, c.MiddleName, c.LastName,
		c.Gender, c.Email, c.Phone, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la persona de contacto del cliente.
func (r *ContactPersonRepo) Delete(ctx context.Context, tenantID, customerID, id string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM contact_persons WHERE id = $1 AND tenant_id = $2 AND customer_id = $3`,
		id, tenantID, customerID)
	if err != nil {
		return fmt.Errorf("delete contact person: %w", err)
	}
	return nil
}
