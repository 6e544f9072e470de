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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, first_name, middle_name, last_name, gender, company_name,
	       email, phone, address, street_address, postal_code, city, date_of_birth,
	       iban, kvk, btw_number, debtor_number, created_at, updated_at`

// Create persiste el cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, tenant_id, first_name, middle_name, last_name, gender, company_name,
			email, phone, address, street_address, postal_code, city, date_of_birth,
			iban, kvk, btw_number, debtor_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.FirstName, c.MiddleName, c.LastName, c.Gender, c.CompanyName,
		c.Email, c.Phone, c.Address, c.StreetAddress, c.PostalCode, c.City, c.DateOfBirth,
		c.IBAN, c.KVK, c.BTWNumber, c.DebtorNumber, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por id dentro del tenant; (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND tenant_id = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByTenant lista clientes del tenant, más recientes primero.
func (r *CustomerRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update escribe todos los campos del cliente filtrando por id y tenant.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $3, middle_name = $4, last_name = $5, gender = $6, company_name = $7,
		    email = $8, phone = $9, address = $10, street_address = $11, postal_code = $12,
		    city = $13, date_of_birth = $14, iban = $15, kvk = $16, btw_number = $17,
		    debtor_number = $18, updated_at = $19
		WHERE id = $1 AND tenant_id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.FirstName, c.MiddleName, c.LastName, c.Gender, c.CompanyName,
		c.Email, c.Phone, c.Address, c.StreetAddress, c.PostalCode, c.City, c.DateOfBirth,
		c.IBAN, c.KVK, c.BTWNumber, c.DebtorNumber, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente del tenant.
func (r *CustomerRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.TenantID, &c.FirstName, &c.MiddleName, &c.LastName, &c.Gender, &c.CompanyName,
		&c.Email, &c.Phone, &c.Address, &c.StreetAddress, &c.PostalCode, &c.City, &c.DateOfBirth,
		&c.IBAN, &c.KVK, &c.BTWNumber, &c.DebtorNumber, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
