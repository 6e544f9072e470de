package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para Customer. Toda operación
// recibe el tenant explícito; un id correcto con tenant ajeno se comporta
// como inexistente.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID retorna (nil, nil) si no existe para ese tenant.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Customer, error)
	// Update filtra por id y tenant; retorna domain.ErrNotFound si no afecta filas.
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, tenantID, id string) error
}

// ContactPersonRepository puerto para personas de contacto (subrecurso de Customer).
type ContactPersonRepository interface {
	Create(ctx context.Context, contact *entity.ContactPerson) error
	GetByID(ctx context.Context, tenantID, customerID, id string) (*entity.ContactPerson, error)
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*entity.ContactPerson, error)
	Update(ctx context.Context, contact *entity.ContactPerson) error
	Delete(ctx context.Context, tenantID, customerID, id string) error
}

// NoteRepository puerto para notas de clientes.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Note, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, tenantID, id string) error
}
