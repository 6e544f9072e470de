package crm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/validate"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// ContactPersonUseCase casos de uso para personas de contacto de un cliente.
type ContactPersonUseCase struct {
	repo         repository.ContactPersonRepository
	customerRepo repository.CustomerRepository
}

// NewContactPersonUseCase construye el caso de uso.
func NewContactPersonUseCase(repo repository.ContactPersonRepository, customerRepo repository.CustomerRepository) *ContactPersonUseCase {
	return &ContactPersonUseCase{repo: repo, customerRepo: customerRepo}
}

// Create agrega una persona de contacto al cliente (verifica que el cliente
// exista dentro del tenant).
func (uc *ContactPersonUseCase) Create(ctx context.Context, tenantID, customerID string, in dto.CreateContactPersonRequest) (*dto.ContactPersonResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	contact := &entity.ContactPerson{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: customerID,
		FirstName:  in.FirstName,
		MiddleName: in.MiddleName,
		LastName:   in.LastName,
		Gender:     in.Gender,
		Email:      in.Email,
		Phone:      in.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// List lista las personas de contacto del cliente.
func (uc *ContactPersonUseCase) List(ctx context.Context, tenantID, customerID string) ([]*dto.ContactPersonResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ContactPersonResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContactResponse(c))
	}
	return out, nil
}

// Update aplica los campos presentes a la persona de contacto.
func (uc *ContactPersonUseCase) Update(ctx context.Context, tenantID, customerID, id string, in dto.UpdateContactPersonRequest) (*dto.ContactPersonResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	contact, err := uc.repo.GetByID(ctx, tenantID, customerID, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	applyString(&contact.FirstName, in.FirstName)
	applyString(&contact.MiddleName, in.MiddleName)
	applyString(&contact.LastName, in.LastName)
	applyString(&contact.Gender, in.Gender)
	applyString(&contact.Email, in.Email)
	applyString(&contact.Phone, in.Phone)
	if contact.FirstName == "" || contact.LastName == "" {
		return nil, domain.ErrInvalidInput
	}
	contact.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// Delete elimina la persona de contacto del cliente.
func (uc *ContactPersonUseCase) Delete(ctx context.Context, tenantID, customerID, id string) error {
	return uc.repo.Delete(ctx, tenantID, customerID, id)
}

func toContactResponse(c *entity.ContactPerson) *dto.ContactPersonResponse {
	return &dto.ContactPersonResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		MiddleName: c.MiddleName,
		LastName:   c.LastName,
		Gender:     c.Gender,
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
