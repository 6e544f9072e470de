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

const fechaCorta = "2006-01-02"

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente del tenant. Se exige al menos un nombre: de persona
// o de empresa. El tenant siempre es el del contexto, nunca el del payload.
func (uc *CustomerUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.FirstName == "" && in.CompanyName == "" {
		return nil, domain.ErrInvalidInput
	}
	dob, err := parseOptionalDate(in.DateOfBirth)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		FirstName:     in.FirstName,
		MiddleName:    in.MiddleName,
		LastName:      in.LastName,
		Gender:        in.Gender,
		CompanyName:   in.CompanyName,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		StreetAddress: in.StreetAddress,
		PostalCode:    in.PostalCode,
		City:          in.City,
		DateOfBirth:   dob,
		IBAN:          in.IBAN,
		KVK:           in.KVK,
		BTWNumber:     in.BTWNumber,
		DebtorNumber:  in.DebtorNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes del tenant, más recientes primero.
func (uc *CustomerUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente por id dentro del tenant.
func (uc *CustomerUseCase) Get(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Update aplica solo los campos presentes en el request (field mask).
func (uc *CustomerUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	applyString(&customer.FirstName, in.FirstName)
	applyString(&customer.MiddleName, in.MiddleName)
	applyString(&customer.LastName, in.LastName)
	applyString(&customer.Gender, in.Gender)
	applyString(&customer.CompanyName, in.CompanyName)
	applyString(&customer.Email, in.Email)
	applyString(&customer.Phone, in.Phone)
	applyString(&customer.Address, in.Address)
	applyString(&customer.StreetAddress, in.StreetAddress)
	applyString(&customer.PostalCode, in.PostalCode)
	applyString(&customer.City, in.City)
	applyString(&customer.IBAN, in.IBAN)
	applyString(&customer.KVK, in.KVK)
	applyString(&customer.BTWNumber, in.BTWNumber)
	applyString(&customer.DebtorNumber, in.DebtorNumber)
	if in.DateOfBirth != nil {
		dob, err := parseOptionalDate(*in.DateOfBirth)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		customer.DateOfBirth = dob
	}
	if customer.FirstName == "" && customer.CompanyName == "" {
		return nil, domain.ErrInvalidInput
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina el cliente. Las personas de contacto y notas asociadas no se
// eliminan en cascada: tienen su propio ciclo de borrado.
func (uc *CustomerUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.repo.Delete(ctx, tenantID, id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:            c.ID,
		TenantID:      c.TenantID,
		DisplayName:   c.DisplayName(),
		FirstName:     c.FirstName,
		MiddleName:    c.MiddleName,
		LastName:      c.LastName,
		Gender:        c.Gender,
		CompanyName:   c.CompanyName,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		StreetAddress: c.StreetAddress,
		PostalCode:    c.PostalCode,
		City:          c.City,
		IBAN:          c.IBAN,
		KVK:           c.KVK,
		BTWNumber:     c.BTWNumber,
		DebtorNumber:  c.DebtorNumber,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.DateOfBirth != nil {
		resp.DateOfBirth = c.DateOfBirth.Format(fechaCorta)
	}
	return resp
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(fechaCorta, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
