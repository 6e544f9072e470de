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

// NoteUseCase casos de uso para notas de clientes.
type NoteUseCase struct {
	repo         repository.NoteRepository
	customerRepo repository.CustomerRepository
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(repo repository.NoteRepository, customerRepo repository.CustomerRepository) *NoteUseCase {
	return &NoteUseCase{repo: repo, customerRepo: customerRepo}
}

// Create crea una nota asociada a un cliente del tenant.
func (uc *NoteUseCase) Create(ctx context.Context, tenantID string, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, tenantID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	note := &entity.Note{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		Title:      in.Title,
		Content:    in.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// List lista notas del tenant, más recientes primero.
func (uc *NoteUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.NoteResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// Get obtiene una nota por id dentro del tenant.
func (uc *NoteUseCase) Get(ctx context.Context, tenantID, id string) (*dto.NoteResponse, error) {
	note, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return toNoteResponse(note), nil
}

// Update aplica los campos presentes a la nota.
func (uc *NoteUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	note, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	applyString(&note.Title, in.Title)
	applyString(&note.Content, in.Content)
	if note.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	note.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// Delete elimina la nota.
func (uc *NoteUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.repo.Delete(ctx, tenantID, id)
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		ID:         n.ID,
		TenantID:   n.TenantID,
		CustomerID: n.CustomerID,
		Title:      n.Title,
		Content:    n.Content,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
