package dto

import "time"

// CreateCustomerRequest body para POST /api/customers. Se exige al menos un
// nombre (persona o empresa); el resto es opcional.
type CreateCustomerRequest struct {
	FirstName     string `json:"first_name" validate:"omitempty,max=100"`
	MiddleName    string `json:"middle_name" validate:"omitempty,max=100"`
	LastName      string `json:"last_name" validate:"omitempty,max=100"`
	Gender        string `json:"gender" validate:"omitempty,oneof=male female other"`
	CompanyName   string `json:"company_name" validate:"omitempty,max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	Address       string `json:"address" validate:"omitempty,max=300"`
	StreetAddress string `json:"street_address" validate:"omitempty,max=300"`
	PostalCode    string `json:"postal_code" validate:"omitempty,max=20"`
	City          string `json:"city" validate:"omitempty,max=100"`
	DateOfBirth   string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	IBAN          string `json:"iban" validate:"omitempty,max=34"`
	KVK           string `json:"kvk" validate:"omitempty,max=20"`
	BTWNumber     string `json:"btw_number" validate:"omitempty,max=20"`
	DebtorNumber  string `json:"debtor_number" validate:"omitempty,max=50"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id. Campos opcionales
// tipados: solo los presentes se aplican (estilo field mask).
type UpdateCustomerRequest struct {
	FirstName     *string `json:"first_name" validate:"omitempty,max=100"`
	MiddleName    *string `json:"middle_name" validate:"omitempty,max=100"`
	LastName      *string `json:"last_name" validate:"omitempty,max=100"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=male female other"`
	CompanyName   *string `json:"company_name" validate:"omitempty,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	Address       *string `json:"address" validate:"omitempty,max=300"`
	StreetAddress *string `json:"street_address" validate:"omitempty,max=300"`
	PostalCode    *string `json:"postal_code" validate:"omitempty,max=20"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	DateOfBirth   *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	IBAN          *string `json:"iban" validate:"omitempty,max=34"`
	KVK           *string `json:"kvk" validate:"omitempty,max=20"`
	BTWNumber     *string `json:"btw_number" validate:"omitempty,max=20"`
	DebtorNumber  *string `json:"debtor_number" validate:"omitempty,max=50"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	DisplayName   string    `json:"display_name"`
	FirstName     string    `json:"first_name,omitempty"`
	MiddleName    string    `json:"middle_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	StreetAddress string    `json:"street_address,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	City          string    `json:"city,omitempty"`
	DateOfBirth   string    `json:"date_of_birth,omitempty"`
	IBAN          string    `json:"iban,omitempty"`
	KVK           string    `json:"kvk,omitempty"`
	BTWNumber     string    `json:"btw_number,omitempty"`
	DebtorNumber  string    `json:"debtor_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CustomerSummary versión reducida para incrustar en documentos.
type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CreateContactPersonRequest body para POST /api/customers/:id/contact-persons.
type CreateContactPersonRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	MiddleName string `json:"middle_name" validate:"omitempty,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Gender     string `json:"gender" validate:"omitempty,oneof=male female other"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
}

// UpdateContactPersonRequest body para PUT del subrecurso.
type UpdateContactPersonRequest struct {
	FirstName  *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Gender     *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=50"`
}

// ContactPersonResponse persona de contacto en respuestas.
type ContactPersonResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	FirstName  string    `json:"first_name"`
	MiddleName string    `json:"middle_name,omitempty"`
	LastName   string    `json:"last_name"`
	Gender     string    `json:"gender,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateNoteRequest body para POST /api/notes.
type CreateNoteRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content" validate:"omitempty"`
}

// UpdateNoteRequest body para PUT /api/notes/:id.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
}

// NoteResponse nota en respuestas.
type NoteResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	CustomerID string    `json:"customer_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
