package entity

import (
	"strings"
	"time"
)

// NombreClienteSinDatos es el nombre mostrado cuando el cliente no tiene
// ni empresa ni nombre de persona.
const NombreClienteSinDatos = "Cliente sin nombre"

// Customer representa un cliente del tenant: persona natural, empresa o ambas.
type Customer struct {
	ID            string
	TenantID      string
	FirstName     string
	MiddleName    string
	LastName      string
	Gender        string
	CompanyName   string
	Email         string
	Phone         string
	Address       string
	StreetAddress string
	PostalCode    string
	City          string
	DateOfBirth   *time.Time
	IBAN          string
	KVK           string // número de registro mercantil
	BTWNumber     string // número de IVA
	DebtorNumber  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DisplayName resuelve el nombre a mostrar: empresa primero, luego nombre de
// persona compuesto, y si no hay nada, el centinela NombreClienteSinDatos.
func (c *Customer) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return NombreClienteSinDatos
}

// ContactPerson persona de contacto de un cliente. FirstName y LastName son
// obligatorios; el resto opcional.
type ContactPerson struct {
	ID         string
	TenantID   string
	CustomerID string
	FirstName  string
	MiddleName string
	LastName   string
	Gender     string
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Note nota libre asociada a un cliente.
type Note struct {
	ID         string
	TenantID   string
	CustomerID string
	Title      string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
