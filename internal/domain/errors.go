package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Un acceso cross-tenant se reporta como ErrNotFound, nunca como "prohibido",
// para no revelar la existencia del recurso a otro tenant.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrAlreadyConverted   = errors.New("el documento ya fue convertido")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
)
