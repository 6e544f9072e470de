// Package validate centraliza la validación de DTOs con go-playground/validator
// sobre las etiquetas `validate` de los structs.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un DTO; los fallos se reportan como domain.ErrInvalidInput
// con el detalle del validador en el mensaje.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	return nil
}
