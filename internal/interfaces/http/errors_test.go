package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

func respondErrorBody(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	resp, reqErr := app.Test(req, -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	return resp.StatusCode, string(body)
}

// Un error de almacenamiento no reconocido responde 500 con mensaje genérico:
// el detalle interno (SQL, host, driver) no debe llegar al cliente.
func TestRespondError_ErrorDeAlmacenamientoNoFiltraDetalle(t *testing.T) {
	storageErr := fmt.Errorf("insert quote: pq: relation %q does not exist (SQLSTATE 42P01)", "quotes")

	status, body := respondErrorBody(t, storageErr)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "INTERNAL")
	assert.Contains(t, body, "error interno")
	assert.NotContains(t, body, "SQLSTATE")
	assert.NotContains(t, body, "relation")
	assert.NotContains(t, body, "insert quote")
}

// Los errores de dominio conocidos conservan su mapeo de código HTTP.
func TestRespondError_MapeoDeErroresDeDominio(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflicto de versión", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"ya convertido", domain.ErrAlreadyConverted, http.StatusConflict, "ALREADY_CONVERTED"},
		{"transición inválida", domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"entrada inválida", fmt.Errorf("%w: cantidad", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{"desconocido", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respondErrorBody(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Contains(t, body, tc.code)
		})
	}
}
