package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/lifecycle"
)

func TestInitial(t *testing.T) {
	assert.Equal(t, entity.QuoteStatusDraft, lifecycle.Initial(lifecycle.DocQuote))
	assert.Equal(t, entity.OrderStatusPending, lifecycle.Initial(lifecycle.DocOrder))
	assert.Equal(t, entity.InvoiceStatusDraft, lifecycle.Initial(lifecycle.DocInvoice))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		dt      lifecycle.DocType
		from    string
		to      string
		wantErr error
	}{
		{"quote draft->sent", lifecycle.DocQuote, "draft", "sent", nil},
		{"quote sent->rejected", lifecycle.DocQuote, "sent", "rejected", nil},
		{"quote draft->expired", lifecycle.DocQuote, "draft", "expired", nil},
		{"quote mismo estado", lifecycle.DocQuote, "sent", "sent", nil},
		{"quote approved directo", lifecycle.DocQuote, "sent", "approved", domain.ErrInvalidTransition},
		{"quote desde rejected", lifecycle.DocQuote, "rejected", "draft", domain.ErrInvalidTransition},
		{"quote desde expired", lifecycle.DocQuote, "expired", "sent", domain.ErrInvalidTransition},
		{"quote estado desconocido", lifecycle.DocQuote, "draft", "paid", domain.ErrInvalidInput},

		{"order pending->processing", lifecycle.DocOrder, "pending", "processing", nil},
		{"order processing->cancelled", lifecycle.DocOrder, "processing", "cancelled", nil},
		{"order completed directo", lifecycle.DocOrder, "processing", "completed", domain.ErrInvalidTransition},
		{"order desde cancelled", lifecycle.DocOrder, "cancelled", "pending", domain.ErrInvalidTransition},

		{"invoice draft->sent", lifecycle.DocInvoice, "draft", "sent", nil},
		{"invoice sent->paid", lifecycle.DocInvoice, "sent", "paid", nil},
		{"invoice draft->cancelled", lifecycle.DocInvoice, "draft", "cancelled", nil},
		{"invoice desde paid", lifecycle.DocInvoice, "paid", "sent", domain.ErrInvalidTransition},
		{"invoice desde cancelled", lifecycle.DocInvoice, "cancelled", "draft", domain.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lifecycle.CanTransition(tt.dt, tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanConvert(t *testing.T) {
	// Alcanzable desde cualquier estado no terminal.
	assert.NoError(t, lifecycle.CanConvert(lifecycle.DocQuote, "draft"))
	assert.NoError(t, lifecycle.CanConvert(lifecycle.DocQuote, "sent"))
	assert.NoError(t, lifecycle.CanConvert(lifecycle.DocQuote, "approved"))
	assert.ErrorIs(t, lifecycle.CanConvert(lifecycle.DocQuote, "rejected"), domain.ErrInvalidTransition)
	assert.ErrorIs(t, lifecycle.CanConvert(lifecycle.DocQuote, "expired"), domain.ErrInvalidTransition)

	assert.NoError(t, lifecycle.CanConvert(lifecycle.DocOrder, "pending"))
	assert.NoError(t, lifecycle.CanConvert(lifecycle.DocOrder, "processing"))
	assert.ErrorIs(t, lifecycle.CanConvert(lifecycle.DocOrder, "cancelled"), domain.ErrInvalidTransition)

	// La factura no tiene conversión posterior.
	assert.ErrorIs(t, lifecycle.CanConvert(lifecycle.DocInvoice, "draft"), domain.ErrInvalidInput)
}

func TestConversionStatus(t *testing.T) {
	assert.Equal(t, entity.QuoteStatusApproved, lifecycle.ConversionStatus(lifecycle.DocQuote))
	assert.Equal(t, entity.OrderStatusCompleted, lifecycle.ConversionStatus(lifecycle.DocOrder))
	assert.Empty(t, lifecycle.ConversionStatus(lifecycle.DocInvoice))
}
