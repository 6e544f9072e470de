package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

// newQuote crea la cotización de referencia: 2×15.00 + 1×40.00, descuento 10%,
// IVA 21% → total 76.23.
func newQuote(t *testing.T, e *env, tenantID string) *dto.QuoteResponse {
	t.Helper()
	customer := e.seedCustomer(tenantID)
	silla := e.seedProduct(tenantID, "Silla", "15.00")
	mesa := e.seedProduct(tenantID, "Mesa", "40.00")

	quote, err := e.quotes.Create(context.Background(), tenantID, dto.CreateQuoteRequest{
		CustomerID:         customer.ID,
		QuoteNumber:        "COT-2026-001",
		QuoteDate:          "2026-08-01",
		ValidUntil:         "2026-09-01",
		TaxPercentage:      ptr(dec("21")),
		DiscountPercentage: ptr(dec("10")),
		Items: []dto.DocumentItemRequest{
			{ProductID: silla.ID, Quantity: 2},
			{ProductID: mesa.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	return quote
}

func TestQuoteCreate_CalculaTotal(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	assert.Equal(t, entity.QuoteStatusDraft, quote.Status)
	assert.Equal(t, 1, quote.Version)
	assert.Equal(t, entity.DefaultCurrency, quote.Currency)
	assert.True(t, dec("76.23").Equal(quote.Total), "total: %s", quote.Total)
	require.Len(t, quote.QuoteItems, 2)
	// precio congelado desde el producto cuando la línea no trae precio
	assert.True(t, dec("15.00").Equal(quote.QuoteItems[0].Price))
	assert.True(t, dec("30.00").Equal(quote.QuoteItems[0].Total))
	assert.NotNil(t, quote.Customer)
}

func TestQuoteCreate_ClienteDeOtroTenant(t *testing.T) {
	e := newEnv()
	ajeno := e.seedCustomer("tenant-b")
	producto := e.seedProduct("tenant-a", "Silla", "15.00")

	_, err := e.quotes.Create(context.Background(), "tenant-a", dto.CreateQuoteRequest{
		CustomerID:  ajeno.ID,
		QuoteNumber: "COT-2026-002",
		QuoteDate:   "2026-08-01",
		ValidUntil:  "2026-09-01",
		Items:       []dto.DocumentItemRequest{{ProductID: producto.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuoteCreate_ProductoDeOtroTenant(t *testing.T) {
	e := newEnv()
	customer := e.seedCustomer("tenant-a")
	ajeno := e.seedProduct("tenant-b", "Silla", "15.00")

	_, err := e.quotes.Create(context.Background(), "tenant-a", dto.CreateQuoteRequest{
		CustomerID:  customer.ID,
		QuoteNumber: "COT-2026-003",
		QuoteDate:   "2026-08-01",
		ValidUntil:  "2026-09-01",
		Items:       []dto.DocumentItemRequest{{ProductID: ajeno.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuoteGet_OtroTenantEsNotFound(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	_, err := e.quotes.Get(context.Background(), "tenant-b", quote.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := e.quotes.Get(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)
	assert.Equal(t, quote.ID, got.ID)
}

func TestQuoteUpdate_ReemplazaLineasYRecalcula(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")
	lampara := e.seedProduct("tenant-a", "Lámpara", "25.00")

	got, err := e.quotes.Update(context.Background(), "tenant-a", quote.ID, dto.UpdateQuoteRequest{
		Items: ptr([]dto.DocumentItemRequest{{ProductID: lampara.ID, Quantity: 4}}),
	})
	require.NoError(t, err)

	// 4×25.00 = 100, −10% = 90, +21% IVA = 108.90
	assert.True(t, dec("108.90").Equal(got.Total), "total: %s", got.Total)
	require.Len(t, got.QuoteItems, 1)
	assert.Equal(t, lampara.ID, got.QuoteItems[0].ProductID)
	assert.Equal(t, 2, got.Version)
}

func TestQuoteUpdate_VersionDesactualizada(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	_, err := e.quotes.Update(context.Background(), "tenant-a", quote.ID, dto.UpdateQuoteRequest{
		Notes:   ptr("primera edición"),
		Version: ptr(quote.Version),
	})
	require.NoError(t, err)

	_, err = e.quotes.Update(context.Background(), "tenant-a", quote.ID, dto.UpdateQuoteRequest{
		Notes:   ptr("edición con versión vieja"),
		Version: ptr(quote.Version),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestQuoteUpdate_EstadoReservado(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	_, err := e.quotes.Update(context.Background(), "tenant-a", quote.ID, dto.UpdateQuoteRequest{
		Status: ptr(entity.QuoteStatusApproved),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestQuoteUpdate_EstadoTerminal(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	_, err := e.quotes.Update(context.Background(), "tenant-a", quote.ID, dto.UpdateQuoteRequest{
		Status: ptr(entity.QuoteStatusRejected),
	})
	require.NoError(t, err)

	_, err = e.quotes.Update(context.Background(), "tenant-a", quote.ID, dto.UpdateQuoteRequest{
		Status: ptr(entity.QuoteStatusSent),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConvertQuoteToOrder(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	order, err := e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	require.NotNil(t, order.QuoteID)
	assert.Equal(t, quote.ID, *order.QuoteID)
	assert.True(t, quote.Total.Equal(order.Total), "total pedido %s ≠ total cotización %s", order.Total, quote.Total)
	require.Len(t, order.OrderItems, 2)
	assert.True(t, dec("15.00").Equal(order.OrderItems[0].Price))

	// la cotización queda approved con back-link al pedido
	got, err := e.quotes.Get(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusApproved, got.Status)
	require.NotNil(t, got.ConvertedToOrderID)
	assert.Equal(t, order.ID, *got.ConvertedToOrderID)
}

func TestConvertQuoteToOrder_DobleConversion(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	_, err := e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)

	_, err = e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)

	// sigue existiendo exactamente un pedido
	orders, err := e.orders.List(context.Background(), "tenant-a", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestConvertQuoteToOrder_OtroTenant(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	_, err := e.convert.QuoteToOrder(context.Background(), "tenant-b", quote.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConvertQuoteToOrder_EstadoTerminal(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	_, err := e.quotes.Update(context.Background(), "tenant-a", quote.ID, dto.UpdateQuoteRequest{
		Status: ptr(entity.QuoteStatusExpired),
	})
	require.NoError(t, err)

	_, err = e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConvert_PrecioCongelado(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	// el precio del producto sube después de crear la cotización
	for _, p := range e.store.products {
		p.Price = dec("99.99")
	}

	order, err := e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)

	// las líneas conservan el precio congelado y el total no cambia
	assert.True(t, quote.Total.Equal(order.Total))
	assert.True(t, dec("15.00").Equal(order.OrderItems[0].Price))

	// el producto incrustado refleja el precio actual del catálogo, distinto
	// del precio congelado en la línea
	require.NotNil(t, order.OrderItems[0].Product)
	assert.True(t, dec("99.99").Equal(order.OrderItems[0].Product.Price))
}

func TestConvertOrderToInvoice(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	order, err := e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)

	invoice, err := e.convert.OrderToInvoice(context.Background(), "tenant-a", order.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, invoice.Status)
	require.NotNil(t, invoice.OrderID)
	assert.Equal(t, order.ID, *invoice.OrderID)
	assert.True(t, order.Total.Equal(invoice.Total))
	require.Len(t, invoice.InvoiceItems, 2)

	// el pedido queda completed con back-link a la factura
	got, err := e.orders.Get(context.Background(), "tenant-a", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
	require.NotNil(t, got.ConvertedToInvoiceID)
	assert.Equal(t, invoice.ID, *got.ConvertedToInvoiceID)
}

func TestConvertOrderToInvoice_DobleConversion(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	order, err := e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)

	_, err = e.convert.OrderToInvoice(context.Background(), "tenant-a", order.ID)
	require.NoError(t, err)

	_, err = e.convert.OrderToInvoice(context.Background(), "tenant-a", order.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestQuoteUpdate_ConvertidaNoSeEdita(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	_, err := e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)

	_, err = e.quotes.Update(context.Background(), "tenant-a", quote.ID, dto.UpdateQuoteRequest{
		Notes: ptr("intento de edición"),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestOrderUpdate_ConvertidoNoSeEdita(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	order, err := e.convert.QuoteToOrder(context.Background(), "tenant-a", quote.ID)
	require.NoError(t, err)
	_, err = e.convert.OrderToInvoice(context.Background(), "tenant-a", order.ID)
	require.NoError(t, err)

	_, err = e.orders.Update(context.Background(), "tenant-a", order.ID, dto.UpdateOrderRequest{
		Notes: ptr("intento de edición"),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestOrderCreate_Directo(t *testing.T) {
	e := newEnv()
	customer := e.seedCustomer("tenant-a")
	producto := e.seedProduct("tenant-a", "Silla", "15.00")

	order, err := e.orders.Create(context.Background(), "tenant-a", dto.CreateOrderRequest{
		CustomerID:  customer.ID,
		OrderNumber: "PED-2026-001",
		OrderDate:   "2026-08-10",
		Items:       []dto.DocumentItemRequest{{ProductID: producto.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Nil(t, order.QuoteID)
	// 45.00 + 21% IVA
	assert.True(t, dec("54.45").Equal(order.Total), "total: %s", order.Total)
}

func TestOrderUpdate_EstadoReservado(t *testing.T) {
	e := newEnv()
	customer := e.seedCustomer("tenant-a")
	producto := e.seedProduct("tenant-a", "Silla", "15.00")

	order, err := e.orders.Create(context.Background(), "tenant-a", dto.CreateOrderRequest{
		CustomerID:  customer.ID,
		OrderNumber: "PED-2026-002",
		OrderDate:   "2026-08-10",
		Items:       []dto.DocumentItemRequest{{ProductID: producto.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = e.orders.Update(context.Background(), "tenant-a", order.ID, dto.UpdateOrderRequest{
		Status: ptr(entity.OrderStatusCompleted),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestInvoiceCreate_VencimientoPorDefecto(t *testing.T) {
	e := newEnv()
	customer := e.seedCustomer("tenant-a")
	producto := e.seedProduct("tenant-a", "Silla", "15.00")

	invoice, err := e.invoices.Create(context.Background(), "tenant-a", dto.CreateInvoiceRequest{
		CustomerID:    customer.ID,
		InvoiceNumber: "FAC-2026-001",
		InvoiceDate:   "2026-08-01",
		Items:         []dto.DocumentItemRequest{{ProductID: producto.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, "2026-08-31", invoice.DueDate)
}

func TestInvoiceUpdate_PagadaEsTerminal(t *testing.T) {
	e := newEnv()
	customer := e.seedCustomer("tenant-a")
	producto := e.seedProduct("tenant-a", "Silla", "15.00")

	invoice, err := e.invoices.Create(context.Background(), "tenant-a", dto.CreateInvoiceRequest{
		CustomerID:    customer.ID,
		InvoiceNumber: "FAC-2026-002",
		InvoiceDate:   "2026-08-01",
		Items:         []dto.DocumentItemRequest{{ProductID: producto.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = e.invoices.Update(context.Background(), "tenant-a", invoice.ID, dto.UpdateInvoiceRequest{
		Status: ptr(entity.InvoiceStatusSent),
	})
	require.NoError(t, err)
	got, err := e.invoices.Update(context.Background(), "tenant-a", invoice.ID, dto.UpdateInvoiceRequest{
		Status: ptr(entity.InvoiceStatusPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)

	_, err = e.invoices.Update(context.Background(), "tenant-a", invoice.ID, dto.UpdateInvoiceRequest{
		Status: ptr(entity.InvoiceStatusDraft),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestQuoteDelete(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	require.NoError(t, e.quotes.Delete(context.Background(), "tenant-a", quote.ID))

	_, err := e.quotes.Get(context.Background(), "tenant-a", quote.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuoteDelete_OtroTenant(t *testing.T) {
	e := newEnv()
	quote := newQuote(t, e, "tenant-a")

	err := e.quotes.Delete(context.Background(), "tenant-b", quote.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.quotes.Get(context.Background(), "tenant-a", quote.ID)
	assert.NoError(t, err)
}

func TestQuoteList_SoloDelTenant(t *testing.T) {
	e := newEnv()
	newQuote(t, e, "tenant-a")
	newQuote(t, e, "tenant-b")

	quotes, err := e.quotes.List(context.Background(), "tenant-a", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "tenant-a", quotes[0].TenantID)
}
