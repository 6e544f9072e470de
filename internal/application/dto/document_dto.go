package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemRequest línea de documento en create/update. El precio que se
// envía queda congelado en la línea; no se sincroniza con el producto.
type DocumentItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

// DocumentItemResponse línea con detalle de producto incrustado.
type DocumentItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// CreateQuoteRequest body para POST /api/quotes. Fechas en formato 2006-01-02.
type CreateQuoteRequest struct {
	CustomerID         string                `json:"customer_id" validate:"required"`
	QuoteNumber        string                `json:"quote_number" validate:"required,max=50"`
	QuoteDate          string                `json:"quote_date" validate:"required,datetime=2006-01-02"`
	ValidUntil         string                `json:"valid_until" validate:"required,datetime=2006-01-02"`
	Currency           string                `json:"currency" validate:"omitempty,len=3"`
	TaxPercentage      *decimal.Decimal      `json:"tax_percentage"`
	DiscountPercentage *decimal.Decimal      `json:"discount_percentage"`
	Notes              string                `json:"notes"`
	Items              []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuoteRequest body para PUT /api/quotes/:id. Campos opcionales
// tipados; Items presente reemplaza el conjunto completo de líneas.
// Version, si se envía, habilita el control optimista de concurrencia.
type UpdateQuoteRequest struct {
	CustomerID         *string                `json:"customer_id"`
	QuoteNumber        *string                `json:"quote_number" validate:"omitempty,min=1,max=50"`
	QuoteDate          *string                `json:"quote_date" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil         *string                `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	Status             *string                `json:"status"`
	Currency           *string                `json:"currency" validate:"omitempty,len=3"`
	TaxPercentage      *decimal.Decimal       `json:"tax_percentage"`
	DiscountPercentage *decimal.Decimal       `json:"discount_percentage"`
	Notes              *string                `json:"notes"`
	Items              *[]DocumentItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Version            *int                   `json:"version"`
}

// QuoteResponse cotización en respuestas; QuoteItems solo en el GET por id.
type QuoteResponse struct {
	ID                 string                 `json:"id"`
	TenantID           string                 `json:"tenant_id"`
	CustomerID         string                 `json:"customer_id"`
	QuoteNumber        string                 `json:"quote_number"`
	QuoteDate          string                 `json:"quote_date"`
	ValidUntil         string                 `json:"valid_until"`
	Status             string                 `json:"status"`
	Currency           string                 `json:"currency"`
	TaxPercentage      decimal.Decimal        `json:"tax_percentage"`
	DiscountPercentage decimal.Decimal        `json:"discount_percentage"`
	Total              decimal.Decimal        `json:"total"`
	Notes              string                 `json:"notes,omitempty"`
	ConvertedToOrderID *string                `json:"converted_to_order_id,omitempty"`
	Version            int                    `json:"version"`
	Customer           *CustomerSummary       `json:"customer,omitempty"`
	QuoteItems         []DocumentItemResponse `json:"quote_items,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID         string                `json:"customer_id" validate:"required"`
	OrderNumber        string                `json:"order_number" validate:"required,max=50"`
	OrderDate          string                `json:"order_date" validate:"required,datetime=2006-01-02"`
	Currency           string                `json:"currency" validate:"omitempty,len=3"`
	TaxPercentage      *decimal.Decimal      `json:"tax_percentage"`
	DiscountPercentage *decimal.Decimal      `json:"discount_percentage"`
	Notes              string                `json:"notes"`
	Items              []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest body para PUT /api/orders/:id.
type UpdateOrderRequest struct {
	CustomerID         *string                `json:"customer_id"`
	OrderNumber        *string                `json:"order_number" validate:"omitempty,min=1,max=50"`
	OrderDate          *string                `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	Status             *string                `json:"status"`
	Currency           *string                `json:"currency" validate:"omitempty,len=3"`
	TaxPercentage      *decimal.Decimal       `json:"tax_percentage"`
	DiscountPercentage *decimal.Decimal       `json:"discount_percentage"`
	Notes              *string                `json:"notes"`
	Items              *[]DocumentItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Version            *int                   `json:"version"`
}

// OrderResponse pedido en respuestas.
type OrderResponse struct {
	ID                   string                 `json:"id"`
	TenantID             string                 `json:"tenant_id"`
	CustomerID           string                 `json:"customer_id"`
	OrderNumber          string                 `json:"order_number"`
	OrderDate            string                 `json:"order_date"`
	Status               string                 `json:"status"`
	Currency             string                 `json:"currency"`
	TaxPercentage        decimal.Decimal        `json:"tax_percentage"`
	DiscountPercentage   decimal.Decimal        `json:"discount_percentage"`
	Total                decimal.Decimal        `json:"total"`
	Notes                string                 `json:"notes,omitempty"`
	QuoteID              *string                `json:"quote_id,omitempty"`
	ConvertedToInvoiceID *string                `json:"converted_to_invoice_id,omitempty"`
	Version              int                    `json:"version"`
	Customer             *CustomerSummary       `json:"customer,omitempty"`
	OrderItems           []DocumentItemResponse `json:"order_items,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID         string                `json:"customer_id" validate:"required"`
	InvoiceNumber      string                `json:"invoice_number" validate:"required,max=50"`
	InvoiceDate        string                `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	DueDate            string                `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Currency           string                `json:"currency" validate:"omitempty,len=3"`
	TaxPercentage      *decimal.Decimal      `json:"tax_percentage"`
	DiscountPercentage *decimal.Decimal      `json:"discount_percentage"`
	Notes              string                `json:"notes"`
	Items              []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id.
type UpdateInvoiceRequest struct {
	CustomerID         *string                `json:"customer_id"`
	InvoiceNumber      *string                `json:"invoice_number" validate:"omitempty,min=1,max=50"`
	InvoiceDate        *string                `json:"invoice_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate            *string                `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status             *string                `json:"status"`
	Currency           *string                `json:"currency" validate:"omitempty,len=3"`
	TaxPercentage      *decimal.Decimal       `json:"tax_percentage"`
	DiscountPercentage *decimal.Decimal       `json:"discount_percentage"`
	Notes              *string                `json:"notes"`
	Items              *[]DocumentItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Version            *int                   `json:"version"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID                 string                 `json:"id"`
	TenantID           string                 `json:"tenant_id"`
	CustomerID         string                 `json:"customer_id"`
	InvoiceNumber      string                 `json:"invoice_number"`
	InvoiceDate        string                 `json:"invoice_date"`
	DueDate            string                 `json:"due_date"`
	Status             string                 `json:"status"`
	Currency           string                 `json:"currency"`
	TaxPercentage      decimal.Decimal        `json:"tax_percentage"`
	DiscountPercentage decimal.Decimal        `json:"discount_percentage"`
	Total              decimal.Decimal        `json:"total"`
	Notes              string                 `json:"notes,omitempty"`
	OrderID            *string                `json:"order_id,omitempty"`
	Version            int                    `json:"version"`
	Customer           *CustomerSummary       `json:"customer,omitempty"`
	InvoiceItems       []DocumentItemResponse `json:"invoice_items,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}
