package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto para documentos comerciales.
const DefaultCurrency = "EUR"

// DefaultTaxPercentage IVA por defecto (21%).
var DefaultTaxPercentage = decimal.NewFromInt(21)

// Estados de Quote (cotización). Approved solo se asigna desde la conversión.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusApproved = "approved"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

// Estados de Order (pedido). Completed solo se asigna desde la conversión.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Estados de Invoice (factura). No hay conversión posterior a la factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// Quote representa una cotización. ConvertedToOrderID queda poblado junto con
// status=approved cuando la cotización se convierte en pedido.
type Quote struct {
	ID                 string
	TenantID           string
	CustomerID         string
	QuoteNumber        string
	QuoteDate          time.Time
	ValidUntil         time.Time
	Status             string
	Currency           string
	TaxPercentage      decimal.Decimal
	DiscountPercentage decimal.Decimal
	Total              decimal.Decimal
	Notes              string
	ConvertedToOrderID *string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Order representa un pedido. QuoteID enlaza a la cotización de origen si el
// pedido nació de una conversión; ConvertedToInvoiceID se puebla junto con
// status=completed al convertir a factura.
type Order struct {
	ID                   string
	TenantID             string
	CustomerID           string
	OrderNumber          string
	OrderDate            time.Time
	Status               string
	Currency             string
	TaxPercentage        decimal.Decimal
	DiscountPercentage   decimal.Decimal
	Total                decimal.Decimal
	Notes                string
	QuoteID              *string
	ConvertedToInvoiceID *string
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Invoice representa una factura. OrderID enlaza al pedido de origen si la
// factura nació de una conversión.
type Invoice struct {
	ID                 string
	TenantID           string
	CustomerID         string
	InvoiceNumber      string
	InvoiceDate        time.Time
	DueDate            time.Time
	Status             string
	Currency           string
	TaxPercentage      decimal.Decimal
	DiscountPercentage decimal.Decimal
	Total              decimal.Decimal
	Notes              string
	OrderID            *string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DocumentItem línea de un documento comercial. Price es el precio congelado
// al momento de agregar la línea; no se re-lee del producto.
type DocumentItem struct {
	ID        string
	TenantID  string
	ParentID  string // id del quote/order/invoice dueño de la línea
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Total     decimal.Decimal // Quantity × Price
}

// QuoteItem, OrderItem e InvoiceItem comparten forma; el tipo distingue la
// colección a la que pertenecen.
type (
	QuoteItem   = DocumentItem
	OrderItem   = DocumentItem
	InvoiceItem = DocumentItem
)
