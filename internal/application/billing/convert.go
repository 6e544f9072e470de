package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/lifecycle"
	"github.com/jhoicas/Facturacion-api/internal/domain/pricing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// ConvertUseCase orquesta las conversiones Quote→Order y Order→Invoice. Cada
// conversión corre completa en una transacción: crear el documento destino con
// sus líneas copiadas y marcar el origen (estado reservado + back-link) en una
// sola sentencia guardada, de modo que dos conversiones concurrentes del mismo
// origen produzcan exactamente un documento destino.
type ConvertUseCase struct {
	tx        TxRunner
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewConvertUseCase construye el caso de uso.
func NewConvertUseCase(tx TxRunner, customers repository.CustomerRepository, products repository.ProductRepository) *ConvertUseCase {
	return &ConvertUseCase{tx: tx, customers: customers, products: products}
}

// QuoteToOrder convierte una cotización en pedido. Las líneas se copian con
// sus precios congelados, el total se recalcula sobre esas líneas (igual al de
// la cotización si nadie la tocó), la cotización queda approved con back-link
// al pedido y el pedido nace pending con enlace a la cotización.
func (uc *ConvertUseCase) QuoteToOrder(ctx context.Context, tenantID, quoteID string) (*dto.OrderResponse, error) {
	var order *entity.Order
	var items []*entity.OrderItem
	err := uc.tx.RunQuoteToOrder(ctx, func(quotes repository.QuoteRepository, orders repository.OrderRepository) error {
		quote, err := quotes.GetByID(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}
		if quote == nil {
			return domain.ErrNotFound
		}
		if quote.ConvertedToOrderID != nil {
			return domain.ErrAlreadyConverted
		}
		if err := lifecycle.CanConvert(lifecycle.DocQuote, quote.Status); err != nil {
			return err
		}
		srcItems, err := quotes.ListItems(ctx, tenantID, quote.ID)
		if err != nil {
			return err
		}
		totals := pricing.Calculate(linesFromItems(srcItems), quote.DiscountPercentage, quote.TaxPercentage).Rounded()
		now := time.Now()
		order = &entity.Order{
			ID:                 uuid.New().String(),
			TenantID:           tenantID,
			CustomerID:         quote.CustomerID,
			OrderNumber:        numeroDocumento("ORD", now),
			OrderDate:          now,
			Status:             lifecycle.Initial(lifecycle.DocOrder),
			Currency:           quote.Currency,
			TaxPercentage:      quote.TaxPercentage,
			DiscountPercentage: quote.DiscountPercentage,
			Total:              totals.Total,
			Notes:              quote.Notes,
			QuoteID:            &quote.ID,
			Version:            1,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		items = copyItems(srcItems, tenantID, order.ID)
		for _, item := range items {
			if err := orders.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return quotes.LinkOrder(ctx, tenantID, quote.ID, order.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.orderResponse(ctx, tenantID, order, items)
}

// OrderToInvoice convierte un pedido en factura. El pedido queda completed con
// back-link a la factura; la factura nace draft con fecha de hoy y vencimiento
// a 30 días.
func (uc *ConvertUseCase) OrderToInvoice(ctx context.Context, tenantID, orderID string) (*dto.InvoiceResponse, error) {
	var invoice *entity.Invoice
	var items []*entity.InvoiceItem
	err := uc.tx.RunOrderToInvoice(ctx, func(orders repository.OrderRepository, invoices repository.InvoiceRepository) error {
		order, err := orders.GetByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.ConvertedToInvoiceID != nil {
			return domain.ErrAlreadyConverted
		}
		if err := lifecycle.CanConvert(lifecycle.DocOrder, order.Status); err != nil {
			return err
		}
		srcItems, err := orders.ListItems(ctx, tenantID, order.ID)
		if err != nil {
			return err
		}
		totals := pricing.Calculate(linesFromItems(srcItems), order.DiscountPercentage, order.TaxPercentage).Rounded()
		now := time.Now()
		invoice = &entity.Invoice{
			ID:                 uuid.New().String(),
			TenantID:           tenantID,
			CustomerID:         order.CustomerID,
			InvoiceNumber:      numeroDocumento("INV", now),
			InvoiceDate:        now,
			DueDate:            now.AddDate(0, 0, plazoPagoDias),
			Status:             lifecycle.Initial(lifecycle.DocInvoice),
			Currency:           order.Currency,
			TaxPercentage:      order.TaxPercentage,
			DiscountPercentage: order.DiscountPercentage,
			Total:              totals.Total,
			Notes:              order.Notes,
			OrderID:            &order.ID,
			Version:            1,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := invoices.Create(ctx, invoice); err != nil {
			return err
		}
		items = copyItems(srcItems, tenantID, invoice.ID)
		for _, item := range items {
			if err := invoices.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return orders.LinkInvoice(ctx, tenantID, order.ID, invoice.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.invoiceResponse(ctx, tenantID, invoice, items)
}

func (uc *ConvertUseCase) orderResponse(ctx context.Context, tenantID string, order *entity.Order, items []*entity.OrderItem) (*dto.OrderResponse, error) {
	customer, err := uc.customers.GetByID(ctx, tenantID, order.CustomerID)
	if err != nil {
		return nil, err
	}
	products, err := productsFor(ctx, uc.products, tenantID, items)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	resp.Customer = toCustomerSummary(customer)
	resp.OrderItems = itemResponses(items, products)
	return resp, nil
}

func (uc *ConvertUseCase) invoiceResponse(ctx context.Context, tenantID string, invoice *entity.Invoice, items []*entity.InvoiceItem) (*dto.InvoiceResponse, error) {
	customer, err := uc.customers.GetByID(ctx, tenantID, invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	products, err := productsFor(ctx, uc.products, tenantID, items)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	resp.Customer = toCustomerSummary(customer)
	resp.InvoiceItems = itemResponses(items, products)
	return resp, nil
}
