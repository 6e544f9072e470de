package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/validate"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/lifecycle"
	"github.com/jhoicas/Facturacion-api/internal/domain/pricing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// OrderUseCase casos de uso para pedidos. Un pedido puede crearse directo
// (sin cotización de origen) o nacer de una conversión; este caso de uso cubre
// el camino directo y las ediciones.
type OrderUseCase struct {
	tx        TxRunner
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(tx TxRunner, orders repository.OrderRepository, customers repository.CustomerRepository, products repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{tx: tx, orders: orders, customers: customers, products: products}
}

// Create crea un pedido directo con sus líneas, en estado pending.
func (uc *OrderUseCase) Create(ctx context.Context, tenantID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	orderDate, err := parseFecha(in.OrderDate)
	if err != nil {
		return nil, err
	}
	taxPct := pctOrDefault(in.TaxPercentage, entity.DefaultTaxPercentage)
	discountPct := pctOrDefault(in.DiscountPercentage, decimal.Zero)
	if err := pricing.ValidatePercentage(taxPct); err != nil {
		return nil, err
	}
	if err := pricing.ValidatePercentage(discountPct); err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, tenantID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	reqs, products, err := normalizeItems(ctx, uc.products, tenantID, in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	order := &entity.Order{
		ID:                 uuid.New().String(),
		TenantID:           tenantID,
		CustomerID:         in.CustomerID,
		OrderNumber:        in.OrderNumber,
		OrderDate:          orderDate,
		Status:             lifecycle.Initial(lifecycle.DocOrder),
		Currency:           currencyOrDefault(in.Currency),
		TaxPercentage:      taxPct,
		DiscountPercentage: discountPct,
		Notes:              in.Notes,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	items := buildItems(tenantID, order.ID, reqs)
	lines := linesFromItems(items)
	if err := pricing.ValidateLines(lines); err != nil {
		return nil, err
	}
	order.Total = pricing.Calculate(lines, discountPct, taxPct).Rounded().Total

	err = uc.tx.RunOrders(ctx, func(orders repository.OrderRepository) error {
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range items {
			if err := orders.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	resp.Customer = toCustomerSummary(customer)
	resp.OrderItems = itemResponses(items, products)
	return resp, nil
}

// List lista pedidos del tenant, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	summaries := newCustomerSummaries(uc.customers)
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, order := range list {
		resp := toOrderResponse(order)
		resp.Customer, err = summaries.get(ctx, tenantID, order.CustomerID)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Get obtiene un pedido con sus líneas.
func (uc *OrderUseCase) Get(ctx context.Context, tenantID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orders.ListItems(ctx, tenantID, order.ID)
	if err != nil {
		return nil, err
	}
	products, err := productsFor(ctx, uc.products, tenantID, items)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, tenantID, order.CustomerID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	resp.Customer = toCustomerSummary(customer)
	resp.OrderItems = itemResponses(items, products)
	return resp, nil
}

// Update aplica los campos presentes y recalcula el total. Un pedido ya
// convertido a factura no admite más ediciones.
func (uc *OrderUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.ConvertedToInvoiceID != nil {
		return nil, domain.ErrAlreadyConverted
	}
	if in.Version != nil && *in.Version != order.Version {
		return nil, domain.ErrConflict
	}
	if in.Status != nil {
		if err := lifecycle.CanTransition(lifecycle.DocOrder, order.Status, *in.Status); err != nil {
			return nil, err
		}
		order.Status = *in.Status
	}
	if in.CustomerID != nil {
		customer, err := uc.customers.GetByID(ctx, tenantID, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		order.CustomerID = *in.CustomerID
	}
	applyString(&order.OrderNumber, in.OrderNumber)
	applyString(&order.Notes, in.Notes)
	if in.OrderDate != nil {
		if order.OrderDate, err = parseFecha(*in.OrderDate); err != nil {
			return nil, err
		}
	}
	if in.Currency != nil {
		order.Currency = currencyOrDefault(*in.Currency)
	}
	if in.TaxPercentage != nil {
		if err := pricing.ValidatePercentage(*in.TaxPercentage); err != nil {
			return nil, err
		}
		order.TaxPercentage = *in.TaxPercentage
	}
	if in.DiscountPercentage != nil {
		if err := pricing.ValidatePercentage(*in.DiscountPercentage); err != nil {
			return nil, err
		}
		order.DiscountPercentage = *in.DiscountPercentage
	}

	var items []*entity.OrderItem
	var products map[string]*entity.Product
	replaced := in.Items != nil
	if replaced {
		reqs, prods, err := normalizeItems(ctx, uc.products, tenantID, *in.Items)
		if err != nil {
			return nil, err
		}
		items = buildItems(tenantID, order.ID, reqs)
		products = prods
	} else {
		if items, err = uc.orders.ListItems(ctx, tenantID, order.ID); err != nil {
			return nil, err
		}
		if products, err = productsFor(ctx, uc.products, tenantID, items); err != nil {
			return nil, err
		}
	}
	lines := linesFromItems(items)
	if err := pricing.ValidateLines(lines); err != nil {
		return nil, err
	}
	order.Total = pricing.Calculate(lines, order.DiscountPercentage, order.TaxPercentage).Rounded().Total
	order.UpdatedAt = time.Now()

	err = uc.tx.RunOrders(ctx, func(orders repository.OrderRepository) error {
		if replaced {
			if err := orders.DeleteItems(ctx, tenantID, order.ID); err != nil {
				return err
			}
			for _, item := range items {
				if err := orders.CreateItem(ctx, item); err != nil {
					return err
				}
			}
		}
		return orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	order.Version++
	customer, err := uc.customers.GetByID(ctx, tenantID, order.CustomerID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	resp.Customer = toCustomerSummary(customer)
	resp.OrderItems = itemResponses(items, products)
	return resp, nil
}

// Delete elimina el pedido y sus líneas. No toca la cotización de origen ni la
// factura derivada: los enlaces quedan colgando a propósito.
func (uc *OrderUseCase) Delete(ctx context.Context, tenantID, id string) error {
	order, err := uc.orders.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.tx.RunOrders(ctx, func(orders repository.OrderRepository) error {
		if err := orders.DeleteItems(ctx, tenantID, id); err != nil {
			return err
		}
		return orders.Delete(ctx, tenantID, id)
	})
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:                   o.ID,
		TenantID:             o.TenantID,
		CustomerID:           o.CustomerID,
		OrderNumber:          o.OrderNumber,
		OrderDate:            o.OrderDate.Format(fechaCorta),
		Status:               o.Status,
		Currency:             o.Currency,
		TaxPercentage:        o.TaxPercentage,
		DiscountPercentage:   o.DiscountPercentage,
		Total:                o.Total,
		Notes:                o.Notes,
		QuoteID:              o.QuoteID,
		ConvertedToInvoiceID: o.ConvertedToInvoiceID,
		Version:              o.Version,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}
