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

// plazoPagoDias plazo de pago por defecto cuando el request no trae due_date.
const plazoPagoDias = 30

// InvoiceUseCase casos de uso para facturas. La factura es el final de la
// cadena: no se convierte en nada más.
type InvoiceUseCase struct {
	tx        TxRunner
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(tx TxRunner, invoices repository.InvoiceRepository, customers repository.CustomerRepository, products repository.ProductRepository) *InvoiceUseCase {
	return &InvoiceUseCase{tx: tx, invoices: invoices, customers: customers, products: products}
}

// Create crea una factura directa con sus líneas, en estado draft. Si no se
// envía due_date se calcula a 30 días de la fecha de factura.
func (uc *InvoiceUseCase) Create(ctx context.Context, tenantID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	invoiceDate, err := parseFecha(in.InvoiceDate)
	if err != nil {
		return nil, err
	}
	dueDate := invoiceDate.AddDate(0, 0, plazoPagoDias)
	if in.DueDate != "" {
		if dueDate, err = parseFecha(in.DueDate); err != nil {
			return nil, err
		}
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
	invoice := &entity.Invoice{
		ID:                 uuid.New().String(),
		TenantID:           tenantID,
		CustomerID:         in.CustomerID,
		InvoiceNumber:      in.InvoiceNumber,
		InvoiceDate:        invoiceDate,
		DueDate:            dueDate,
		Status:             lifecycle.Initial(lifecycle.DocInvoice),
		Currency:           currencyOrDefault(in.Currency),
		TaxPercentage:      taxPct,
		DiscountPercentage: discountPct,
		Notes:              in.Notes,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	items := buildItems(tenantID, invoice.ID, reqs)
	lines := linesFromItems(items)
	if err := pricing.ValidateLines(lines); err != nil {
		return nil, err
	}
	invoice.Total = pricing.Calculate(lines, discountPct, taxPct).Rounded().Total

	err = uc.tx.RunInvoices(ctx, func(invoices repository.InvoiceRepository) error {
		if err := invoices.Create(ctx, invoice); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoices.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	resp.Customer = toCustomerSummary(customer)
	resp.InvoiceItems = itemResponses(items, products)
	return resp, nil
}

// List lista facturas del tenant, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.invoices.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	summaries := newCustomerSummaries(uc.customers)
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, invoice := range list {
		resp := toInvoiceResponse(invoice)
		resp.Customer, err = summaries.get(ctx, tenantID, invoice.CustomerID)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Get obtiene una factura con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, tenantID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoices.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoices.ListItems(ctx, tenantID, invoice.ID)
	if err != nil {
		return nil, err
	}
	products, err := productsFor(ctx, uc.products, tenantID, items)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, tenantID, invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	resp.Customer = toCustomerSummary(customer)
	resp.InvoiceItems = itemResponses(items, products)
	return resp, nil
}

// Update aplica los campos presentes y recalcula el total. Las transiciones de
// estado respetan la máquina de la factura (paid y cancelled son terminales).
func (uc *InvoiceUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	invoice, err := uc.invoices.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if in.Version != nil && *in.Version != invoice.Version {
		return nil, domain.ErrConflict
	}
	if in.Status != nil {
		if err := lifecycle.CanTransition(lifecycle.DocInvoice, invoice.Status, *in.Status); err != nil {
			return nil, err
		}
		invoice.Status = *in.Status
	}
	if in.CustomerID != nil {
		customer, err := uc.customers.GetByID(ctx, tenantID, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		invoice.CustomerID = *in.CustomerID
	}
	applyString(&invoice.InvoiceNumber, in.InvoiceNumber)
	applyString(&invoice.Notes, in.Notes)
	if in.InvoiceDate != nil {
		if invoice.InvoiceDate, err = parseFecha(*in.InvoiceDate); err != nil {
			return nil, err
		}
	}
	if in.DueDate != nil {
		if invoice.DueDate, err = parseFecha(*in.DueDate); err != nil {
			return nil, err
		}
	}
	if in.Currency != nil {
		invoice.Currency = currencyOrDefault(*in.Currency)
	}
	if in.TaxPercentage != nil {
		if err := pricing.ValidatePercentage(*in.TaxPercentage); err != nil {
			return nil, err
		}
		invoice.TaxPercentage = *in.TaxPercentage
	}
	if in.DiscountPercentage != nil {
		if err := pricing.ValidatePercentage(*in.DiscountPercentage); err != nil {
			return nil, err
		}
		invoice.DiscountPercentage = *in.DiscountPercentage
	}

	var items []*entity.InvoiceItem
	var products map[string]*entity.Product
	replaced := in.Items != nil
	if replaced {
		reqs, prods, err := normalizeItems(ctx, uc.products, tenantID, *in.Items)
		if err != nil {
			return nil, err
		}
		items = buildItems(tenantID, invoice.ID, reqs)
		products = prods
	} else {
		if items, err = uc.invoices.ListItems(ctx, tenantID, invoice.ID); err != nil {
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
	invoice.Total = pricing.Calculate(lines, invoice.DiscountPercentage, invoice.TaxPercentage).Rounded().Total
	invoice.UpdatedAt = time.Now()

	err = uc.tx.RunInvoices(ctx, func(invoices repository.InvoiceRepository) error {
		if replaced {
			if err := invoices.DeleteItems(ctx, tenantID, invoice.ID); err != nil {
				return err
			}
			for _, item := range items {
				if err := invoices.CreateItem(ctx, item); err != nil {
					return err
				}
			}
		}
		return invoices.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	invoice.Version++
	customer, err := uc.customers.GetByID(ctx, tenantID, invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	resp.Customer = toCustomerSummary(customer)
	resp.InvoiceItems = itemResponses(items, products)
	return resp, nil
}

// Delete elimina la factura y sus líneas. El pedido de origen conserva su
// back-link aunque la factura desaparezca.
func (uc *InvoiceUseCase) Delete(ctx context.Context, tenantID, id string) error {
	invoice, err := uc.invoices.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}
	return uc.tx.RunInvoices(ctx, func(invoices repository.InvoiceRepository) error {
		if err := invoices.DeleteItems(ctx, tenantID, id); err != nil {
			return err
		}
		return invoices.Delete(ctx, tenantID, id)
	})
}

func toInvoiceResponse(i *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:                 i.ID,
		TenantID:           i.TenantID,
		CustomerID:         i.CustomerID,
		InvoiceNumber:      i.InvoiceNumber,
		InvoiceDate:        i.InvoiceDate.Format(fechaCorta),
		DueDate:            i.DueDate.Format(fechaCorta),
		Status:             i.Status,
		Currency:           i.Currency,
		TaxPercentage:      i.TaxPercentage,
		DiscountPercentage: i.DiscountPercentage,
		Total:              i.Total,
		Notes:              i.Notes,
		OrderID:            i.OrderID,
		Version:            i.Version,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}
