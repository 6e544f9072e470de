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

// QuoteUseCase casos de uso para cotizaciones. Las lecturas van directo al
// repositorio; toda escritura multi-paso (cabecera + líneas) corre dentro de
// una transacción vía TxRunner.
type QuoteUseCase struct {
	tx        TxRunner
	quotes    repository.QuoteRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(tx TxRunner, quotes repository.QuoteRepository, customers repository.CustomerRepository, products repository.ProductRepository) *QuoteUseCase {
	return &QuoteUseCase{tx: tx, quotes: quotes, customers: customers, products: products}
}

// Create crea una cotización con sus líneas. El tenant es siempre el del
// contexto; el estado inicial es draft y el total se calcula en el servidor a
// partir de las líneas y los porcentajes.
func (uc *QuoteUseCase) Create(ctx context.Context, tenantID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	quoteDate, err := parseFecha(in.QuoteDate)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseFecha(in.ValidUntil)
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
	quote := &entity.Quote{
		ID:                 uuid.New().String(),
		TenantID:           tenantID,
		CustomerID:         in.CustomerID,
		QuoteNumber:        in.QuoteNumber,
		QuoteDate:          quoteDate,
		ValidUntil:         validUntil,
		Status:             lifecycle.Initial(lifecycle.DocQuote),
		Currency:           currencyOrDefault(in.Currency),
		TaxPercentage:      taxPct,
		DiscountPercentage: discountPct,
		Notes:              in.Notes,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	items := buildItems(tenantID, quote.ID, reqs)
	lines := linesFromItems(items)
	if err := pricing.ValidateLines(lines); err != nil {
		return nil, err
	}
	quote.Total = pricing.Calculate(lines, discountPct, taxPct).Rounded().Total

	err = uc.tx.RunQuotes(ctx, func(quotes repository.QuoteRepository) error {
		if err := quotes.Create(ctx, quote); err != nil {
			return err
		}
		for _, item := range items {
			if err := quotes.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toQuoteResponse(quote)
	resp.Customer = toCustomerSummary(customer)
	resp.QuoteItems = itemResponses(items, products)
	return resp, nil
}

// List lista cotizaciones del tenant, más recientes primero, con el resumen
// del cliente incrustado. No incluye líneas.
func (uc *QuoteUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.QuoteResponse, error) {
	page.DefaultPage()
	list, err := uc.quotes.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	summaries := newCustomerSummaries(uc.customers)
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, quote := range list {
		resp := toQuoteResponse(quote)
		resp.Customer, err = summaries.get(ctx, tenantID, quote.CustomerID)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Get obtiene una cotización con sus líneas y el detalle de producto de cada
// línea.
func (uc *QuoteUseCase) Get(ctx context.Context, tenantID, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quotes.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quotes.ListItems(ctx, tenantID, quote.ID)
	if err != nil {
		return nil, err
	}
	products, err := productsFor(ctx, uc.products, tenantID, items)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, tenantID, quote.CustomerID)
	if err != nil {
		return nil, err
	}
	resp := toQuoteResponse(quote)
	resp.Customer = toCustomerSummary(customer)
	resp.QuoteItems = itemResponses(items, products)
	return resp, nil
}

// Update aplica los campos presentes. Items, si viene, reemplaza el conjunto
// completo de líneas. El total siempre se recalcula con las líneas y
// porcentajes efectivos tras aplicar los cambios. Una cotización ya convertida
// no admite más ediciones.
func (uc *QuoteUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	quote, err := uc.quotes.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.ConvertedToOrderID != nil {
		return nil, domain.ErrAlreadyConverted
	}
	if in.Version != nil && *in.Version != quote.Version {
		return nil, domain.ErrConflict
	}
	if in.Status != nil {
		if err := lifecycle.CanTransition(lifecycle.DocQuote, quote.Status, *in.Status); err != nil {
			return nil, err
		}
		quote.Status = *in.Status
	}
	if in.CustomerID != nil {
		customer, err := uc.customers.GetByID(ctx, tenantID, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		quote.CustomerID = *in.CustomerID
	}
	applyString(&quote.QuoteNumber, in.QuoteNumber)
	applyString(&quote.Notes, in.Notes)
	if in.QuoteDate != nil {
		if quote.QuoteDate, err = parseFecha(*in.QuoteDate); err != nil {
			return nil, err
		}
	}
	if in.ValidUntil != nil {
		if quote.ValidUntil, err = parseFecha(*in.ValidUntil); err != nil {
			return nil, err
		}
	}
	if in.Currency != nil {
		quote.Currency = currencyOrDefault(*in.Currency)
	}
	if in.TaxPercentage != nil {
		if err := pricing.ValidatePercentage(*in.TaxPercentage); err != nil {
			return nil, err
		}
		quote.TaxPercentage = *in.TaxPercentage
	}
	if in.DiscountPercentage != nil {
		if err := pricing.ValidatePercentage(*in.DiscountPercentage); err != nil {
			return nil, err
		}
		quote.DiscountPercentage = *in.DiscountPercentage
	}

	var items []*entity.QuoteItem
	var products map[string]*entity.Product
	replaced := in.Items != nil
	if replaced {
		reqs, prods, err := normalizeItems(ctx, uc.products, tenantID, *in.Items)
		if err != nil {
			return nil, err
		}
		items = buildItems(tenantID, quote.ID, reqs)
		products = prods
	} else {
		if items, err = uc.quotes.ListItems(ctx, tenantID, quote.ID); err != nil {
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
	quote.Total = pricing.Calculate(lines, quote.DiscountPercentage, quote.TaxPercentage).Rounded().Total
	quote.UpdatedAt = time.Now()

	err = uc.tx.RunQuotes(ctx, func(quotes repository.QuoteRepository) error {
		if replaced {
			if err := quotes.DeleteItems(ctx, tenantID, quote.ID); err != nil {
				return err
			}
			for _, item := range items {
				if err := quotes.CreateItem(ctx, item); err != nil {
					return err
				}
			}
		}
		return quotes.Update(ctx, quote)
	})
	if err != nil {
		return nil, err
	}
	quote.Version++
	customer, err := uc.customers.GetByID(ctx, tenantID, quote.CustomerID)
	if err != nil {
		return nil, err
	}
	resp := toQuoteResponse(quote)
	resp.Customer = toCustomerSummary(customer)
	resp.QuoteItems = itemResponses(items, products)
	return resp, nil
}

// Delete elimina la cotización y sus líneas en una transacción. Borrar una
// cotización convertida no toca el pedido que nació de ella.
func (uc *QuoteUseCase) Delete(ctx context.Context, tenantID, id string) error {
	quote, err := uc.quotes.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return domain.ErrNotFound
	}
	return uc.tx.RunQuotes(ctx, func(quotes repository.QuoteRepository) error {
		if err := quotes.DeleteItems(ctx, tenantID, id); err != nil {
			return err
		}
		return quotes.Delete(ctx, tenantID, id)
	})
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:                 q.ID,
		TenantID:           q.TenantID,
		CustomerID:         q.CustomerID,
		QuoteNumber:        q.QuoteNumber,
		QuoteDate:          q.QuoteDate.Format(fechaCorta),
		ValidUntil:         q.ValidUntil.Format(fechaCorta),
		Status:             q.Status,
		Currency:           q.Currency,
		TaxPercentage:      q.TaxPercentage,
		DiscountPercentage: q.DiscountPercentage,
		Total:              q.Total,
		Notes:              q.Notes,
		ConvertedToOrderID: q.ConvertedToOrderID,
		Version:            q.Version,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}
