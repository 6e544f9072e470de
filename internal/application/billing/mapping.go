package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/pricing"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

const fechaCorta = "2006-01-02"

// normalizeItems verifica que cada línea referencie un producto existente del
// tenant y congela el precio: si la línea no trae precio (cero), se toma el
// precio actual del producto. Retorna las líneas normalizadas y los productos
// leídos, indexados por id.
func normalizeItems(ctx context.Context, products repository.ProductRepository, tenantID string, reqs []dto.DocumentItemRequest) ([]dto.DocumentItemRequest, map[string]*entity.Product, error) {
	found := make(map[string]*entity.Product, len(reqs))
	out := make([]dto.DocumentItemRequest, len(reqs))
	for i, req := range reqs {
		product, ok := found[req.ProductID]
		if !ok {
			var err error
			product, err = products.GetByID(ctx, tenantID, req.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if product == nil {
				return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, req.ProductID)
			}
			found[req.ProductID] = product
		}
		if req.Price.IsZero() {
			req.Price = product.Price
		}
		out[i] = req
	}
	return out, found, nil
}

// buildItems materializa líneas de documento a partir de requests ya
// normalizados. El total de línea se redondea a dos decimales.
func buildItems(tenantID, parentID string, reqs []dto.DocumentItemRequest) []*entity.DocumentItem {
	items := make([]*entity.DocumentItem, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, &entity.DocumentItem{
			ID:        uuid.New().String(),
			TenantID:  tenantID,
			ParentID:  parentID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Price:     req.Price,
			Total:     pricing.LineTotal(req.Quantity, req.Price),
		})
	}
	return items
}

// copyItems duplica las líneas de un documento origen hacia un documento
// destino, conservando producto, cantidad y precio congelado.
func copyItems(src []*entity.DocumentItem, tenantID, parentID string) []*entity.DocumentItem {
	items := make([]*entity.DocumentItem, 0, len(src))
	for _, it := range src {
		items = append(items, &entity.DocumentItem{
			ID:        uuid.New().String(),
			TenantID:  tenantID,
			ParentID:  parentID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     it.Total,
		})
	}
	return items
}

// linesFromItems proyecta líneas de entidad al cálculo de totales.
func linesFromItems(items []*entity.DocumentItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{Quantity: it.Quantity, UnitPrice: it.Price})
	}
	return lines
}

// productsFor lee los productos referenciados por un conjunto de líneas para
// incrustarlos en la respuesta. Un producto borrado después de congelar la
// línea simplemente no aparece incrustado.
func productsFor(ctx context.Context, products repository.ProductRepository, tenantID string, items []*entity.DocumentItem) (map[string]*entity.Product, error) {
	found := make(map[string]*entity.Product, len(items))
	for _, it := range items {
		if _, ok := found[it.ProductID]; ok {
			continue
		}
		product, err := products.GetByID(ctx, tenantID, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			found[it.ProductID] = product
		}
	}
	return found, nil
}

func itemResponses(items []*entity.DocumentItem, products map[string]*entity.Product) []dto.DocumentItemResponse {
	out := make([]dto.DocumentItemResponse, 0, len(items))
	for _, it := range items {
		resp := dto.DocumentItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     it.Total,
		}
		if p, ok := products[it.ProductID]; ok {
			resp.Product = &dto.ProductSummary{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price}
		}
		out = append(out, resp)
	}
	return out
}

func toCustomerSummary(c *entity.Customer) *dto.CustomerSummary {
	if c == nil {
		return nil
	}
	return &dto.CustomerSummary{ID: c.ID, Name: c.DisplayName(), Email: c.Email}
}

// customerSummaries resuelve los clientes de un listado de documentos, con
// caché por id para no repetir lecturas.
type customerSummaries struct {
	repo  repository.CustomerRepository
	cache map[string]*dto.CustomerSummary
}

func newCustomerSummaries(repo repository.CustomerRepository) *customerSummaries {
	return &customerSummaries{repo: repo, cache: make(map[string]*dto.CustomerSummary)}
}

func (cs *customerSummaries) get(ctx context.Context, tenantID, customerID string) (*dto.CustomerSummary, error) {
	if summary, ok := cs.cache[customerID]; ok {
		return summary, nil
	}
	customer, err := cs.repo.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	summary := toCustomerSummary(customer)
	cs.cache[customerID] = summary
	return summary, nil
}

func parseFecha(s string) (time.Time, error) {
	t, err := time.Parse(fechaCorta, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func pctOrDefault(p *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if p != nil {
		return *p
	}
	return def
}

func currencyOrDefault(c string) string {
	if c == "" {
		return entity.DefaultCurrency
	}
	return c
}

// numeroDocumento genera un número legible para documentos creados por
// conversión (el usuario no elige el número en ese camino).
func numeroDocumento(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, t.Unix())
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
