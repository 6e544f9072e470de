package billing_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// fakeStore almacenamiento en memoria compartido por los repos falsos. Imita
// la semántica de los adaptadores reales: filtro por tenant en toda lectura,
// (nil, nil) cuando no existe, update guardado por versión y link guardado por
// back-link nulo.
type fakeStore struct {
	customers map[string]*entity.Customer
	products  map[string]*entity.Product
	quotes    map[string]*entity.Quote
	orders    map[string]*entity.Order
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.DocumentItem // por documento padre
	quoteSeq  []string
	orderSeq  []string
	invSeq    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[string]*entity.Customer{},
		products:  map[string]*entity.Product{},
		quotes:    map[string]*entity.Quote{},
		orders:    map[string]*entity.Order{},
		invoices:  map[string]*entity.Invoice{},
		items:     map[string][]*entity.DocumentItem{},
	}
}

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.TenantID == tenantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, tenantID, id string) error {
	if c, ok := r.s.customers[id]; ok && c.TenantID == tenantID {
		delete(r.s.customers, id)
	}
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, tenantID, id string) error {
	if p, ok := r.s.products[id]; ok && p.TenantID == tenantID {
		delete(r.s.products, id)
	}
	return nil
}

func (s *fakeStore) listItems(tenantID, parentID string) []*entity.DocumentItem {
	var out []*entity.DocumentItem
	for _, it := range s.items[parentID] {
		if it.TenantID == tenantID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out
}

func (s *fakeStore) addItem(it *entity.DocumentItem) {
	cp := *it
	s.items[it.ParentID] = append(s.items[it.ParentID], &cp)
}

type fakeQuoteRepo struct{ s *fakeStore }

func (r *fakeQuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	cp := *q
	r.s.quotes[q.ID] = &cp
	r.s.quoteSeq = append(r.s.quoteSeq, q.ID)
	return nil
}

func (r *fakeQuoteRepo) CreateItem(_ context.Context, it *entity.QuoteItem) error {
	r.s.addItem(it)
	return nil
}

func (r *fakeQuoteRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Quote, error) {
	q, ok := r.s.quotes[id]
	if !ok || q.TenantID != tenantID {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuoteRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for i := len(r.s.quoteSeq) - 1; i >= 0; i-- {
		if q, ok := r.s.quotes[r.s.quoteSeq[i]]; ok && q.TenantID == tenantID {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) ListItems(_ context.Context, tenantID, quoteID string) ([]*entity.QuoteItem, error) {
	return r.s.listItems(tenantID, quoteID), nil
}

func (r *fakeQuoteRepo) Update(_ context.Context, q *entity.Quote) error {
	stored, ok := r.s.quotes[q.ID]
	if !ok || stored.TenantID != q.TenantID {
		return domain.ErrNotFound
	}
	if stored.Version != q.Version {
		return domain.ErrConflict
	}
	cp := *q
	cp.Version = q.Version + 1
	r.s.quotes[q.ID] = &cp
	return nil
}

func (r *fakeQuoteRepo) DeleteItems(_ context.Context, tenantID, quoteID string) error {
	var kept []*entity.DocumentItem
	for _, it := range r.s.items[quoteID] {
		if it.TenantID != tenantID {
			kept = append(kept, it)
		}
	}
	r.s.items[quoteID] = kept
	return nil
}

func (r *fakeQuoteRepo) Delete(_ context.Context, tenantID, id string) error {
	if q, ok := r.s.quotes[id]; ok && q.TenantID == tenantID {
		delete(r.s.quotes, id)
	}
	return nil
}

func (r *fakeQuoteRepo) LinkOrder(_ context.Context, tenantID, quoteID, orderID string, now time.Time) error {
	q, ok := r.s.quotes[quoteID]
	if !ok || q.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if q.ConvertedToOrderID != nil {
		return domain.ErrAlreadyConverted
	}
	q.Status = entity.QuoteStatusApproved
	q.ConvertedToOrderID = &orderID
	q.UpdatedAt = now
	return nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	r.s.orderSeq = append(r.s.orderSeq, o.ID)
	return nil
}

func (r *fakeOrderRepo) CreateItem(_ context.Context, it *entity.OrderItem) error {
	r.s.addItem(it)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for i := len(r.s.orderSeq) - 1; i >= 0; i-- {
		if o, ok := r.s.orders[r.s.orderSeq[i]]; ok && o.TenantID == tenantID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListItems(_ context.Context, tenantID, orderID string) ([]*entity.OrderItem, error) {
	return r.s.listItems(tenantID, orderID), nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *entity.Order) error {
	stored, ok := r.s.orders[o.ID]
	if !ok || stored.TenantID != o.TenantID {
		return domain.ErrNotFound
	}
	if stored.Version != o.Version {
		return domain.ErrConflict
	}
	cp := *o
	cp.Version = o.Version + 1
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) DeleteItems(_ context.Context, tenantID, orderID string) error {
	var kept []*entity.DocumentItem
	for _, it := range r.s.items[orderID] {
		if it.TenantID != tenantID {
			kept = append(kept, it)
		}
	}
	r.s.items[orderID] = kept
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, tenantID, id string) error {
	if o, ok := r.s.orders[id]; ok && o.TenantID == tenantID {
		delete(r.s.orders, id)
	}
	return nil
}

func (r *fakeOrderRepo) LinkInvoice(_ context.Context, tenantID, orderID, invoiceID string, now time.Time) error {
	o, ok := r.s.orders[orderID]
	if !ok || o.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if o.ConvertedToInvoiceID != nil {
		return domain.ErrAlreadyConverted
	}
	o.Status = entity.OrderStatusCompleted
	o.ConvertedToInvoiceID = &invoiceID
	o.UpdatedAt = now
	return nil
}

type fakeInvoiceRepo struct{ s *fakeStore }

func (r *fakeInvoiceRepo) Create(_ context.Context, i *entity.Invoice) error {
	cp := *i
	r.s.invoices[i.ID] = &cp
	r.s.invSeq = append(r.s.invSeq, i.ID)
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(_ context.Context, it *entity.InvoiceItem) error {
	r.s.addItem(it)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Invoice, error) {
	i, ok := r.s.invoices[id]
	if !ok || i.TenantID != tenantID {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInvoiceRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for i := len(r.s.invSeq) - 1; i >= 0; i-- {
		if inv, ok := r.s.invoices[r.s.invSeq[i]]; ok && inv.TenantID == tenantID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListItems(_ context.Context, tenantID, invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.s.listItems(tenantID, invoiceID), nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, i *entity.Invoice) error {
	stored, ok := r.s.invoices[i.ID]
	if !ok || stored.TenantID != i.TenantID {
		return domain.ErrNotFound
	}
	if stored.Version != i.Version {
		return domain.ErrConflict
	}
	cp := *i
	cp.Version = i.Version + 1
	r.s.invoices[i.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) DeleteItems(_ context.Context, tenantID, invoiceID string) error {
	var kept []*entity.DocumentItem
	for _, it := range r.s.items[invoiceID] {
		if it.TenantID != tenantID {
			kept = append(kept, it)
		}
	}
	r.s.items[invoiceID] = kept
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, tenantID, id string) error {
	if i, ok := r.s.invoices[id]; ok && i.TenantID == tenantID {
		delete(r.s.invoices, id)
	}
	return nil
}

// fakeTx ejecuta los callbacks directo sobre los repos en memoria. No hay
// rollback: los tests que inducen errores lo hacen antes de la primera
// escritura.
type fakeTx struct{ s *fakeStore }

func (t *fakeTx) RunQuotes(ctx context.Context, fn func(repository.QuoteRepository) error) error {
	return fn(&fakeQuoteRepo{t.s})
}

func (t *fakeTx) RunOrders(ctx context.Context, fn func(repository.OrderRepository) error) error {
	return fn(&fakeOrderRepo{t.s})
}

func (t *fakeTx) RunInvoices(ctx context.Context, fn func(repository.InvoiceRepository) error) error {
	return fn(&fakeInvoiceRepo{t.s})
}

func (t *fakeTx) RunQuoteToOrder(ctx context.Context, fn func(repository.QuoteRepository, repository.OrderRepository) error) error {
	return fn(&fakeQuoteRepo{t.s}, &fakeOrderRepo{t.s})
}

func (t *fakeTx) RunOrderToInvoice(ctx context.Context, fn func(repository.OrderRepository, repository.InvoiceRepository) error) error {
	return fn(&fakeOrderRepo{t.s}, &fakeInvoiceRepo{t.s})
}

// env arma los casos de uso de billing sobre el almacenamiento en memoria.
type env struct {
	store    *fakeStore
	quotes   *billing.QuoteUseCase
	orders   *billing.OrderUseCase
	invoices *billing.InvoiceUseCase
	convert  *billing.ConvertUseCase
}

func newEnv() *env {
	s := newFakeStore()
	tx := &fakeTx{s: s}
	customers := &fakeCustomerRepo{s}
	products := &fakeProductRepo{s}
	return &env{
		store:    s,
		quotes:   billing.NewQuoteUseCase(tx, &fakeQuoteRepo{s}, customers, products),
		orders:   billing.NewOrderUseCase(tx, &fakeOrderRepo{s}, customers, products),
		invoices: billing.NewInvoiceUseCase(tx, &fakeInvoiceRepo{s}, customers, products),
		convert:  billing.NewConvertUseCase(tx, customers, products),
	}
}

func (e *env) seedCustomer(tenantID string) *entity.Customer {
	c := &entity.Customer{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		CompanyName: "Muebles del Norte BV",
		Email:       "ventas@mueblesdelnorte.example",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	e.store.customers[c.ID] = c
	return c
}

func (e *env) seedProduct(tenantID, name, price string) *entity.Product {
	d, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	p := &entity.Product{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Price:     d,
		Stock:     10,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	e.store.products[p.ID] = p
	return p
}
