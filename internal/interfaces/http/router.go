package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/catalog"
	"github.com/jhoicas/Facturacion-api/internal/application/crm"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CustomerUC      *crm.CustomerUseCase
	ContactPersonUC *crm.ContactPersonUseCase
	NoteUC          *crm.NoteUseCase
	ProductUC       *catalog.ProductUseCase
	QuoteUC         *billing.QuoteUseCase
	OrderUC         *billing.OrderUseCase
	InvoiceUC       *billing.InvoiceUseCase
	ConvertUC       *billing.ConvertUseCase
	RevenueUC       *analytics.RevenueUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token; el tenant sale del token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Los borrados son destructivos: solo admin
	adminOnly := RequireRole(entity.RoleAdmin)

	// Customers (protegido) + subrecursos contact-persons
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	contactHandler := NewContactPersonHandler(deps.ContactPersonUC)
	contacts := customers.Group("/:customerId/contact-persons")
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", adminOnly, contactHandler.Delete)

	// Notes (protegido)
	notes := protected.Group("/notes")
	noteHandler := NewNoteHandler(deps.NoteUC)
	notes.Post("/", noteHandler.Create)
	notes.Get("/", noteHandler.List)
	notes.Get("/:id", noteHandler.GetByID)
	notes.Put("/:id", noteHandler.Update)
	notes.Delete("/:id", adminOnly, noteHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Quotes (protegido)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.ConvertUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Delete("/:id", adminOnly, quoteHandler.Delete)
	quotes.Post("/:id/convert-to-order", quoteHandler.ConvertToOrder)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ConvertUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)
	orders.Post("/:id/convert-to-invoice", orderHandler.ConvertToInvoice)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)

	// Revenue (protegido)
	revenueHandler := NewRevenueHandler(deps.RevenueUC)
	protected.Get("/revenue", revenueHandler.Revenue)
}
