package main

import (
	"barber-pos-api/internal/config"
	"barber-pos-api/internal/handler"
	"barber-pos-api/internal/middleware"
	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"
	"barber-pos-api/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

type routes struct {
	userRepo    repository.UserRepository
	hub         *ws.Hub
	auth        *handler.AuthHandler
	users       *handler.UserHandler
	catalog     *handler.CatalogHandler
	employees   *handler.EmployeeHandler
	transaction *handler.TransactionHandler
	reports     *handler.ReportHandler
	utility     *handler.UtilityHandler
}

func newApp(cfg config.Config, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Barber POS API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error(), "code": "http_error"})
		},
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	return app
}

func registerRoutes(app *fiber.App, r routes) {
	app.Get("/health", handler.Health)

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	api.Get("/health", handler.Health)
	api.Post("/auth/login", r.auth.Login)
	api.Post("/setup", r.auth.Setup)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(r.userRepo))
	writers := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	protected.Get("/auth/me", r.auth.Me)

	// Categories
	protected.Get("/categories", r.catalog.GetCategories)
	protected.Get("/categories/:id", r.catalog.GetCategory)
	protected.Post("/categories", writers, r.catalog.CreateCategory)
	protected.Put("/categories/:id", writers, r.catalog.UpdateCategory)
	protected.Delete("/categories/:id", writers, r.catalog.DeleteCategory)

	// Products
	protected.Get("/products", r.catalog.GetProducts)
	protected.Get("/products/barcode/:barcode", r.catalog.GetProductByBarcode)
	protected.Get("/products/:id", r.catalog.GetProduct)
	protected.Post("/products", writers, r.catalog.CreateProduct)
	protected.Put("/products/:id", writers, r.catalog.UpdateProduct)
	protected.Delete("/products/:id", writers, r.catalog.DeleteProduct)

	// Employees
	protected.Get("/employees", r.employees.GetEmployees)
	protected.Get("/employees/:id", r.employees.GetEmployee)
	protected.Get("/employees/:id/price", r.employees.GetPrice)
	protected.Post("/employees", writers, r.employees.CreateEmployee)
	protected.Put("/employees/:id", writers, r.employees.UpdateEmployee)
	protected.Delete("/employees/:id", writers, r.employees.DeleteEmployee)

	// Sales (any authenticated role)
	protected.Get("/sales", r.transaction.GetSales)
	protected.Get("/sales/next-invoice", r.transaction.NextSaleInvoice)
	protected.Get("/sales/invoice/:number", r.transaction.GetSaleByInvoice)
	protected.Get("/sales/:id", r.transaction.GetSale)
	protected.Post("/sales/quote", r.transaction.QuoteSale)
	protected.Post("/sales", r.transaction.CreateSale)

	// Purchases
	protected.Get("/purchases", r.transaction.GetPurchases)
	protected.Get("/purchases/next-invoice", r.transaction.NextPurchaseInvoice)
	protected.Get("/purchases/:id", r.transaction.GetPurchase)
	protected.Post("/purchases", writers, r.transaction.CreatePurchase)

	// Reports
	reports := protected.Group("/reports")
	reports.Get("/sales", r.reports.GetSales)
	reports.Get("/purchases", r.reports.GetPurchases)
	reports.Get("/profit", r.reports.GetProfit)
	reports.Get("/top-selling", r.reports.GetTopSelling)
	reports.Get("/purchased-items", r.reports.GetPurchasedItems)
	reports.Get("/sold-items", r.reports.GetSoldItems)
	reports.Get("/employees", r.reports.GetEmployees)

	// User Management
	protected.Get("/users", adminOnly, r.users.GetUsers)
	protected.Get("/users/:id", adminOnly, r.users.GetUser)
	protected.Post("/users", adminOnly, r.users.CreateUser)
	protected.Put("/users/:id", adminOnly, r.users.UpdateUser)
	protected.Delete("/users/:id", adminOnly, r.users.DeleteUser)

	// Utility
	protected.Get("/utility/export", writers, r.utility.Export)
	protected.Post("/utility/backup", writers, r.utility.Backup)
	protected.Post("/utility/import", adminOnly, r.utility.Import)
	protected.Post("/utility/clear", adminOnly, r.utility.Clear)

	// WebSocket Route
	app.Use("/ws", ws.Upgrade)
	app.Get("/ws", r.hub.Handler())
}
