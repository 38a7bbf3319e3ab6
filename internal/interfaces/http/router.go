package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sorveteria-estoque/internal/application/analytics"
	"github.com/jhoicas/sorveteria-estoque/internal/application/auth"
	"github.com/jhoicas/sorveteria-estoque/internal/application/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/application/orders"
	"github.com/jhoicas/sorveteria-estoque/internal/application/usecase"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	SupplierUC       *usecase.SupplierUseCase
	UserUC           *usecase.UserUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	ReportsUC        *analytics.ReportsUseCase
	OrderUC          *orders.OrderUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
	Location         *time.Location
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth: login público; el alta de operadores la hace un admin.
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authMW, adminOnly, authHandler.Register)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", authMW)

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment, deps.Location)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/low-stock", inventoryHandler.LowStock)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.History)
	invGroup.Get("/replenishment", inventoryHandler.GetReplenishmentList)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reports.Get("/purchases", reportHandler.Purchases)
	reports.Get("/price-drift", reportHandler.PriceDrift)
	reports.Get("/consumption", reportHandler.Consumption)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/export/:kind", reportHandler.Export)

	// Orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Replenishment)
	ordersGroup.Post("/draft/low-stock", orderHandler.DraftLowStock)
	ordersGroup.Post("/preview", orderHandler.Preview)
	ordersGroup.Post("/pdf/:supplierId", orderHandler.PurchaseOrderPDF)
}
