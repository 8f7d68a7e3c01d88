package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/apimarket/internal/application/auth"
	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/application/purchasing"
	"github.com/jhoicas/apimarket/internal/application/sales"
	"github.com/jhoicas/apimarket/internal/application/usecase"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/infrastructure/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ClosingReport    *inventory.ClosingReportUseCase
	ProcessSale      *sales.ProcessSaleUseCase
	SaleTicket       *sales.TicketUseCase
	PurchaseOrderUC  *purchasing.PurchaseOrderUseCase
	StockHub         *ws.Hub // nil desactiva /ws/stock
	JWTSecret        string
	ServiceName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.EmployeeUC)
	app.Post("/auth/login", authHandler.Login)

	// Stock en tiempo real. El token va en ?token= o en Authorization antes del upgrade.
	if deps.StockHub != nil {
		app.Get("/ws/stock", wsTokenFromQuery, AuthMiddleware(deps.JWTSecret), wsUpgradeRequired, stockFeed(deps.StockHub))
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)
	stockKeepers := RequireRole(entity.RoleAdmin, entity.RoleBodega)

	// Empleados
	protected.Get("/empleados", authHandler.ListEmployees)
	protected.Post("/empleados", admin, authHandler.CreateEmployee)

	// Productos
	productHandler := NewProductHandler(deps.ProductUC, deps.RegisterMovement)
	protected.Get("/productos", productHandler.List)
	protected.Post("/productos", productHandler.Create)
	protected.Get("/productos/:id", productHandler.GetByID)
	protected.Put("/productos/:id", productHandler.Update)
	protected.Delete("/productos/:id", admin, productHandler.Delete)
	protected.Get("/productos/:id/movimientos", productHandler.ListMovements)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.SupplierUC)
	protected.Get("/categorias", catalogHandler.ListCategories)
	protected.Post("/categorias", catalogHandler.CreateCategory)
	protected.Get("/proveedores", catalogHandler.ListSuppliers)
	protected.Post("/proveedores", catalogHandler.CreateSupplier)

	// Movimientos y cierre
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.ClosingReport)
	protected.Post("/movimientos", inventoryHandler.RegisterMovement)
	protected.Get("/movimientos/:id", inventoryHandler.GetMovement)
	protected.Get("/cierre-inventario", inventoryHandler.ClosingReport)

	// Ventas
	saleHandler := NewSaleHandler(deps.ProcessSale, deps.SaleTicket)
	protected.Post("/ventas", saleHandler.Create)
	protected.Get("/ventas/:id", saleHandler.GetByID)
	protected.Get("/ventas/:id/ticket", saleHandler.Ticket)

	// Órdenes de compra
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	protected.Post("/ordenes-compra", stockKeepers, poHandler.Create)
	protected.Get("/ordenes-compra/:id", poHandler.GetByID)
	protected.Post("/ordenes-compra/:id/recibir", stockKeepers, poHandler.Receive)
}
