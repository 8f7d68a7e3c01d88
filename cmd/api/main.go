// @title        apimarket API
// @version      1.0
// @description  API de inventario y punto de venta.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/apimarket/docs"
	"github.com/jhoicas/apimarket/internal/application/auth"
	"github.com/jhoicas/apimarket/internal/application/dto"
	"github.com/jhoicas/apimarket/internal/application/inventory"
	"github.com/jhoicas/apimarket/internal/application/purchasing"
	"github.com/jhoicas/apimarket/internal/application/sales"
	"github.com/jhoicas/apimarket/internal/application/usecase"
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
	"github.com/jhoicas/apimarket/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/apimarket/internal/infrastructure/pdf"
	"github.com/jhoicas/apimarket/internal/infrastructure/postgres"
	"github.com/jhoicas/apimarket/internal/infrastructure/ws"
	httpRouter "github.com/jhoicas/apimarket/internal/interfaces/http"
	"github.com/jhoicas/apimarket/pkg/config"
	"github.com/jhoicas/apimarket/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage repositorios y runner de transacciones del almacenamiento elegido (STORE).
type storage struct {
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	sales      repository.SaleRepository
	orders     repository.PurchaseOrderRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	employees  repository.EmployeeRepository
	txRunner   inventory.TxRunner
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.App.Store == config.StoreMemory {
		st := memstore.New()
		return &storage{
			products:   st.Products(),
			movements:  st.Movements(),
			sales:      st.Sales(),
			orders:     st.PurchaseOrders(),
			categories: st.Categories(),
			suppliers:  st.Suppliers(),
			employees:  st.Employees(),
			txRunner:   memstore.NewTxRunner(st),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		products:   postgres.NewProductRepository(pool),
		movements:  postgres.NewStockMovementRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		orders:     postgres.NewPurchaseOrderRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		employees:  postgres.NewEmployeeRepository(pool),
		txRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer store.close()

	// Hub de stock en tiempo real: recibe los cambios confirmados de movimientos, ventas y compras.
	hub := ws.NewHub(256, log.Zerolog())
	go hub.Run(ctx)

	ledger := inventory.NewStockLedger()
	registerMovementUC := inventory.NewRegisterMovementUseCase(store.txRunner, ledger, store.products, store.movements, hub)
	closingReportUC := inventory.NewClosingReportUseCase(store.products)
	processSaleUC := sales.NewProcessSaleUseCase(store.txRunner, ledger, store.sales, hub)
	ticketUC := sales.NewTicketUseCase(store.sales, store.products, infrapdf.NewMarotoTicketGenerator(cfg.App.Name))
	purchaseOrderUC := purchasing.NewPurchaseOrderUseCase(store.txRunner, ledger, store.orders, store.suppliers, hub)
	productUC := usecase.NewProductUseCase(store.products, store.categories, store.suppliers)
	categoryUC := usecase.NewCategoryUseCase(store.categories)
	supplierUC := usecase.NewSupplierUseCase(store.suppliers)
	employeeUC := usecase.NewEmployeeUseCase(store.employees)
	authUC := auth.NewAuthUseCase(store.employees, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Bootstrap.Enabled() {
		_, err := authUC.RegisterEmployee(ctx, dto.CreateEmployeeRequest{
			Name:     cfg.Bootstrap.AdminName,
			Email:    cfg.Bootstrap.AdminEmail,
			Password: cfg.Bootstrap.AdminPassword,
			Role:     entity.RoleAdmin,
		})
		switch {
		case err == nil:
			log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("administrador inicial creado")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
		default:
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Documento OpenAPI registrado por swag (docs.go).
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})
	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "apimarket API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger UI deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		EmployeeUC:       employeeUC,
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		SupplierUC:       supplierUC,
		RegisterMovement: registerMovementUC,
		ClosingReport:    closingReportUC,
		ProcessSale:      processSaleUC,
		SaleTicket:       ticketUC,
		PurchaseOrderUC:  purchaseOrderUC,
		StockHub:         hub,
		JWTSecret:        cfg.JWT.Secret,
		ServiceName:      cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
