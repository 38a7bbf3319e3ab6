// @title        Sorveteria Estoque API
// @version      1.0
// @description  Libro de existencias, reposición y reportes de una heladería.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/sorveteria-estoque/docs"
	"github.com/jhoicas/sorveteria-estoque/internal/application/analytics"
	"github.com/jhoicas/sorveteria-estoque/internal/application/auth"
	"github.com/jhoicas/sorveteria-estoque/internal/application/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/application/orders"
	"github.com/jhoicas/sorveteria-estoque/internal/application/usecase"
	infracache "github.com/jhoicas/sorveteria-estoque/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/sorveteria-estoque/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/sorveteria-estoque/internal/interfaces/http"
	"github.com/jhoicas/sorveteria-estoque/pkg/config"
	"github.com/jhoicas/sorveteria-estoque/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de entidades")
	}
	defer store.close()

	// Caché de reportes: opcional. Las interfaces quedan en nil (sin tipo) si no hay Redis.
	var (
		reportCache analytics.ReportCache
		invalidator inventory.CacheInvalidator
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		c := infracache.NewRedisReportCache(rdb, cfg.Redis.ReportTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := c.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, reportes sin caché")
		} else {
			reportCache, invalidator = c, c
		}
		cancel()
	}

	loc := cfg.App.Location()

	productUC := usecase.NewProductUseCase(store.products, store.suppliers).WithCache(invalidator, log)
	supplierUC := usecase.NewSupplierUseCase(store.suppliers).WithCache(invalidator, log)
	userUC := usecase.NewUserUseCase(store.users)
	registerMovementUC := inventory.NewRegisterMovementUseCase(
		store.tx, store.products, store.suppliers, store.movements,
		invalidator, log,
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.products, store.suppliers, store.movements, loc)
	reportsUC := analytics.NewReportsUseCase(
		store.products, store.suppliers, store.movements,
		reportCache, loc, log,
	)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	orderUC := orders.NewOrderUseCase(store.products, store.suppliers, pdfGenerator, cfg.Messaging.CountryCode)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(log.FiberMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sorveteria Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		SupplierUC:       supplierUC,
		UserUC:           userUC,
		RegisterMovement: registerMovementUC,
		Replenishment:    replenishmentUC,
		ReportsUC:        reportsUC,
		OrderUC:          orderUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
		Location:         loc,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
