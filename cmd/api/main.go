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

	"github.com/jhoicas/inventario-admin/internal/application/reconcile"
	"github.com/jhoicas/inventario-admin/internal/application/usecase"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
	"github.com/jhoicas/inventario-admin/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-admin/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/inventario-admin/internal/interfaces/http"
	"github.com/jhoicas/inventario-admin/pkg/config"
	"github.com/jhoicas/inventario-admin/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repos adaptadores de persistencia según STORAGE_DRIVER.
type repos struct {
	users       repository.UserRepository
	areas       repository.AreaRepository
	warehouses  repository.WarehouseRepository
	assignments repository.AssignmentRepository
	history     repository.AssignmentHistoryRepository
	enablement  repository.EnablementHistoryRepository
	tx          usecase.TxRunner
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer r.close()

	reconciler := reconcile.NewReconciler(r.assignments, log, reconcile.WithMaxConcurrency(cfg.Reconcile.MaxConcurrency))
	recorder := reconcile.NewRecorder(r.history, r.enablement, log)

	userUC := usecase.NewUserUseCase(r.users, r.areas, r.warehouses, r.assignments,
		r.history, r.enablement, r.tx, reconciler, recorder, log)
	areaUC := usecase.NewAreaUseCase(r.areas, r.warehouses, r.assignments, reconciler)
	warehouseUC := usecase.NewWarehouseUseCase(r.warehouses)
	assignmentUC := usecase.NewAssignmentUseCase(r.assignments, recorder, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Admin API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:       userUC,
		AreaUC:       areaUC,
		WarehouseUC:  warehouseUC,
		AssignmentUC: assignmentUC,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
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

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		if cfg.Storage.SeedFile != "" {
			if err := loadSeed(ctx, cfg.Storage, store); err != nil {
				return nil, err
			}
			log.Info().Str("file", cfg.Storage.SeedFile).Str("tenant_id", cfg.Storage.SeedTenant).Msg("datos iniciales cargados")
		}
		return &repos{
			users:       store.Users,
			areas:       store.Areas,
			warehouses:  store.Warehouses,
			assignments: store.Assignments,
			history:     store.AssignmentHistory,
			enablement:  store.EnablementHistory,
			tx:          store.Tx,
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &repos{
		users:       postgres.NewUserRepository(pool),
		areas:       postgres.NewAreaRepository(pool),
		warehouses:  postgres.NewWarehouseRepository(pool),
		assignments: postgres.NewAssignmentRepository(pool),
		history:     postgres.NewAssignmentHistoryRepository(pool),
		enablement:  postgres.NewEnablementHistoryRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		close:       pool.Close,
	}, nil
}

func loadSeed(ctx context.Context, sc config.StorageConfig, store *memory.Store) error {
	f, err := os.Open(sc.SeedFile)
	if err != nil {
		return err
	}
	defer f.Close()
	d, err := seed.Parse(f, seed.Options{TenantID: sc.SeedTenant, Latin1: sc.SeedLatin1})
	if err != nil {
		return err
	}
	return d.Load(ctx, store)
}
