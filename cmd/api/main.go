package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"barber-pos-api/internal/backup"
	"barber-pos-api/internal/config"
	"barber-pos-api/internal/handler"
	"barber-pos-api/internal/logger"
	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"
	"barber-pos-api/internal/service"
	"barber-pos-api/internal/ws"
	"barber-pos-api/pkg/database"
	"barber-pos-api/pkg/idgen"
	"barber-pos-api/pkg/jwt"

	"github.com/shopspring/decimal"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Env
	cfg := config.Load()

	// 2. Logger
	log := logger.New(cfg.LogLevel)
	jwt.Configure(cfg.JWTSecret)
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Database
	db, err := database.Connect(database.Options{
		Driver: cfg.DBDriver,
		DSN:    cfg.DSN(),
		Debug:  cfg.Env == "development",
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db, cfg.DBDriver, cfg.MigrationURL(), cfg.Migrations, log, model.All()...); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	// 4. Repositories and seed data
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	dataRepo := repository.NewDataRepo(db)

	seedAdmin(userRepo, log)
	if cfg.SeedDemo {
		seedDemo(db, categoryRepo, productRepo, log)
	}

	// 5. Setup WebSocket Hub
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	ids, err := idgen.NewSnowflake(cfg.SnowflakeNode)
	if err != nil {
		log.Fatal().Err(err).Int64("node", cfg.SnowflakeNode).Msg("invalid snowflake node")
	}
	store, err := backup.FromConfig(ctx, cfg.BackupBucket, cfg.BackupDir)
	if err != nil {
		log.Fatal().Err(err).Msg("backup store setup failed")
	}

	// 6. Dependency Injection (Wiring Layers)
	recorder := service.NewTransactionRecorder(db, ids, saleRepo, purchaseRepo, productRepo, employeeRepo, hub, log)
	txService := service.NewTransactionService(saleRepo, purchaseRepo, productRepo, employeeRepo)
	catalogService := service.NewCatalogService(db, categoryRepo, productRepo, hub)
	employeeService := service.NewEmployeeService(db, employeeRepo, productRepo, hub)
	reportService := service.NewReportService(saleRepo, purchaseRepo, productRepo, employeeRepo, cfg.Location())
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, log)
	dataService := service.NewDataService(db, dataRepo, ids, store, hub, log)

	app := newApp(cfg, log)
	registerRoutes(app, routes{
		userRepo:    userRepo,
		hub:         hub,
		auth:        handler.NewAuthHandler(authService, userService),
		users:       handler.NewUserHandler(userService),
		catalog:     handler.NewCatalogHandler(catalogService),
		employees:   handler.NewEmployeeHandler(employeeService),
		transaction: handler.NewTransactionHandler(recorder, txService),
		reports:     handler.NewReportHandler(reportService),
		utility:     handler.NewUtilityHandler(dataService),
	})

	// 7. Serve until signalled
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("db", database.MaskDSN(cfg.DSN())).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("Server exited")
}
