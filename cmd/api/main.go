package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/felixotieno/haraka-api/internal/application/service"
	"github.com/felixotieno/haraka-api/internal/config"
	"github.com/felixotieno/haraka-api/internal/infrastructure/database"
	"github.com/felixotieno/haraka-api/internal/infrastructure/repository"
	"github.com/felixotieno/haraka-api/internal/presentation/http/handler"
	"github.com/felixotieno/haraka-api/internal/presentation/http/routes"
	"github.com/felixotieno/haraka-api/pkg/notify"
	"github.com/felixotieno/haraka-api/pkg/storage"
	"github.com/felixotieno/haraka-api/pkg/utils"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	if err := database.SeedDefaultData(db); err != nil {
		log.WithError(err).Warn("failed to seed default data")
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	blobStore, err := storage.NewLocalStore(cfg.Storage.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize blob storage")
	}

	notifier := notify.NewLogNotifier(log)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	driverService := service.NewDriverService(driverRepo, userRepo)
	restaurantService := service.NewRestaurantService(restaurantRepo, menuRepo, blobStore)
	ledgerService := service.NewLedgerService(ledgerRepo, driverRepo)
	settlementService := service.NewSettlementService(ledgerRepo, driverRepo, notifier, log, cfg.Settlement.MinPayout)
	reportService := service.NewReportService(summaryRepo)
	orderService := service.NewOrderService(
		orderRepo, orderItemRepo, menuRepo, restaurantRepo, driverRepo, ledgerRepo,
		notifier, log, cfg.Settlement.CommissionRate,
	)

	// Handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Ledger:     handler.NewLedgerHandler(ledgerService, settlementService, reportService, driverService),
		Driver:     handler.NewDriverHandler(driverService),
		Restaurant: handler.NewRestaurantHandler(restaurantService, cfg.Storage.UploadMaxSize),
		Order:      handler.NewOrderHandler(orderService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: idempotencyRepo,
	})

	log.WithFields(logrus.Fields{
		"port": cfg.App.Port,
		"env":  cfg.App.Env,
	}).Info("starting server")

	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
