package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	amqp "github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/validation"
	"storefront/pkg/imagestore"
	"storefront/pkg/logging"
	"storefront/pkg/rabbitmq"
)

var logger = logging.New(os.Stdout)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	err = db.AutoMigrate(
		&models.Account{},
		&models.Customer{},
		&models.Product{},
		&models.Review{},
		&models.CartItem{},
		&models.Like{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// --- Image store ---
	images, err := imagestore.NewStore(cfg.UploadDir, "/uploads/img/products")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize image store")
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
	} else {
		logger.Info().Msg("RABBITMQ_URL not set, catalog events disabled")
	}

	// --- Repositories ---
	accountRepo := repositories.NewGORMAccountRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	likeRepo := repositories.NewGORMLikeRepository(db)

	// --- Validation engine ---
	engine := validation.NewEngine(cfg.Limits, accountRepo, customerRepo)

	// --- Services ---
	identityService := services.NewIdentityService(accountRepo, customerRepo, engine, cfg.JWTSecret)
	catalogService := services.NewCatalogService(productRepo, reviewRepo, likeRepo, engine, images, mqClient)
	reviewService := services.NewReviewService(reviewRepo, engine)
	cartService := services.NewCartService(cartRepo, productRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(identityService)
	userHandler := handlers.NewUserHandler(identityService)
	productHandler := handlers.NewProductHandler(catalogService, identityService)
	reviewHandler := handlers.NewReviewHandler(reviewService, identityService)
	cartHandler := handlers.NewCartHandler(cartService, identityService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Static("/uploads/img/products", cfg.UploadDir)

	// Group middleware registers on creation, so the public routes must be
	// on the router before the authed group exists, and the plain authed
	// routes before the admin group exists.
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterPublicRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(identityService))
	userHandler.RegisterRoutes(authed)
	productHandler.RegisterCustomerRoutes(authed)
	reviewHandler.RegisterCustomerRoutes(authed)
	cartHandler.RegisterRoutes(authed)

	admin := authed.Group("", middleware.AdminRequired())
	userHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Catalog event consumer ---
	if mqClient != nil {
		err := mqClient.ConsumeCatalogEvents(func(msg amqp.Delivery) error {
			logger.Info().Str("body", string(msg.Body)).Msg("catalog event received")
			return nil
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to start catalog event consumer")
		}
	}

	// --- Start HTTP server with graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", cfg.AppPort).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logger.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
	logger.Info().Msg("server stopped")
}

// openDatabase connects to the configured store. SQLite is the default;
// Postgres is selected with DATABASE_DRIVER=postgres and a matching DSN.
func openDatabase(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
	}
}
