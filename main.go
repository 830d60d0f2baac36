package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lojagames/internal/handlers"
	"lojagames/internal/middleware"
	"lojagames/internal/models"
	"lojagames/internal/repositories"
	"lojagames/internal/services"
	"lojagames/pkg/rabbitmq"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	uploadDir := viper.GetString("UPLOAD_DIR")

	// The signing secret has no default. Refusing to start beats shipping a
	// literal everyone can read in the repo.
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("Failed to create upload directory")
	}

	// --- Initialize Repositories ---
	// With a DSN the store runs on Postgres; without one it falls back to
	// in-memory repositories with a seeded catalog, enough for the demo page.
	var (
		userRepo    repositories.UserRepository
		productRepo repositories.ProductRepository
		cartRepo    repositories.CartRepository
	)
	if databaseDSN != "" {
		db, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{TranslateError: true})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to database")
		}
		if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}); err != nil {
			logrus.WithError(err).Fatal("Failed to migrate database")
		}
		userRepo = repositories.NewGORMUserRepository(db)
		productRepo = repositories.NewGORMProductRepository(db)
		cartRepo = repositories.NewGORMCartRepository(db)
	} else {
		logrus.Warn("DATABASE_DSN not set, using in-memory repositories")
		userRepo = repositories.NewMemoryUserRepository()
		memProducts := repositories.NewMemoryProductRepository()
		seedProducts(memProducts)
		productRepo = memProducts
		cartRepo = repositories.NewMemoryCartRepository()
	}

	// --- Initialize RabbitMQ Client ---
	var publisher services.CartEventPublisher
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		logrus.Warn("RABBITMQ_URL not set, cart events will not be published")
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo, publisher)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, productService, uploadDir)
	cartHandler := handlers.NewCartHandler(cartService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	requireAuth := middleware.AuthRequired(authService)
	authHandler.RegisterRoutes(app, requireAuth)
	cartHandler.RegisterRoutes(app, requireAuth)

	// Store front end and uploaded avatars.
	app.Static("/", "./web/static")
	app.Static("/uploads", uploadDir)

	// --- Start RabbitMQ Consumer ---
	// Downstream cart processing lives here for now: the consumer just logs
	// cart.item_added events.
	if mqClient != nil {
		messageHandler := func(msg amqp.Delivery) error {
			logrus.WithField("body", string(msg.Body)).Info("Received cart event")
			return nil
		}
		if err := mqClient.ConsumeCartEvents(messageHandler); err != nil {
			logrus.WithError(err).Error("Failed to start RabbitMQ consumer")
		}
	}

	// --- Start HTTP Server ---
	logrus.WithField("port", appPort).Info("Starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			logrus.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-quit
	logrus.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Error("Error during Fiber shutdown")
	}
	logrus.Info("Server gracefully stopped")
}

// seedProducts populates the in-memory catalog with a few games so the
// product page has something to render.
func seedProducts(repo repositories.ProductRepository) {
	products := []models.Product{
		{ID: "prod-1", Name: "Eco da Fronteira", OldPrice: 249.90, Price: 199.90, Platform: "PC", ImageURL: "/img/eco-da-fronteira.jpg"},
		{ID: "prod-2", Name: "Reinos em Guerra", OldPrice: 299.90, Price: 149.90, Platform: "PlayStation 5", ImageURL: "/img/reinos-em-guerra.jpg"},
		{ID: "prod-3", Name: "Corrida Estelar", OldPrice: 199.90, Price: 99.90, Platform: "Xbox Series X", ImageURL: "/img/corrida-estelar.jpg"},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			logrus.WithError(err).WithField("product", products[i].Name).Error("Error seeding product")
		}
	}
}
