package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/K-is-SAD/nebula-dapp/api"
	"github.com/K-is-SAD/nebula-dapp/config"
	"github.com/K-is-SAD/nebula-dapp/database"
	"github.com/K-is-SAD/nebula-dapp/middleware"
	"github.com/K-is-SAD/nebula-dapp/models"
	"github.com/K-is-SAD/nebula-dapp/repository"
	"github.com/K-is-SAD/nebula-dapp/services"

	"gorm.io/gorm"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize the ledger database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize ledger database: %v", err)
	}

	runMigrations(db)

	// Initialize repositories (the ledger collaborator)
	articleRepo := repository.NewArticleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize services
	publishingService := services.NewPublishingService(articleRepo)
	articleService := services.NewArticleService(articleRepo)
	paymentService := services.NewPaymentService(articleRepo, paymentRepo)
	earningsService := services.NewEarningsService(paymentRepo)
	accessService := services.NewAccessService(articleRepo, paymentRepo)
	log.Println("INFO: [Main] Services initialized.")

	apiHandler := api.NewAPIHandler(
		publishingService,
		accessService,
		paymentService,
		earningsService,
		articleService,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	registerRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running ledger migrations...")
	err := db.AutoMigrate(
		&models.Article{},
		&models.PaymentRecord{},
		&models.EarningsBalance{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate ledger schema: %v", err)
	}
	log.Println("INFO: [Main] Ledger migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	apiGroup := r.Group("/api")
	{
		// Publishing
		apiGroup.POST("/articles", handler.PublishArticleHandler)

		// Per-article access and payments
		articleGroup := apiGroup.Group("/articles/:author/:id")
		{
			articleGroup.GET("", handler.ResolveArticleHandler)
			articleGroup.GET("/paid", handler.HasPaidHandler)
			articleGroup.POST("/pay", handler.PayHandler)
		}

		// Author profile reads
		authorGroup := apiGroup.Group("/authors/:author")
		{
			authorGroup.GET("/articles", handler.ListArticlesHandler)
			authorGroup.GET("/count", handler.CountArticlesHandler)
			authorGroup.GET("/balance", handler.BalanceHandler)
		}

		// Earnings withdrawal for the authenticated caller
		apiGroup.POST("/earnings/withdraw", handler.WithdrawHandler)
	}
}
