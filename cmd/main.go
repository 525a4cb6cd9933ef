package main

import (
	"context"

	"sales-management-backend/config"
	seed "sales-management-backend/db"
	"sales-management-backend/middleware"
	"sales-management-backend/utils"

	// Repositories
	audit_repositories "sales-management-backend/audit/repositories"
	companies_repositories "sales-management-backend/companies/repositories"
	orders_repositories "sales-management-backend/orders/repositories"
	products_repositories "sales-management-backend/products/repositories"

	// Services
	orders_services "sales-management-backend/orders/services"

	// Routes
	audit_routes "sales-management-backend/audit/routes"
	company_routes "sales-management-backend/companies/routes"
	order_routes "sales-management-backend/orders/routes"
	product_routes "sales-management-backend/products/routes"

	// Bleve
	bleveControllers "sales-management-backend/bleve/controllers"
	bleveRepositories "sales-management-backend/bleve/repositories"
	bleveRoutes "sales-management-backend/bleve/routes"
	bleveServices "sales-management-backend/bleve/services"

	"sales-management-backend/internal/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on system environment", zap.Error(err))
	}

	app := fiber.New()

	middleware.InitCors(app)

	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisAddr := config.GetEnv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default for development
		config.Logger.Warn("REDIS_ADDRESS not set, using default: localhost:6379")
	}

	redisClient := config.InitRedisServer(ctx)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.GetEnv("REDIS_PASSWORD"),
		DB:       0,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	indexPath := config.GetEnv("BLEVE_INDEX_PATH")
	if indexPath == "" {
		indexPath = "./bleve_data" // Default for local development
		config.Logger.Warn("BLEVE_INDEX_PATH not set, using default: ./bleve_data")
	}

	// Initialize the mailer
	utils.InitializeMailer()
	if utils.GetMailer() == nil {
		config.Logger.Fatal("Mailer not initialized")
	}

	// Date location
	if err := utils.InitializeDateLocation(); err != nil {
		config.Logger.Fatal("Failed to initialize date location", zap.Error(err))
	}

	// Serve static files
	app.Static("/public", "./public")

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	bleveServiceRepo, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)
	orderRepo := orders_repositories.NewOrderRepository(db)
	companyRepo := companies_repositories.NewCompanyRepository(db)
	productRepo := products_repositories.NewProductRepository(db)
	priceAuditRepo := audit_repositories.NewPriceAuditRepository(db)

	// Audit trail worker. Price audit entries are enqueued by the import
	// pipeline and written to Postgres from a background queue.
	auditEnqueuer := tasks.NewPriceAuditEnqueuer(asynqClient)

	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			tasks.AuditQueue: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypePriceAuditLog, tasks.NewPriceAuditHandler(priceAuditRepo, config.Logger))
	go func() {
		if err := asynqServer.Run(mux); err != nil {
			config.Logger.Fatal("Asynq server failed", zap.Error(err))
		}
	}()

	// Services
	importService := orders_services.NewImportService(
		companyRepo,
		productRepo,
		orderRepo,
		auditEnqueuer,
		bleveInterfaceRepo,
		config.Logger,
	)

	// Routes
	order_routes.OrderRouterInit(app, db, orderRepo, importService, redisClient)
	company_routes.CompanyRouterInit(app, companyRepo)
	product_routes.ProductRouterInit(app, productRepo)
	audit_routes.PriceAuditRouterInit(app, priceAuditRepo)

	// Bleve Routes
	bleveController := bleveControllers.NewSearchController(bleveServiceRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController)

	// Rebuild the search index from Postgres so search survives index loss
	go func() {
		orders, _, err := orderRepo.GetFilteredOrders(0, 0, nil)
		if err != nil {
			config.Logger.Error("Loading orders for search reindex failed", zap.Error(err))
			return
		}
		if err := bleveInterfaceRepo.IndexExistingOrders(orders); err != nil {
			config.Logger.Error("Startup search reindex failed", zap.Error(err))
		}
	}()

	// Background cleanup tasks
	go utils.RunScheduledCleanup(redisClient)

	// Seed demo data in development environments
	if config.GetEnv("SEED_DEMO_DATA") == "true" {
		if err := seed.SeedInitialData(db, "system@localhost"); err != nil {
			config.Logger.Error("Database seeding failed", zap.Error(err))
		}
	}

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
