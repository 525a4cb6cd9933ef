package routes

import (
	"sales-management-backend/orders/controllers"
	"sales-management-backend/orders/repositories"
	"sales-management-backend/orders/services"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func OrderRouterInit(
	app *fiber.App,
	db *gorm.DB,
	orderRepository repositories.OrderRepository,
	importService *services.ImportService,
	redisClient *redis.Client,
) {
	orderController := &controllers.OrderController{
		OrderRepo:     orderRepository,
		ImportService: importService,
		DB:            db,
		RedisClient:   redisClient,
	}

	orderRoutes := app.Group("/orders")
	orderRoutes.Post("/bulk-import", orderController.BulkImportOrders)
	orderRoutes.Get("/", orderController.GetFilteredOrders)
}
