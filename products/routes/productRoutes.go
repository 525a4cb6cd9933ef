package routes

import (
	"sales-management-backend/products/controllers"
	"sales-management-backend/products/repositories"

	"github.com/gofiber/fiber/v2"
)

func ProductRouterInit(
	app *fiber.App,
	productRepository repositories.ProductRepository,
) {
	productController := &controllers.ProductController{
		ProductRepo: productRepository,
	}

	productRoutes := app.Group("/products")
	productRoutes.Get("/", productController.GetFilteredProducts)
}
