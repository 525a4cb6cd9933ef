package routes

import (
	"sales-management-backend/audit/controllers"
	"sales-management-backend/audit/repositories"

	"github.com/gofiber/fiber/v2"
)

func PriceAuditRouterInit(
	app *fiber.App,
	priceAuditRepository repositories.PriceAuditRepository,
) {
	priceAuditController := &controllers.PriceAuditController{
		PriceAuditRepo: priceAuditRepository,
	}

	auditRoutes := app.Group("/price-audits")
	auditRoutes.Get("/", priceAuditController.GetFilteredPriceAudits)
}
