package routes

import (
	"sales-management-backend/companies/controllers"
	"sales-management-backend/companies/repositories"

	"github.com/gofiber/fiber/v2"
)

func CompanyRouterInit(
	app *fiber.App,
	companyRepository repositories.CompanyRepository,
) {
	companyController := &controllers.CompanyController{
		CompanyRepo: companyRepository,
	}

	companyRoutes := app.Group("/companies")
	companyRoutes.Get("/", companyController.GetFilteredCompanies)
}
