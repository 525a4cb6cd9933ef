package controllers

import (
	"sales-management-backend/companies/repositories"
	"sales-management-backend/config"
	"sales-management-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CompanyController struct {
	CompanyRepo repositories.CompanyRepository
}

func (cc *CompanyController) GetFilteredCompanies(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	offset := (params.Page - 1) * params.PageSize

	companies, total, err := cc.CompanyRepo.GetFilteredCompanies(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered companies", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch filtered companies"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, companies, total, params))
}
