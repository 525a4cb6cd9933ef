package controllers

import (
	"sales-management-backend/audit/repositories"
	"sales-management-backend/config"
	"sales-management-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PriceAuditController struct {
	PriceAuditRepo repositories.PriceAuditRepository
}

func (ac *PriceAuditController) GetFilteredPriceAudits(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	offset := (params.Page - 1) * params.PageSize

	entries, total, err := ac.PriceAuditRepo.GetFilteredPriceAudits(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch price audit entries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch price audit entries"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, entries, total, params))
}
