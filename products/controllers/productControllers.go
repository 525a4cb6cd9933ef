package controllers

import (
	"sales-management-backend/config"
	"sales-management-backend/products/repositories"
	"sales-management-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProductController struct {
	ProductRepo repositories.ProductRepository
}

func (pc *ProductController) GetFilteredProducts(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	offset := (params.Page - 1) * params.PageSize

	products, total, err := pc.ProductRepo.GetFilteredProducts(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered products", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch filtered products"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, products, total, params))
}
