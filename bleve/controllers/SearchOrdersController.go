package controllers

import (
	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) SearchOrdersController(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	status := ctx.Query("status")
	paymentStatus := ctx.Query("payment_status")
	addedVia := ctx.Query("added_via")
	area := ctx.Query("area")

	results, err := c.repo.SearchOrders(query, status, paymentStatus, addedVia, area)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	var matches []interface{}
	for _, hit := range results.Hits {
		matches = append(matches, hit.Fields)
	}

	return ctx.JSON(fiber.Map{
		"results": matches,
		"total":   results.Total,
	})
}
