package controllers

import (
	"context"
	"strings"
	"time"

	"sales-management-backend/config"
	"sales-management-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// orderExportRow is the flattened order shape written into downloadable
// reports. Field names must match the report headers.
type orderExportRow struct {
	OrderDate     string
	CompanyID     string
	Area          string
	Subtotal      string
	TotalTax      string
	GrandTotal    string
	Status        string
	PaymentStatus string
	AddedVia      string
	CreatedBy     string
}

var orderExportHeaders = []string{
	"OrderDate", "CompanyID", "Area", "Subtotal", "TotalTax", "GrandTotal",
	"Status", "PaymentStatus", "AddedVia", "CreatedBy",
}

func (oc *OrderController) GetFilteredOrders(c *fiber.Ctx) error {
	pageSize := c.QueryInt("page_size", 10)
	if pageSize <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid page_size parameter"})
	}

	page := c.QueryInt("page", 1)
	if page <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid page parameter"})
	}

	cleanQueryParam := func(param string) string {
		param = strings.TrimSpace(param)
		if param == "" || strings.ToLower(param) == "null" {
			return ""
		}
		return param
	}

	filters := make(map[string]string)
	for _, key := range []string{"status", "payment_status", "company_id", "added_via", "area", "start_date", "end_date", "created_by"} {
		if value := cleanQueryParam(c.Query(key)); value != "" {
			filters[key] = value
		}
	}

	offset := (page - 1) * pageSize

	orders, total, err := oc.OrderRepo.GetFilteredOrders(pageSize, offset, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered orders", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch filtered orders"})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	response := fiber.Map{
		"data": orders,
		"meta": fiber.Map{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	}

	// Optional spreadsheet export of the current filter set
	if c.QueryBool("download", false) {
		link, err := oc.exportFilteredOrders(c, filters, page, pageSize)
		if err != nil {
			config.Logger.Error("Failed to export filtered orders", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export filtered orders"})
		}
		response["download_link"] = link
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// exportFilteredOrders produces an xlsx of every order matching the filters,
// reusing a cached report for the same filter set when one exists.
func (oc *OrderController) exportFilteredOrders(c *fiber.Ctx, filters map[string]string, page, pageSize int) (string, error) {
	searchKey, storageKey := utils.GenerateHash("orders", filters, page, pageSize)

	if cached, err := utils.FindMatchingFile(oc.RedisClient, strings.TrimPrefix(searchKey, "orders:")); err == nil {
		return utils.GetDownloadURL(c, cached), nil
	} else if err != redis.Nil {
		config.Logger.Warn("Report cache lookup failed", zap.Error(err))
	}

	orders, _, err := oc.OrderRepo.GetFilteredOrders(0, 0, filters)
	if err != nil {
		return "", err
	}

	exportRows := make([]orderExportRow, 0, len(orders))
	for _, order := range orders {
		exportRows = append(exportRows, orderExportRow{
			OrderDate:     order.OrderDate.Format("2006-01-02"),
			CompanyID:     order.CompanyID.String(),
			Area:          order.Area,
			Subtotal:      order.Subtotal.StringFixed(2),
			TotalTax:      order.TotalTax.StringFixed(2),
			GrandTotal:    order.GrandTotal.StringFixed(2),
			Status:        string(order.Status),
			PaymentStatus: string(order.PaymentStatus),
			AddedVia:      string(order.AddedVia),
			CreatedBy:     order.CreatedBy,
		})
	}

	filePath, err := utils.GenerateExcel(exportRows, "orders_report", orderExportHeaders)
	if err != nil {
		return "", err
	}

	if err := oc.RedisClient.Set(context.Background(), storageKey, filePath, 24*time.Hour).Err(); err != nil {
		config.Logger.Warn("Failed to cache report path", zap.Error(err))
	}

	return utils.GetDownloadURL(c, filePath), nil
}
