package controllers

import (
	"fmt"
	"os"
	"time"

	"sales-management-backend/config"
	"sales-management-backend/db/models"
	"sales-management-backend/orders/services"
	"sales-management-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// OrderErrorDetails is the flattened row shape written into the error-report
// spreadsheet. Field names must match the report headers.
type OrderErrorDetails struct {
	RowNumber   int
	CompanyName string
	ProductName string
	Reason      string
	ErrorType   string
	Blocking    string
	AddedVia    string
	CreatedBy   string
}

var errorReportHeaders = []string{
	"RowNumber", "CompanyName", "ProductName", "Reason", "ErrorType", "Blocking", "AddedVia", "CreatedBy",
}

// BulkImportOrders handles the bulk import of orders via an Excel file.
func (oc *OrderController) BulkImportOrders(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to get file"})
	}
	if err := os.MkdirAll("./tmp", 0755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to prepare upload directory"})
	}
	tempFilePath := fmt.Sprintf("./tmp/%s", file.Filename)
	if err := c.SaveFile(file, tempFilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save file"})
	}
	defer os.Remove(tempFilePath)

	userEmail := c.FormValue("created_by")
	if userEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing 'created_by' field in FormData"})
	}

	f, err := excelize.OpenFile(tempFilePath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to open Excel file"})
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	sheetRows, err := f.GetRows(sheetName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to read rows from Excel sheet"})
	}
	if len(sheetRows) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "File has no data rows"})
	}

	headers := sheetRows[0]
	rows := make([]services.Row, 0, len(sheetRows)-1)
	for _, values := range sheetRows[1:] {
		rows = append(rows, services.NewRow(headers, values))
	}

	result := oc.ImportService.RunImport(services.OrderImportEntityType, rows, nil, nil, userEmail)

	var downloadLink string
	if len(result.Errors) > 0 || len(result.Duplicates) > 0 {
		downloadLink = oc.generateErrorReport(c, result, userEmail)
	}

	if result.ImportedCount > 0 {
		// Dump cached order reports, they no longer reflect the table
		utils.InvalidateCacheAsync(oc.RedisClient, "orders")
	}

	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusUnprocessableEntity
	}

	return c.Status(status).JSON(fiber.Map{
		"success":           result.Success,
		"imported_count":    result.ImportedCount,
		"skipped_count":     result.SkippedCount,
		"imported_total":    result.ImportedTotal,
		"imported_subtotal": result.ImportedSubtotal,
		"errors":            result.Errors,
		"duplicates":        result.Duplicates,
		"download_link":     downloadLink,
	})
}

// generateErrorReport writes the import diagnostics to an xlsx, mails it to
// the uploader and records the email. Failures here never fail the import.
func (oc *OrderController) generateErrorReport(c *fiber.Ctx, result *services.ImportResult, userEmail string) string {
	details := make([]OrderErrorDetails, 0, len(result.Errors)+len(result.Duplicates))
	for _, rowErr := range result.Errors {
		detail := OrderErrorDetails{
			RowNumber: rowErr.RowIndex + 1,
			Reason:    rowErr.Message,
			ErrorType: string(rowErr.ErrorType),
			Blocking:  fmt.Sprintf("%t", rowErr.Blocking),
			AddedVia:  string(models.BulkAddedViaType),
			CreatedBy: userEmail,
		}
		if rowErr.SuggestedCompany != nil {
			detail.CompanyName = rowErr.SuggestedCompany.Name
		}
		if rowErr.SuggestedProduct != nil {
			detail.ProductName = rowErr.SuggestedProduct.Name
		}
		details = append(details, detail)
	}
	for _, dup := range result.Duplicates {
		details = append(details, OrderErrorDetails{
			RowNumber: dup.RowIndex + 1,
			Reason:    fmt.Sprintf("Duplicate order (%s), invoice %s", dup.Provenance, dup.InvoiceNumber),
			ErrorType: string(models.DuplicateErrorType),
			Blocking:  "false",
			AddedVia:  string(models.BulkAddedViaType),
			CreatedBy: userEmail,
		})
	}

	filePath, err := utils.GenerateExcel(details, "order_import_errors", errorReportHeaders)
	if err != nil {
		config.Logger.Warn("Failed to generate error report Excel", zap.Error(err))
		return ""
	}

	downloadLink := utils.GetDownloadURL(c, filePath)
	message := fmt.Sprintf("Your order import finished with %d skipped rows. The attached report lists every row that could not be imported.\n%s",
		result.SkippedCount+len(result.Errors), downloadLink)
	subject := "Order Import Errors - " + time.Now().Format("2006-01-02 15:04:05")

	if err := utils.SendEmail(userEmail, message, subject, ""); err != nil {
		config.Logger.Warn("Failed to send error report email", zap.Error(err))
		return downloadLink
	}

	active := true
	emailLog := models.EmailLog{
		ID:             uuid.New(),
		Recipient:      userEmail,
		Subject:        subject,
		Message:        message,
		SentAt:         utils.Today(),
		Active:         &active,
		AttachmentPath: downloadLink,
	}
	if err := oc.OrderRepo.LogEmailSent(&emailLog); err != nil {
		config.Logger.Warn("Failed to log email", zap.Error(err))
	}

	return downloadLink
}
