package utils

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"sales-management-backend/config"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reportDir = "./public/files"

// GenerateExcel writes a slice of structs into an xlsx file under public/files.
// Each header must match a struct field name; missing fields leave the cell
// blank. It returns the public path used to build the download URL.
func GenerateExcel(data interface{}, taskName string, headers []string) (string, error) {
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure directory exists: %v", err)
	}

	dataSlice := reflect.ValueOf(data)
	if dataSlice.Kind() != reflect.Slice {
		return "", fmt.Errorf("expected data to be a slice, got %v", dataSlice.Kind())
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	for row := 0; row < dataSlice.Len(); row++ {
		item := reflect.ValueOf(dataSlice.Index(row).Interface())
		if item.Kind() == reflect.Ptr {
			item = item.Elem()
		}

		for col, header := range headers {
			field := item.FieldByName(header)
			if !field.IsValid() {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheetName, cell, field.Interface()); err != nil {
				return "", fmt.Errorf("error setting value for field %s on row %d: %v", header, row+2, err)
			}
		}
	}

	f.SetActiveSheet(index)

	now := time.Now()
	fileName := fmt.Sprintf("%s_%s_%s_%d_%d_at_%s.xlsx",
		taskName, now.Weekday().String(), now.Month().String(), now.Day(), now.Year(),
		now.Format("3:04:05_PM"))

	publicPath := fmt.Sprintf("/public/files/%s", fileName)
	diskPath := fmt.Sprintf("%s/%s", reportDir, fileName)

	if err := f.SaveAs(diskPath); err != nil {
		config.Logger.Error("Failed to save Excel report",
			zap.String("path", diskPath),
			zap.Error(err))
		return "", err
	}

	return publicPath, nil
}
