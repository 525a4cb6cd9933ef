package services

import (
	"sales-management-backend/db/models"

	"github.com/shopspring/decimal"
)

// SuggestedCompany is a ready-to-create payload attached to a missing-company
// error so the frontend can offer one-click remediation.
type SuggestedCompany struct {
	Name string  `json:"name"`
	Area *string `json:"area,omitempty"`
}

// SuggestedProduct is the product counterpart of SuggestedCompany.
type SuggestedProduct struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// RowError is one per-row diagnostic. Blocking errors (missing entities,
// infrastructure failures) prevent the affected row from becoming an order;
// non-blocking ones just drop or degrade the row.
type RowError struct {
	RowIndex         int                        `json:"row_index"`
	ErrorType        models.BulkImportErrorType `json:"error_type"`
	Message          string                     `json:"message"`
	Blocking         bool                       `json:"blocking"`
	SuggestedCompany *SuggestedCompany          `json:"suggested_company,omitempty"`
	SuggestedProduct *SuggestedProduct          `json:"suggested_product,omitempty"`
}

// DuplicateOrder records the provenance of a candidate skipped by the
// deduplicator, so "already imported" is distinguishable from "repeated in
// this file".
type DuplicateOrder struct {
	ImportHash    string `json:"import_hash"`
	InvoiceNumber string `json:"invoice_number"`
	RowIndex      int    `json:"row_index"`
	Provenance    string `json:"provenance"`
}

// ImportResult is the pipeline's sole externally observable output.
type ImportResult struct {
	Success          bool             `json:"success"`
	ImportedCount    int              `json:"imported_count"`
	SkippedCount     int              `json:"skipped_count"`
	ImportedTotal    decimal.Decimal  `json:"imported_total"`
	ImportedSubtotal decimal.Decimal  `json:"imported_subtotal"`
	Errors           []RowError       `json:"errors"`
	Duplicates       []DuplicateOrder `json:"duplicates"`
}

// errorCollector accumulates row diagnostics without interrupting the run.
type errorCollector struct {
	errors []RowError
}

func (c *errorCollector) add(err RowError) {
	c.errors = append(c.errors, err)
}

func (c *errorCollector) hasBlocking() bool {
	for _, err := range c.errors {
		if err.Blocking {
			return true
		}
	}
	return false
}
