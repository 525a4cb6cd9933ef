package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashItem pins the string rendering of every identity-defining item field so
// the digest stays stable across runs and decimal representations.
type hashItem struct {
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
}

type hashPayload struct {
	InvoiceNumber string     `json:"invoice_number"`
	CompanyID     string     `json:"company_id"`
	OrderDate     string     `json:"order_date"`
	Items         []hashItem `json:"items"`
}

// computeImportHash fingerprints a candidate order for deduplication: a
// SHA-256 hex digest over the canonical JSON of the invoice number, company,
// order date and the ordered (productID, quantity, price) item tuples.
// Re-importing the same file always produces the same hashes.
func computeImportHash(candidate *candidateOrder) string {
	payload := hashPayload{
		InvoiceNumber: candidate.invoiceNumber,
		CompanyID:     candidate.companyID.String(),
		OrderDate:     candidate.orderDate.Format("2006-01-02"),
		Items:         make([]hashItem, 0, len(candidate.items)),
	}
	for _, item := range candidate.items {
		payload.Items = append(payload.Items, hashItem{
			ProductID: item.productID.String(),
			Quantity:  item.quantity.String(),
			Price:     item.price.String(),
		})
	}

	encoded, _ := json.Marshal(payload)
	digest := sha256.Sum256(encoded)
	return hex.EncodeToString(digest[:])
}
