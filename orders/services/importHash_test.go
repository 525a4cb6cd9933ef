package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestComputeImportHashDeterminism(t *testing.T) {
	companyID := uuid.New()
	productID := uuid.New()
	orderDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	base := func() candidateOrder {
		return candidateOrder{
			invoiceNumber: "INV-001",
			companyID:     companyID,
			orderDate:     orderDate,
			items: []candidateItem{
				{productID: productID, quantity: dec("5"), price: dec("10")},
				{productID: productID, quantity: dec("2"), price: dec("7.5")},
			},
		}
	}

	a, b := base(), base()
	if computeImportHash(&a) != computeImportHash(&b) {
		t.Fatal("identical candidates must hash identically")
	}

	// Intraday time differences don't change the fingerprint.
	c := base()
	c.orderDate = orderDate.Add(6 * time.Hour)
	if computeImportHash(&a) != computeImportHash(&c) {
		t.Error("same-day candidates should share a fingerprint")
	}

	mutations := []struct {
		name   string
		mutate func(*candidateOrder)
	}{
		{"invoice number", func(o *candidateOrder) { o.invoiceNumber = "INV-002" }},
		{"company", func(o *candidateOrder) { o.companyID = uuid.New() }},
		{"order date", func(o *candidateOrder) { o.orderDate = orderDate.AddDate(0, 0, 1) }},
		{"item quantity", func(o *candidateOrder) { o.items[0].quantity = dec("6") }},
		{"item price", func(o *candidateOrder) { o.items[1].price = dec("8") }},
		{"item product", func(o *candidateOrder) { o.items[0].productID = uuid.New() }},
		{"item order", func(o *candidateOrder) { o.items[0], o.items[1] = o.items[1], o.items[0] }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			mutated := base()
			tt.mutate(&mutated)
			if computeImportHash(&a) == computeImportHash(&mutated) {
				t.Errorf("changing the %s must change the hash", tt.name)
			}
		})
	}
}

func TestComputeImportHashIgnoresNonIdentityFields(t *testing.T) {
	companyID := uuid.New()
	productID := uuid.New()
	orderDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	a := candidateOrder{
		invoiceNumber: "INV-001",
		companyID:     companyID,
		orderDate:     orderDate,
		area:          "North",
		firstRowIndex: 3,
		items:         []candidateItem{{productID: productID, quantity: dec("1"), price: dec("10")}},
	}
	b := a
	b.area = "South"
	b.firstRowIndex = 17

	if computeImportHash(&a) != computeImportHash(&b) {
		t.Error("area and row index must not affect the fingerprint")
	}
}
