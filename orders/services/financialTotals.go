package services

import (
	"time"

	"sales-management-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// candidateOrder is a fully aggregated, hashed order awaiting the duplicate
// check. firstRowIndex and invoiceNumber are pipeline metadata and are never
// persisted as-is.
type candidateOrder struct {
	firstRowIndex int
	invoiceNumber string
	companyID     uuid.UUID
	branchID      *uuid.UUID
	area          string
	orderDate     time.Time
	items         []candidateItem

	subtotal      decimal.Decimal
	totalTax      decimal.Decimal
	grandTotal    decimal.Decimal
	status        models.OrderStatus
	paymentStatus models.PaymentStatus
	importHash    string
}

// itemTotals computes one line's pre-discount subtotal, tax and line total.
// Discounts apply before tax: tax is charged on the discounted net amount.
func itemTotals(item candidateItem) (subtotal, tax, total decimal.Decimal) {
	subtotal = item.price.Mul(item.quantity)

	discount := decimal.Zero
	if item.discountType != nil {
		switch *item.discountType {
		case models.PercentageDiscountType:
			discount = subtotal.Mul(item.discountValue).Div(oneHundred)
		case models.FixedDiscountType:
			discount = item.discountValue
		}
	}

	net := subtotal.Sub(discount)
	tax = net.Mul(item.taxRate).Div(oneHundred)
	total = net.Add(tax)
	return subtotal, tax, total
}

// finalizeGroup converts a mutable order group into an immutable candidate
// order: totals are accumulated across items with return lines subtracted,
// and the order status is derived from the net effect only after every item
// in the group has been summed.
func finalizeGroup(group *orderGroup) candidateOrder {
	candidate := candidateOrder{
		firstRowIndex: group.firstRowIndex,
		invoiceNumber: group.invoiceNumber,
		companyID:     group.company.ID,
		area:          group.area,
		orderDate:     group.orderDate,
		items:         group.items,
		subtotal:      decimal.Zero,
		totalTax:      decimal.Zero,
		grandTotal:    decimal.Zero,
	}
	if group.branch != nil {
		branchID := group.branch.ID
		candidate.branchID = &branchID
	}

	for _, item := range group.items {
		subtotal, tax, total := itemTotals(item)
		if item.isReturn {
			candidate.subtotal = candidate.subtotal.Sub(subtotal)
			candidate.totalTax = candidate.totalTax.Sub(tax)
			candidate.grandTotal = candidate.grandTotal.Sub(total)
		} else {
			candidate.subtotal = candidate.subtotal.Add(subtotal)
			candidate.totalTax = candidate.totalTax.Add(tax)
			candidate.grandTotal = candidate.grandTotal.Add(total)
		}
	}

	if candidate.grandTotal.IsNegative() {
		candidate.status = models.CancelledOrderStatus
		candidate.paymentStatus = models.PendingPaymentStatus
	} else {
		candidate.status = models.DeliveredOrderStatus
		candidate.paymentStatus = models.PaidPaymentStatus
	}

	candidate.importHash = computeImportHash(&candidate)
	return candidate
}

// toOrder materializes the persisted form of a candidate. The pipeline
// metadata (source row index, extracted invoice number) stays behind.
func (c *candidateOrder) toOrder(createdBy string) models.Order {
	orderID := uuid.New()
	order := models.Order{
		ID:            orderID,
		CompanyID:     c.companyID,
		BranchID:      c.branchID,
		Area:          c.area,
		OrderDate:     c.orderDate,
		Subtotal:      c.subtotal,
		TotalTax:      c.totalTax,
		GrandTotal:    c.grandTotal,
		Total:         c.grandTotal,
		ImportHash:    c.importHash,
		Status:        c.status,
		PaymentStatus: c.paymentStatus,
		AddedVia:      models.BulkAddedViaType,
		CreatedBy:     createdBy,
	}
	for _, item := range c.items {
		_, _, lineTotal := itemTotals(item)
		order.Items = append(order.Items, models.OrderItem{
			ID:            uuid.New(),
			OrderID:       orderID,
			ProductID:     item.productID,
			Quantity:      item.quantity,
			Price:         item.price,
			TaxRate:       item.taxRate,
			DiscountType:  item.discountType,
			DiscountValue: item.discountValue,
			IsReturn:      item.isReturn,
			LineTotal:     lineTotal,
		})
	}
	return order
}
