package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"sales-management-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeCompanySource struct {
	companies []models.Company
	err       error
}

func (f *fakeCompanySource) ListActiveCompanies() ([]models.Company, error) {
	return f.companies, f.err
}

type fakeProductSource struct {
	products []models.Product
	err      error
}

func (f *fakeProductSource) ListActiveProducts() ([]models.Product, error) {
	return f.products, f.err
}

type fakeOrderStore struct {
	stored       []models.Order
	diagnostics  []models.BulkImportErrorOrders
	insertErr    error
	lookupErr    error
	insertCalls  int
	lookupChunks [][]string
}

func (f *fakeOrderStore) FindOrdersByImportHashes(hashes []string) ([]models.Order, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	f.lookupChunks = append(f.lookupChunks, hashes)
	wanted := make(map[string]struct{}, len(hashes))
	for _, hash := range hashes {
		wanted[hash] = struct{}{}
	}
	var found []models.Order
	for _, order := range f.stored {
		if _, ok := wanted[order.ImportHash]; ok {
			found = append(found, order)
		}
	}
	return found, nil
}

func (f *fakeOrderStore) BulkCreateOrders(orders []models.Order) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.stored = append(f.stored, orders...)
	return nil
}

func (f *fakeOrderStore) LogBulkImportErrors(rows []models.BulkImportErrorOrders) error {
	f.diagnostics = append(f.diagnostics, rows...)
	return nil
}

type fakeAuditSink struct {
	batches [][]models.PriceAuditLog
	err     error
}

func (f *fakeAuditSink) LogPriceAuditBatch(entries []models.PriceAuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, entries)
	return nil
}

var importRowHeaders = []string{"Invoice No", "Customer Name", "Product", "Sales QTY", "Unit Price", "Order Date"}

func importRow(invoice, customer, product, qty, price, date string) Row {
	return NewRow(importRowHeaders, []string{invoice, customer, product, qty, price, date})
}

func testFixtures() ([]models.Company, []models.Product) {
	parent := models.Company{ID: uuid.New(), Name: "Acme"}
	branch := models.Company{ID: uuid.New(), Name: "Acme Downtown", IsBranch: true, ParentCompanyID: &parent.ID}
	widget := models.Product{ID: uuid.New(), Name: "Widget", Price: dec("10")}
	return []models.Company{parent, branch}, []models.Product{widget}
}

func newTestService(store *fakeOrderStore, companies []models.Company, products []models.Product, audit AuditSink) *ImportService {
	return NewImportService(
		&fakeCompanySource{companies: companies},
		&fakeProductSource{products: products},
		store,
		audit,
		nil,
		zap.NewNop(),
	)
}

func TestRunImportRejectsUnknownEntityType(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	result := service.RunImport("payments", []Row{importRow("INV-1", "Acme", "Widget", "1", "10", "2024-03-15")}, nil, nil, "ops@example.com")

	if result.Success {
		t.Error("expected failure for unsupported entity type")
	}
	if len(result.Errors) != 1 || !result.Errors[0].Blocking {
		t.Fatalf("errors = %+v, want exactly one blocking error", result.Errors)
	}
	if store.insertCalls != 0 {
		t.Error("no inserts should happen when the entity type is rejected")
	}
}

func TestRunImportSaleAndReturnSameInvoice(t *testing.T) {
	store := &fakeOrderStore{}
	audit := &fakeAuditSink{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, audit)

	rows := []Row{
		importRow("INV-1", "Acme", "Widget", "5", "10,00", "2024-03-15"),
		importRow("INV-1", "Acme", "Widget", "-2", "10,00", "2024-03-15"),
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.ImportedCount != 1 || result.SkippedCount != 0 {
		t.Fatalf("imported %d, skipped %d, want 1 and 0", result.ImportedCount, result.SkippedCount)
	}
	if len(store.stored) != 1 {
		t.Fatalf("stored %d orders, want 1", len(store.stored))
	}

	order := store.stored[0]
	if len(order.Items) != 2 {
		t.Fatalf("order has %d items, want 2", len(order.Items))
	}

	returned := order.Items[1]
	if !returned.IsReturn {
		t.Error("second item should be flagged as a return")
	}
	if !returned.Quantity.Equal(dec("2")) {
		t.Errorf("return quantity = %s, want positive 2", returned.Quantity)
	}

	if !order.Subtotal.Equal(dec("30")) {
		t.Errorf("subtotal = %s, want 30 (50 - 20)", order.Subtotal)
	}
	if !order.GrandTotal.Equal(dec("30")) {
		t.Errorf("grand total = %s, want 30", order.GrandTotal)
	}
	if order.Status != models.DeliveredOrderStatus || order.PaymentStatus != models.PaidPaymentStatus {
		t.Errorf("status = %s/%s, want DELIVERED/PAID for a net-positive order", order.Status, order.PaymentStatus)
	}

	if len(audit.batches) != 1 || len(audit.batches[0]) != 2 {
		t.Errorf("audit batches = %v, want one batch with two entries", audit.batches)
	}
}

func TestRunImportGrouping(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	rows := []Row{
		importRow("INV-A", "Acme", "Widget", "1", "10", "2024-03-15"),
		importRow("INV-A", "Acme", "Widget", "2", "10", "2024-03-15"),
		importRow("INV-B", "Acme", "Widget", "1", "10", "2024-03-15"),
		importRow("", "Acme", "Widget", "3", "10", "2024-03-15"),
		importRow("", "Acme", "Widget", "4", "10", "2024-03-15"),
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if result.ImportedCount != 4 {
		t.Fatalf("imported %d orders, want 4 (merged invoice, separate invoice, two singletons)", result.ImportedCount)
	}
	if len(store.stored[0].Items) != 2 {
		t.Errorf("first order has %d items, want the two INV-A rows merged", len(store.stored[0].Items))
	}
	for i, order := range store.stored[1:] {
		if len(order.Items) != 1 {
			t.Errorf("order %d has %d items, want 1", i+1, len(order.Items))
		}
	}
}

func TestRunImportIdempotentReimport(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	rows := []Row{
		importRow("INV-1", "Acme", "Widget", "5", "10", "2024-03-15"),
		importRow("INV-2", "Acme", "Widget", "3", "10", "2024-03-15"),
	}

	first := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")
	if !first.Success || first.ImportedCount != 2 || first.SkippedCount != 0 {
		t.Fatalf("first run = %+v, want 2 imported and 0 skipped", first)
	}

	second := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")
	if second.ImportedCount != 0 || second.SkippedCount != 2 {
		t.Fatalf("second run imported %d, skipped %d, want 0 and 2", second.ImportedCount, second.SkippedCount)
	}
	if second.Success {
		t.Error("an all-duplicate run must report failure: nothing new happened")
	}
	for _, duplicate := range second.Duplicates {
		if duplicate.Provenance != "existing order" {
			t.Errorf("provenance = %q, want \"existing order\"", duplicate.Provenance)
		}
	}
	if len(store.stored) != 2 {
		t.Errorf("store holds %d orders after reimport, want still 2", len(store.stored))
	}
}

func TestRunImportDuplicateWithinFile(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	// No invoice number: each row is its own candidate, but identical content
	// produces identical fingerprints, so the first occurrence wins.
	rows := []Row{
		importRow("", "Acme", "Widget", "5", "10", "2024-03-15"),
		importRow("", "Acme", "Widget", "5", "10", "2024-03-15"),
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if result.ImportedCount != 1 || result.SkippedCount != 1 {
		t.Fatalf("imported %d, skipped %d, want 1 and 1", result.ImportedCount, result.SkippedCount)
	}
	if len(result.Duplicates) != 1 || !strings.Contains(result.Duplicates[0].Provenance, "row 1 in this file") {
		t.Errorf("duplicates = %+v, want in-file provenance pointing at row 1", result.Duplicates)
	}
}

func TestRunImportMissingEntities(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	rows := []Row{
		importRow("INV-1", "Globex", "Widget", "1", "10", "2024-03-15"),
		importRow("INV-2", "Acme", "Gadget", "1", "25,50", "2024-03-15"),
		importRow("INV-3", "Acme", "Widget", "1", "10", "2024-03-15"),
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if result.Success {
		t.Error("blocking missing-entity errors must fail the import")
	}
	if result.ImportedCount != 1 {
		t.Errorf("imported %d, want the remaining valid row to import", result.ImportedCount)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %+v, want 2", result.Errors)
	}

	companyErr := result.Errors[0]
	if companyErr.ErrorType != models.MissingEntityErrorType || !companyErr.Blocking {
		t.Errorf("company error = %+v, want blocking missing-entity", companyErr)
	}
	if companyErr.SuggestedCompany == nil || companyErr.SuggestedCompany.Name != "Globex" {
		t.Errorf("suggested company = %+v, want a Globex creation payload", companyErr.SuggestedCompany)
	}

	productErr := result.Errors[1]
	if productErr.SuggestedProduct == nil || productErr.SuggestedProduct.Name != "Gadget" {
		t.Fatalf("suggested product = %+v, want a Gadget creation payload", productErr.SuggestedProduct)
	}
	if !productErr.SuggestedProduct.Price.Equal(dec("25.5")) {
		t.Errorf("suggested product price = %s, want the row's parsed price 25.5", productErr.SuggestedProduct.Price)
	}

	if len(store.diagnostics) != 2 {
		t.Errorf("persisted %d diagnostics, want 2", len(store.diagnostics))
	}
}

func TestRunImportInvalidQuantityDropsRowOnly(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	rows := []Row{
		importRow("INV-1", "Acme", "Widget", "n/a", "10", "2024-03-15"),
		importRow("INV-2", "Acme", "Widget", "2", "10", "2024-03-15"),
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if !result.Success {
		t.Error("invalid numeric data is non-blocking; the import should still succeed")
	}
	if result.ImportedCount != 1 {
		t.Errorf("imported %d, want 1", result.ImportedCount)
	}
	if len(result.Errors) != 1 || result.Errors[0].Blocking || result.Errors[0].ErrorType != models.InvalidDataErrorType {
		t.Errorf("errors = %+v, want one non-blocking invalid-data error", result.Errors)
	}
}

func TestRunImportEmptyRowsFiltered(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	rows := []Row{
		NewRow(importRowHeaders, []string{"", "", "", "", "", ""}),
		importRow("INV-1", "Acme", "Widget", "1", "10", "2024-03-15"),
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if len(result.Errors) != 0 {
		t.Errorf("errors = %+v, want empty rows silently skipped", result.Errors)
	}
	if result.ImportedCount != 1 {
		t.Errorf("imported %d, want 1", result.ImportedCount)
	}
}

func TestRunImportCommitFailure(t *testing.T) {
	store := &fakeOrderStore{insertErr: errors.New("connection reset")}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	rows := []Row{importRow("INV-1", "Acme", "Widget", "1", "10", "2024-03-15")}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if result.Success || result.ImportedCount != 0 {
		t.Fatalf("result = %+v, want failed import with nothing counted", result)
	}
	found := false
	for _, rowErr := range result.Errors {
		if rowErr.ErrorType == models.InfrastructureErrorType && rowErr.Blocking {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %+v, want a blocking infrastructure error", result.Errors)
	}
}

func TestRunImportPrefetchFailure(t *testing.T) {
	store := &fakeOrderStore{}
	_, products := testFixtures()
	service := NewImportService(
		&fakeCompanySource{err: errors.New("timeout")},
		&fakeProductSource{products: products},
		store,
		nil,
		nil,
		zap.NewNop(),
	)

	result := service.RunImport(OrderImportEntityType, []Row{importRow("INV-1", "Acme", "Widget", "1", "10", "2024-03-15")}, nil, nil, "ops@example.com")

	if result.Success || len(result.Errors) != 1 || result.Errors[0].ErrorType != models.InfrastructureErrorType {
		t.Errorf("result = %+v, want a single blocking infrastructure error", result)
	}
}

func TestRunImportUsesPrefetchedEntities(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()

	// nil sources prove the pre-fetched slices short-circuit the fan-out.
	service := NewImportService(nil, nil, store, nil, nil, zap.NewNop())

	result := service.RunImport(OrderImportEntityType, []Row{importRow("INV-1", "Acme", "Widget", "1", "10", "2024-03-15")}, companies, products, "ops@example.com")

	if !result.Success || result.ImportedCount != 1 {
		t.Errorf("result = %+v, want one imported order without touching the sources", result)
	}
}

func TestRunImportBranchRollsUpToParent(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	rows := []Row{importRow("INV-1", "Acme Downtown", "Widget", "1", "10", "2024-03-15")}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if !result.Success || len(store.stored) != 1 {
		t.Fatalf("result = %+v, want one committed order", result)
	}
	order := store.stored[0]
	if order.CompanyID != companies[0].ID {
		t.Errorf("companyID = %s, want the parent %s", order.CompanyID, companies[0].ID)
	}
	if order.BranchID == nil || *order.BranchID != companies[1].ID {
		t.Errorf("branchID = %v, want the branch %s", order.BranchID, companies[1].ID)
	}
}

func TestRunImportFlagsHeaderConflicts(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	rows := []Row{
		importRow("INV-1", "Acme", "Widget", "1", "10", "2024-03-15"),
		importRow("INV-1", "Acme", "Widget", "2", "10", "2024-03-16"),
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if result.ImportedCount != 1 {
		t.Fatalf("imported %d, want the rows merged into one order", result.ImportedCount)
	}
	if store.stored[0].OrderDate.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("order date = %s, want the first row's date kept", store.stored[0].OrderDate.Format("2006-01-02"))
	}
	if len(result.Errors) != 1 || result.Errors[0].Blocking || !strings.Contains(result.Errors[0].Message, "conflicting order date") {
		t.Errorf("errors = %+v, want one non-blocking conflict diagnostic", result.Errors)
	}
}

func TestRunImportAdoptsLaterExplicitDate(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	// The first row has a blank date, so the group starts on the
	// import-time fallback. The second row's sheet date must win without
	// raising a conflict against the fallback.
	rows := []Row{
		importRow("INV-1", "Acme", "Widget", "1", "10", ""),
		importRow("INV-1", "Acme", "Widget", "2", "10", "2024-03-15"),
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if result.ImportedCount != 1 {
		t.Fatalf("imported %d, want the rows merged into one order", result.ImportedCount)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %+v, want none when only one row carries a date", result.Errors)
	}
	if got := store.stored[0].OrderDate.Format("2006-01-02"); got != "2024-03-15" {
		t.Errorf("order date = %s, want the explicit date adopted over the fallback", got)
	}
}

func TestRunImportChunksHashLookups(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, nil)

	var rows []Row
	for i := 0; i < 60; i++ {
		rows = append(rows, importRow(fmt.Sprintf("INV-%03d", i), "Acme", "Widget", "1", "10", "2024-03-15"))
	}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if result.ImportedCount != 60 {
		t.Fatalf("imported %d, want 60", result.ImportedCount)
	}
	if len(store.lookupChunks) != 2 {
		t.Fatalf("lookup chunks = %d, want 2 (50 + 10)", len(store.lookupChunks))
	}
	if len(store.lookupChunks[0]) != 50 || len(store.lookupChunks[1]) != 10 {
		t.Errorf("chunk sizes = %d and %d, want 50 and 10", len(store.lookupChunks[0]), len(store.lookupChunks[1]))
	}
}

func TestRunImportAuditFailureIsNotFatal(t *testing.T) {
	store := &fakeOrderStore{}
	companies, products := testFixtures()
	service := newTestService(store, companies, products, &fakeAuditSink{err: errors.New("queue unavailable")})

	rows := []Row{importRow("INV-1", "Acme", "Widget", "1", "10", "2024-03-15")}
	result := service.RunImport(OrderImportEntityType, rows, nil, nil, "ops@example.com")

	if !result.Success || result.ImportedCount != 1 {
		t.Errorf("result = %+v, audit sink failures must not fail the import", result)
	}
}
