package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"sales-management-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// OrderImportEntityType is the only entity type this pipeline accepts.
const OrderImportEntityType = "orders"

// orderInsertChunkSize caps the number of orders per insert call.
const orderInsertChunkSize = 500

// Header vocabularies for the remaining columns, tried in priority order.
var (
	quantityHeaderKeys      = []string{"qty", "quantity"}
	priceHeaderKeys         = []string{"unit price", "price"}
	taxHeaderKeys           = []string{"tax", "vat"}
	discountTypeHeaderKeys  = []string{"discount type"}
	discountValueHeaderKeys = []string{"discount amount", "discount value", "discount"}
	dateHeaderKeys          = []string{"date"}
	areaHeaderKeys          = []string{"area", "region", "territory"}
)

// CompanySource supplies the pre-fetched company table, branches included.
type CompanySource interface {
	ListActiveCompanies() ([]models.Company, error)
}

// ProductSource supplies the pre-fetched product table.
type ProductSource interface {
	ListActiveProducts() ([]models.Product, error)
}

// OrderStore is the storage surface the pipeline writes through.
type OrderStore interface {
	FindOrdersByImportHashes(hashes []string) ([]models.Order, error)
	BulkCreateOrders(orders []models.Order) error
	LogBulkImportErrors(rows []models.BulkImportErrorOrders) error
}

// AuditSink receives one batched audit entry per committed line item.
// Failures are logged, never fatal to the import.
type AuditSink interface {
	LogPriceAuditBatch(entries []models.PriceAuditLog) error
}

// OrderIndexer indexes committed orders for search. Optional.
type OrderIndexer interface {
	IndexSingleOrder(order models.Order) error
}

// ImportService runs the bulk order import pipeline: flexible field reading,
// entity resolution, grouping, financial aggregation, hashing, deduplication
// and chunked commits, collecting per-row diagnostics along the way.
type ImportService struct {
	companies CompanySource
	products  ProductSource
	orders    OrderStore
	audit     AuditSink
	indexer   OrderIndexer
	logger    *zap.Logger
}

func NewImportService(
	companies CompanySource,
	products ProductSource,
	orders OrderStore,
	audit AuditSink,
	indexer OrderIndexer,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		companies: companies,
		products:  products,
		orders:    orders,
		audit:     audit,
		indexer:   indexer,
		logger:    logger,
	}
}

// RunImport ingests loosely-structured rows and returns the import outcome.
// Callers that already hold the company/product tables can pass them in;
// nil slices trigger a parallel pre-fetch. The method never panics and never
// returns an error directly: infrastructure failures surface inside the
// result as blocking errors, so a partially failed run is still reportable.
func (s *ImportService) RunImport(entityType string, rows []Row, companies []models.Company, products []models.Product, createdBy string) *ImportResult {
	result := &ImportResult{
		ImportedTotal:    decimal.Zero,
		ImportedSubtotal: decimal.Zero,
	}
	collector := &errorCollector{}

	if entityType != OrderImportEntityType {
		collector.add(RowError{
			RowIndex:  -1,
			ErrorType: models.InvalidDataErrorType,
			Message:   fmt.Sprintf("unsupported import entity type %q, expected %q", entityType, OrderImportEntityType),
			Blocking:  true,
		})
		return s.finish(result, collector, createdBy)
	}

	companies, products, prefetchErr := s.prefetchEntities(companies, products)
	if prefetchErr != nil {
		collector.add(RowError{
			RowIndex:  -1,
			ErrorType: models.InfrastructureErrorType,
			Message:   prefetchErr.Error(),
			Blocking:  true,
		})
		return s.finish(result, collector, createdBy)
	}

	lookup := newEntityLookup(companies, products)
	grouper := newOrderGrouper()
	for index, row := range rows {
		if row.IsEmpty() {
			continue
		}
		s.processRow(index, row, lookup, grouper, collector)
	}

	candidates := make([]candidateOrder, 0, len(grouper.order))
	for _, group := range grouper.ordered() {
		if len(group.items) == 0 {
			continue
		}
		candidates = append(candidates, finalizeGroup(group))
	}

	kept, duplicates, dedupeErr := s.dedupeCandidates(candidates)
	if dedupeErr != nil {
		collector.add(RowError{
			RowIndex:  -1,
			ErrorType: models.InfrastructureErrorType,
			Message:   dedupeErr.Error(),
			Blocking:  true,
		})
		return s.finish(result, collector, createdBy)
	}
	result.Duplicates = duplicates
	result.SkippedCount = len(duplicates)

	committed, commitErr := s.commitCandidates(kept, createdBy)
	if commitErr != nil {
		// Chunks committed before the failure are not rolled back; the
		// content hash makes retrying the same file safe.
		collector.add(RowError{
			RowIndex:  -1,
			ErrorType: models.InfrastructureErrorType,
			Message:   commitErr.Error(),
			Blocking:  true,
		})
	}

	for _, order := range committed {
		result.ImportedCount++
		result.ImportedTotal = result.ImportedTotal.Add(order.GrandTotal)
		result.ImportedSubtotal = result.ImportedSubtotal.Add(order.Subtotal)
	}

	s.emitAuditTrail(committed, createdBy)
	s.indexOrders(committed)

	return s.finish(result, collector, createdBy)
}

// prefetchEntities loads whichever lookup tables the caller did not supply.
// The two fetches fan out in parallel and join before row processing starts.
func (s *ImportService) prefetchEntities(companies []models.Company, products []models.Product) ([]models.Company, []models.Product, error) {
	var wg sync.WaitGroup
	var companiesErr, productsErr error

	if companies == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			companies, companiesErr = s.companies.ListActiveCompanies()
		}()
	}
	if products == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			products, productsErr = s.products.ListActiveProducts()
		}()
	}
	wg.Wait()

	if companiesErr != nil {
		return nil, nil, fmt.Errorf("pre-fetching companies: %w", companiesErr)
	}
	if productsErr != nil {
		return nil, nil, fmt.Errorf("pre-fetching products: %w", productsErr)
	}
	return companies, products, nil
}

// processRow resolves one row's entities and numbers and folds it into its
// order group. Any failure is recorded and the row is skipped; processing of
// the remaining rows always continues.
func (s *ImportService) processRow(index int, row Row, lookup *entityLookup, grouper *orderGrouper, collector *errorCollector) {
	companyName, ok := row.Field(companyHeaderKeys...)
	if !ok {
		collector.add(RowError{
			RowIndex:  index,
			ErrorType: models.MissingEntityErrorType,
			Message:   "no customer, client, company or branch column found",
			Blocking:  true,
		})
		return
	}

	area, _ := row.Field(areaHeaderKeys...)

	company, branch, found := lookup.resolveCompany(companyName)
	if !found {
		suggested := &SuggestedCompany{Name: companyName}
		if area != "" {
			suggested.Area = &area
		}
		collector.add(RowError{
			RowIndex:         index,
			ErrorType:        models.MissingEntityErrorType,
			Message:          fmt.Sprintf("company %q not found", companyName),
			Blocking:         true,
			SuggestedCompany: suggested,
		})
		return
	}

	productName, ok := row.Field(productHeaderKeys...)
	if !ok {
		collector.add(RowError{
			RowIndex:  index,
			ErrorType: models.MissingEntityErrorType,
			Message:   "no product, item or description column found",
			Blocking:  true,
		})
		return
	}

	product, found := lookup.resolveProduct(productName)
	if !found {
		rawPrice, _ := row.Field(priceHeaderKeys...)
		collector.add(RowError{
			RowIndex:  index,
			ErrorType: models.MissingEntityErrorType,
			Message:   fmt.Sprintf("product %q not found", productName),
			Blocking:  true,
			SuggestedProduct: &SuggestedProduct{
				Name:  productName,
				Price: ParseAmount(rawPrice),
			},
		})
		return
	}

	rawQuantity, _ := row.Field(quantityHeaderKeys...)
	quantity := ParseAmount(rawQuantity)
	if quantity.IsZero() {
		collector.add(RowError{
			RowIndex:  index,
			ErrorType: models.InvalidDataErrorType,
			Message:   fmt.Sprintf("invalid or zero quantity %q", rawQuantity),
			Blocking:  false,
		})
		return
	}
	isReturn := quantity.IsNegative()
	quantity = quantity.Abs()

	// The row's own price wins; the catalog price covers files without one.
	price := product.Price
	if rawPrice, hasPrice := row.Field(priceHeaderKeys...); hasPrice {
		price = ParseAmount(rawPrice)
	}
	if price.IsNegative() {
		collector.add(RowError{
			RowIndex:  index,
			ErrorType: models.InvalidDataErrorType,
			Message:   fmt.Sprintf("negative price for product %q", productName),
			Blocking:  false,
		})
		return
	}

	taxRate := decimal.Zero
	if rawTax, hasTax := row.Field(taxHeaderKeys...); hasTax {
		taxRate = ParseTaxRate(rawTax)
	}

	var discountType *models.DiscountType
	discountValue := decimal.Zero
	if rawDiscount, hasDiscount := row.Field(discountValueHeaderKeys...); hasDiscount {
		discountValue = ParseAmount(rawDiscount)
		kind := models.FixedDiscountType
		rawType, hasType := row.Field(discountTypeHeaderKeys...)
		if (hasType && strings.Contains(strings.ToLower(rawType), "percent")) || strings.Contains(rawDiscount, "%") {
			kind = models.PercentageDiscountType
		}
		discountType = &kind
	}

	orderDate := time.Now()
	var explicitDate time.Time
	if rawDate, hasDate := row.Field(dateHeaderKeys...); hasDate {
		parsed, err := ParseOrderDate(rawDate)
		if err != nil {
			collector.add(RowError{
				RowIndex:  index,
				ErrorType: models.InvalidDataErrorType,
				Message:   fmt.Sprintf("%s, using today's date", err.Error()),
				Blocking:  false,
			})
		} else {
			orderDate = parsed
			explicitDate = parsed
		}
	}

	invoiceNumber, _ := row.Field(invoiceHeaderKeys...)
	key := groupKey(company, branch, invoiceNumber, index)
	group, created := grouper.upsert(key, index, invoiceNumber, company, branch, area, orderDate, !explicitDate.IsZero())
	if !created {
		for _, conflict := range group.checkConflicts(index, area, explicitDate) {
			collector.add(RowError{
				RowIndex:  index,
				ErrorType: models.InvalidDataErrorType,
				Message: fmt.Sprintf("conflicting %s within invoice %q: keeping %q, ignoring %q",
					conflict.field, group.invoiceNumber, conflict.kept, conflict.ignored),
				Blocking: false,
			})
		}
		group.mergeDate(explicitDate)
	}

	group.items = append(group.items, candidateItem{
		productID:     product.ID,
		productName:   product.Name,
		quantity:      quantity,
		price:         price,
		taxRate:       taxRate,
		discountType:  discountType,
		discountValue: discountValue,
		isReturn:      isReturn,
	})
}

// commitCandidates persists surviving candidates in fixed-size chunks with
// sequential insert calls. A chunk failure stops the remaining chunks;
// earlier chunks stay committed and are still reported as imported.
func (s *ImportService) commitCandidates(candidates []candidateOrder, createdBy string) ([]models.Order, error) {
	committed := make([]models.Order, 0, len(candidates))
	for start := 0; start < len(candidates); start += orderInsertChunkSize {
		end := min(start+orderInsertChunkSize, len(candidates))
		chunk := make([]models.Order, 0, end-start)
		for i := start; i < end; i++ {
			chunk = append(chunk, candidates[i].toOrder(createdBy))
		}
		if err := s.orders.BulkCreateOrders(chunk); err != nil {
			return committed, fmt.Errorf("inserting orders %d-%d: %w", start+1, end, err)
		}
		committed = append(committed, chunk...)
	}
	return committed, nil
}

// emitAuditTrail forwards one audit entry per committed line item, batched
// into a single call to the sink.
func (s *ImportService) emitAuditTrail(orders []models.Order, createdBy string) {
	if s.audit == nil || len(orders) == 0 {
		return
	}
	var entries []models.PriceAuditLog
	for _, order := range orders {
		for _, item := range order.Items {
			entries = append(entries, models.PriceAuditLog{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				IsReturn:  item.IsReturn,
				Source:    models.BulkAddedViaType,
				CreatedBy: createdBy,
			})
		}
	}
	if err := s.audit.LogPriceAuditBatch(entries); err != nil {
		s.logger.Warn("Failed to forward price audit batch", zap.Int("entries", len(entries)), zap.Error(err))
	}
}

func (s *ImportService) indexOrders(orders []models.Order) {
	if s.indexer == nil {
		return
	}
	for _, order := range orders {
		if err := s.indexer.IndexSingleOrder(order); err != nil {
			s.logger.Warn("Failed to index imported order", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}
}

// finish seals the result: success requires zero blocking errors and at
// least one actually imported order, so an all-duplicate or all-error run
// reports failure. Diagnostics are persisted best-effort.
func (s *ImportService) finish(result *ImportResult, collector *errorCollector, createdBy string) *ImportResult {
	result.Errors = collector.errors
	result.Success = !collector.hasBlocking() && result.ImportedCount > 0
	s.persistDiagnostics(collector.errors, result.Duplicates, createdBy)
	return result
}

// persistDiagnostics writes row errors and skipped duplicates to the import
// error table. Logging failures never fail the import.
func (s *ImportService) persistDiagnostics(rowErrors []RowError, duplicates []DuplicateOrder, createdBy string) {
	records := make([]models.BulkImportErrorOrders, 0, len(rowErrors)+len(duplicates))
	for _, rowErr := range rowErrors {
		record := models.BulkImportErrorOrders{
			ID:        uuid.New(),
			RowIndex:  rowErr.RowIndex,
			Reason:    rowErr.Message,
			ErrorType: rowErr.ErrorType,
			Blocking:  rowErr.Blocking,
			AddedVia:  models.BulkAddedViaType,
			CreatedBy: createdBy,
		}
		if rowErr.SuggestedCompany != nil {
			record.CompanyName = rowErr.SuggestedCompany.Name
			if payload, err := json.Marshal(rowErr.SuggestedCompany); err == nil {
				record.SuggestedPayload = datatypes.JSON(payload)
			}
		}
		if rowErr.SuggestedProduct != nil {
			record.ProductName = rowErr.SuggestedProduct.Name
			if payload, err := json.Marshal(rowErr.SuggestedProduct); err == nil {
				record.SuggestedPayload = datatypes.JSON(payload)
			}
		}
		records = append(records, record)
	}
	for _, duplicate := range duplicates {
		records = append(records, models.BulkImportErrorOrders{
			ID:        uuid.New(),
			RowIndex:  duplicate.RowIndex,
			Reason:    fmt.Sprintf("duplicate order (invoice %q): %s", duplicate.InvoiceNumber, duplicate.Provenance),
			ErrorType: models.DuplicateErrorType,
			Blocking:  false,
			AddedVia:  models.BulkAddedViaType,
			CreatedBy: createdBy,
		})
	}
	if len(records) == 0 {
		return
	}
	if err := s.orders.LogBulkImportErrors(records); err != nil {
		s.logger.Warn("Failed to log import diagnostics", zap.Int("records", len(records)), zap.Error(err))
	}
}
