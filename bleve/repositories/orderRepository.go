package repositories

import (
	"strings"

	"sales-management-backend/config"
	"sales-management-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const orderIndexName = "orders"

// orderDocument is the minimal shape stored in the orders index. Full order
// detail stays in Postgres; the index only carries what search filters on.
type orderDocument struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	BranchID      string  `json:"branch_id,omitempty"`
	CompanyName   string  `json:"company_name,omitempty"`
	Area          string  `json:"area,omitempty"`
	OrderDate     string  `json:"order_date"`
	GrandTotal    float64 `json:"grand_total"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	AddedVia      string  `json:"added_via"`
}

func newOrderDocument(order models.Order) orderDocument {
	var companyName string
	if order.Company != nil {
		companyName = order.Company.Name
	}

	grandTotal, _ := order.GrandTotal.Float64()

	return orderDocument{
		ID:            order.ID.String(),
		CompanyID:     order.CompanyID.String(),
		BranchID:      derefUUID(order.BranchID),
		CompanyName:   companyName,
		Area:          order.Area,
		OrderDate:     order.OrderDate.Format("2006-01-02"),
		GrandTotal:    grandTotal,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		AddedVia:      string(order.AddedVia),
	}
}

func derefUUID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func (r *BleveRepository) IndexSingleOrder(order models.Order) error {
	err := r.indexer.IndexDocument(orderIndexName, order.ID.String(), newOrderDocument(order))
	if err != nil {
		config.Logger.Error("Failed to index single order into Bleve",
			zap.Error(err),
			zap.String("order_id", order.ID.String()))
		return err
	}

	return nil
}

// IndexExistingOrders rebuilds the orders index from the given set. The
// on-disk index is dropped first so orders removed from Postgres do not
// linger as stale search hits.
func (r *BleveRepository) IndexExistingOrders(orders []models.Order) error {
	if err := r.indexer.DeleteIndex(orderIndexName); err != nil {
		config.Logger.Error("Failed to drop orders index before rebuild", zap.Error(err))
		return err
	}

	if len(orders) == 0 {
		config.Logger.Info("No orders to index into Bleve.")
		return nil
	}

	docs := make(map[string]interface{}, len(orders))
	for _, order := range orders {
		docs[order.ID.String()] = newOrderDocument(order)
	}

	if err := r.indexer.BulkIndexDocuments(orderIndexName, docs); err != nil {
		config.Logger.Error("Failed to bulk index orders into Bleve", zap.Error(err))
		return err
	}

	config.Logger.Info("Successfully bulk indexed orders into Bleve",
		zap.Int("count", len(docs)))
	return nil
}

func (r *BleveRepository) SearchOrders(
	queryString string,
	status string,
	paymentStatus string,
	addedVia string,
	area string,
) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()
	queryString = strings.TrimSpace(queryString)
	queryStringLower := strings.ToLower(queryString)

	if queryString != "" {
		exactMatch := bleve.NewBooleanQuery()

		companyExact := bleve.NewTermQuery(queryStringLower)
		companyExact.SetField("company_name")
		companyExact.SetBoost(10.0)
		exactMatch.AddShould(companyExact)

		companyMatch := bleve.NewMatchQuery(queryString)
		companyMatch.SetField("company_name")
		companyMatch.SetBoost(8.0)
		exactMatch.AddShould(companyMatch)

		areaMatch := bleve.NewMatchQuery(queryString)
		areaMatch.SetField("area")
		areaMatch.SetBoost(6.0)
		exactMatch.AddShould(areaMatch)

		prefixMatch := bleve.NewBooleanQuery()

		companyPrefix := bleve.NewPrefixQuery(queryStringLower)
		companyPrefix.SetField("company_name")
		companyPrefix.SetBoost(5.0)
		prefixMatch.AddShould(companyPrefix)

		// Fuzzy search for typos
		fuzzyQuery := bleve.NewFuzzyQuery(queryStringLower)
		fuzzyQuery.SetField("company_name")
		fuzzyQuery.SetBoost(4.0)
		fuzzyQuery.SetFuzziness(1)
		prefixMatch.AddShould(fuzzyQuery)

		booleanQuery.AddShould(exactMatch)
		booleanQuery.AddShould(prefixMatch)
	}

	finalQuery := bleve.NewBooleanQuery()
	if queryString != "" {
		finalQuery.AddMust(booleanQuery)
	}

	if status != "" {
		statusQuery := bleve.NewTermQuery(strings.ToLower(status))
		statusQuery.SetField("status")
		finalQuery.AddMust(statusQuery)
	}

	if paymentStatus != "" {
		paymentQuery := bleve.NewTermQuery(strings.ToLower(paymentStatus))
		paymentQuery.SetField("payment_status")
		finalQuery.AddMust(paymentQuery)
	}

	if addedVia != "" {
		addedViaQuery := bleve.NewTermQuery(strings.ToLower(addedVia))
		addedViaQuery.SetField("added_via")
		finalQuery.AddMust(addedViaQuery)
	}

	if area != "" {
		areaQuery := bleve.NewTermQuery(strings.ToLower(area))
		areaQuery.SetField("area")
		finalQuery.AddMust(areaQuery)
	}

	return r.indexer.SearchIndex(orderIndexName, finalQuery, 20)
}
