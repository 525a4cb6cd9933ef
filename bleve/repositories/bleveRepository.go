package repositories

import (
	bleveindex "sales-management-backend/bleve/services"
	"sales-management-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

type BleveRepository struct {
	indexer bleveindex.IndexingServiceInterface
}

type BleveRepositoryInterface interface {
	// ==== Order Indexing ====
	IndexSingleOrder(order models.Order) error
	IndexExistingOrders(orders []models.Order) error
	SearchOrders(queryString, status, paymentStatus, addedVia, area string) (*bleve.SearchResult, error)
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer bleveindex.IndexingServiceInterface) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}
