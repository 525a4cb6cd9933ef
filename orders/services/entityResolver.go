package services

import (
	"strings"

	"sales-management-backend/db/models"

	"github.com/google/uuid"
)

// Header vocabularies for the entity columns, tried in priority order.
var (
	companyHeaderKeys = []string{"customer", "client", "company", "branch"}
	productHeaderKeys = []string{"product", "item", "description"}
)

// entityLookup is the read-only lookup table built once per import run from
// the pre-fetched companies and products. It is never mutated afterwards, so
// row processing can share it without locking.
type entityLookup struct {
	companiesByName map[string]*models.Company
	companiesByID   map[uuid.UUID]*models.Company
	productsByName  map[string]*models.Product
}

func newEntityLookup(companies []models.Company, products []models.Product) *entityLookup {
	lookup := &entityLookup{
		companiesByName: make(map[string]*models.Company, len(companies)),
		companiesByID:   make(map[uuid.UUID]*models.Company, len(companies)),
		productsByName:  make(map[string]*models.Product, len(products)),
	}
	for i := range companies {
		company := &companies[i]
		lookup.companiesByName[normalizeName(company.Name)] = company
		lookup.companiesByID[company.ID] = company
	}
	for i := range products {
		product := &products[i]
		lookup.productsByName[normalizeName(product.Name)] = product
	}
	return lookup
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// resolveCompany maps a free-text company or branch name to its canonical
// records. When the match is a branch with a resolvable parent, the parent is
// the company for financial rollup and the match stays as the branch;
// otherwise the match is the company and branch is nil.
func (l *entityLookup) resolveCompany(name string) (company, branch *models.Company, ok bool) {
	matched, found := l.companiesByName[normalizeName(name)]
	if !found {
		return nil, nil, false
	}
	if matched.IsBranch && matched.ParentCompanyID != nil {
		if parent, parentFound := l.companiesByID[*matched.ParentCompanyID]; parentFound {
			return parent, matched, true
		}
	}
	return matched, nil, true
}

// resolveProduct maps a free-text product name to its canonical record.
func (l *entityLookup) resolveProduct(name string) (*models.Product, bool) {
	product, found := l.productsByName[normalizeName(name)]
	return product, found
}
