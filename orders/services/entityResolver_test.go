package services

import (
	"testing"

	"sales-management-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestResolveCompany(t *testing.T) {
	parentID := uuid.New()
	branchParent := parentID
	orphanParent := uuid.New() // never loaded

	companies := []models.Company{
		{ID: parentID, Name: "Acme Holdings"},
		{ID: uuid.New(), Name: "Acme Downtown", IsBranch: true, ParentCompanyID: &branchParent},
		{ID: uuid.New(), Name: "Orphan Branch", IsBranch: true, ParentCompanyID: &orphanParent},
	}
	lookup := newEntityLookup(companies, nil)

	t.Run("case-insensitive exact name match", func(t *testing.T) {
		company, branch, ok := lookup.resolveCompany("  acme holdings ")
		if !ok || company.ID != parentID || branch != nil {
			t.Fatalf("resolveCompany = (%v, %v, %v), want parent with nil branch", company, branch, ok)
		}
	})

	t.Run("branch rolls up to parent", func(t *testing.T) {
		company, branch, ok := lookup.resolveCompany("Acme Downtown")
		if !ok {
			t.Fatal("expected branch to resolve")
		}
		if company.ID != parentID {
			t.Errorf("company = %s, want parent %s", company.ID, parentID)
		}
		if branch == nil || branch.Name != "Acme Downtown" {
			t.Errorf("branch = %v, want the matched branch record", branch)
		}
	})

	t.Run("branch with unresolvable parent stands alone", func(t *testing.T) {
		company, branch, ok := lookup.resolveCompany("Orphan Branch")
		if !ok || company.Name != "Orphan Branch" || branch != nil {
			t.Errorf("resolveCompany = (%v, %v, %v), want the branch itself with nil branch pointer", company, branch, ok)
		}
	})

	t.Run("unknown name misses", func(t *testing.T) {
		if _, _, ok := lookup.resolveCompany("Globex"); ok {
			t.Error("expected miss for unknown company")
		}
	})
}

func TestResolveProduct(t *testing.T) {
	products := []models.Product{
		{ID: uuid.New(), Name: "Widget", Price: decimal.NewFromInt(10)},
	}
	lookup := newEntityLookup(nil, products)

	if product, ok := lookup.resolveProduct("WIDGET"); !ok || product.Name != "Widget" {
		t.Errorf("resolveProduct(WIDGET) = (%v, %v), want the Widget record", product, ok)
	}
	if _, ok := lookup.resolveProduct("Gadget"); ok {
		t.Error("expected miss for unknown product")
	}
}
