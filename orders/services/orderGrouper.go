package services

import (
	"fmt"
	"time"

	"sales-management-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Header vocabulary for the order identifier column, tried in priority order.
var invoiceHeaderKeys = []string{"invoice", "order no", "order number", "reference"}

// candidateItem is one normalized line item awaiting aggregation. Quantity is
// always positive; the original sign lives in isReturn.
type candidateItem struct {
	productID     uuid.UUID
	productName   string
	quantity      decimal.Decimal
	price         decimal.Decimal
	taxRate       decimal.Decimal
	discountType  *models.DiscountType
	discountValue decimal.Decimal
	isReturn      bool
}

// orderGroup accumulates rows sharing one composite key. The first row fixes
// the header-level fields; later rows only append items.
type orderGroup struct {
	key           string
	firstRowIndex int
	invoiceNumber string
	company       *models.Company
	branch        *models.Company
	area          string
	orderDate     time.Time
	dateExplicit  bool
	items         []candidateItem
}

// groupConflict flags header-level data on a later row disagreeing with the
// value the group already carries. The first row's value is kept.
type groupConflict struct {
	rowIndex int
	field    string
	kept     string
	ignored  string
}

// orderGrouper builds composite orders in a single forward pass. Rows with
// the same resolved company and invoice identifier merge into one group; rows
// without an identifier become singleton groups keyed by their row index.
type orderGrouper struct {
	groups map[string]*orderGroup
	order  []string
}

func newOrderGrouper() *orderGrouper {
	return &orderGrouper{groups: make(map[string]*orderGroup)}
}

// groupKey derives the composite key for a row. The branch takes precedence
// over the parent company so two branches of one company never merge.
func groupKey(company, branch *models.Company, invoiceNumber string, rowIndex int) string {
	if invoiceNumber == "" {
		return fmt.Sprintf("row-%d", rowIndex)
	}
	owner := company
	if branch != nil {
		owner = branch
	}
	return owner.ID.String() + "|" + invoiceNumber
}

// upsert returns the group for key, creating it from the given header fields
// on first sight. created reports whether this row opened the group.
// dateExplicit records whether orderDate came from the sheet rather than the
// import-time fallback.
func (g *orderGrouper) upsert(key string, rowIndex int, invoiceNumber string, company, branch *models.Company, area string, orderDate time.Time, dateExplicit bool) (group *orderGroup, created bool) {
	if existing, ok := g.groups[key]; ok {
		return existing, false
	}
	group = &orderGroup{
		key:           key,
		firstRowIndex: rowIndex,
		invoiceNumber: invoiceNumber,
		company:       company,
		branch:        branch,
		area:          area,
		orderDate:     orderDate,
		dateExplicit:  dateExplicit,
	}
	g.groups[key] = group
	g.order = append(g.order, key)
	return group, true
}

// checkConflicts compares a later row's header-level fields against the
// group's and reports any disagreement instead of silently discarding it.
func (g *orderGroup) checkConflicts(rowIndex int, area string, orderDate time.Time) []groupConflict {
	var conflicts []groupConflict
	if area != "" && g.area != "" && area != g.area {
		conflicts = append(conflicts, groupConflict{
			rowIndex: rowIndex,
			field:    "area",
			kept:     g.area,
			ignored:  area,
		})
	}
	if !orderDate.IsZero() && g.dateExplicit && !sameDay(orderDate, g.orderDate) {
		conflicts = append(conflicts, groupConflict{
			rowIndex: rowIndex,
			field:    "order date",
			kept:     g.orderDate.Format("2006-01-02"),
			ignored:  orderDate.Format("2006-01-02"),
		})
	}
	return conflicts
}

// mergeDate adopts an explicit sheet date when the group is still carrying
// the import-time fallback. Once set, the group's date is fixed.
func (g *orderGroup) mergeDate(orderDate time.Time) {
	if !g.dateExplicit && !orderDate.IsZero() {
		g.orderDate = orderDate
		g.dateExplicit = true
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ordered returns the groups in first-seen order.
func (g *orderGrouper) ordered() []*orderGroup {
	groups := make([]*orderGroup, 0, len(g.order))
	for _, key := range g.order {
		groups = append(groups, g.groups[key])
	}
	return groups
}
