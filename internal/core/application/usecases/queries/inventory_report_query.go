package queries

import (
	"errors"
	"time"

	"restring/internal/core/domain/model/inventory"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrInventoryReportQueryIsNotConstructed = errors.New(
	"InventoryReportQuery must be created via NewInventoryReportQuery constructor",
)

// InventoryReportQuery retrieves every SKU with its computed alert level and
// projected days until stockout. Alert levels are derived at read time, never
// stored.
//
// Example:
//
//	query := NewInventoryReportQuery()
//	handler := NewInventoryReportQueryHandler(db)
//
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to build inventory report: %w", err)
//	}
//
//	for _, row := range report {
//	    if row.AlertLevel != inventory.AlertNone {
//	        fmt.Printf("%s: %s\n", row.SKU, row.AlertLevel)
//	    }
//	}
type InventoryReportQuery struct {
	guard guard.ConstructorGuard
}

// NewInventoryReportQuery creates a parameterless report query.
func NewInventoryReportQuery() InventoryReportQuery {
	return InventoryReportQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q InventoryReportQuery) Validate() error {
	return q.guard.Validate(ErrInventoryReportQueryIsNotConstructed)
}

// InventoryReportQueryResponse is one SKU's report row.
type InventoryReportQueryResponse struct {
	SKU               string
	Name              string
	OnHand            int
	ReorderAt         int
	Usage30d          int
	CostPerUnit       decimal.Decimal
	AlertLevel        inventory.AlertLevel
	DaysUntilStockout float64
	UpdatedAt         time.Time
}
