package queries

import (
	"context"
	"time"

	"restring/internal/core/domain/model/inventory"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryReportQueryHandler builds the stock report. Rows are rehydrated
// through the domain item so the alert and stockout math stays in one place.
type InventoryReportQueryHandler struct {
	db *gorm.DB
}

// NewInventoryReportQueryHandler creates a handler for inventory reports.
func NewInventoryReportQueryHandler(db *gorm.DB) InventoryReportQueryHandler {
	return InventoryReportQueryHandler{db: db}
}

// Handle reads every item, worst stock health first.
func (h InventoryReportQueryHandler) Handle(
	ctx context.Context,
	query InventoryReportQuery,
) ([]InventoryReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// Usage comes from the ledger, not the cached usage_30d column: a SKU
	// nobody consumed for a month must read as zero velocity even though no
	// movement has touched its cached counter since.
	windowStart := time.Now().UTC().AddDate(0, 0, -inventory.UsageWindowDays)
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.sku,
			i.name,
			i.on_hand,
			i.reorder_at,
			COALESCE(-SUM(m.delta), 0) AS usage_30d,
			i.cost_per_unit,
			i.updated_at
		FROM inventory_items i
		LEFT JOIN inventory_movements m
			ON m.sku = i.sku
			AND m.reason = ?
			AND m.occurred_at >= ?
		GROUP BY i.sku, i.name, i.on_hand, i.reorder_at, i.cost_per_unit, i.updated_at
		ORDER BY i.on_hand ASC, i.sku
	`, string(inventory.ReasonOrderConsumption), windowStart).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]InventoryReportQueryResponse, 0)
	for rows.Next() {
		var resp InventoryReportQueryResponse
		var cost decimal.Decimal

		if err = rows.Scan(
			&resp.SKU,
			&resp.Name,
			&resp.OnHand,
			&resp.ReorderAt,
			&resp.Usage30d,
			&cost,
			&resp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		resp.CostPerUnit = cost

		item, itemErr := inventory.RestoreItem(
			resp.SKU, resp.Name, resp.OnHand, resp.ReorderAt, resp.Usage30d, cost, resp.UpdatedAt)
		if itemErr != nil {
			return nil, itemErr
		}
		resp.AlertLevel = item.AlertLevel()
		resp.DaysUntilStockout = item.DaysUntilStockout()

		report = append(report, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
