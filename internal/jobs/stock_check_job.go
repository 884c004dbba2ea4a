package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"restring/internal/core/application/usecases/queries"
	"restring/internal/core/domain/model/inventory"

	"github.com/robfig/cron/v3"
)

// StockCheckJob reviews stock health every morning and surfaces low, critical
// and out-of-stock SKUs to operators through the log. Shortfalls recorded
// during production debits end up here as out-of-stock rows, so a missed
// restock is observable even when nobody watches a single transition.
type StockCheckJob struct {
	report queries.InventoryReportQueryHandler
	cron   *cron.Cron
	logger *slog.Logger
}

// NewStockCheckJob creates the daily stock check.
func NewStockCheckJob(report queries.InventoryReportQueryHandler, logger *slog.Logger) *StockCheckJob {
	return &StockCheckJob{
		report: report,
		cron:   cron.New(),
		logger: logger.With("component", "stock_check_job"),
	}
}

// Start schedules the check for 07:00 every day.
func (j *StockCheckJob) Start() error {
	_, err := j.cron.AddFunc("0 7 * * *", func() {
		if err := j.Run(context.Background()); err != nil {
			j.logger.Error("Stock check failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Stock check job started (daily at 07:00)")
	return nil
}

// Stop stops the scheduled check.
func (j *StockCheckJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Stock check job stopped")
}

// Run executes one check. Reads only; safe to invoke manually at any time.
func (j *StockCheckJob) Run(ctx context.Context) error {
	report, err := j.report.Handle(ctx, queries.NewInventoryReportQuery())
	if err != nil {
		return fmt.Errorf("inventory report failed: %w", err)
	}

	alerts := 0
	for _, row := range report {
		if row.AlertLevel == inventory.AlertNone {
			continue
		}
		alerts++

		j.logger.WarnContext(ctx, "Stock alert",
			"sku", row.SKU,
			"level", string(row.AlertLevel),
			"on_hand", row.OnHand,
			"reorder_at", row.ReorderAt,
			"days_until_stockout", row.DaysUntilStockout,
		)
	}

	j.logger.InfoContext(ctx, "Stock check completed", "skus", len(report), "alerts", alerts)
	return nil
}
