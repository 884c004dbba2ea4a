package jobs

import (
	"fmt"
	"log/slog"

	"restring/internal/core/application/usecases/queries"
	"restring/internal/core/domain/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reminderSweepJob      *ReminderSweepJob
	schedulingAdvisoryJob *SchedulingAdvisoryJob
	stockCheckJob         *StockCheckJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	churnReport queries.ChurnReportQueryHandler,
	outlook queries.ScheduleOutlookQueryHandler,
	forecast queries.RevenueForecastQueryHandler,
	inventoryReport queries.InventoryReportQueryHandler,
	dispatcher services.NotificationDispatcher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reminderSweepJob:      NewReminderSweepJob(churnReport, dispatcher, logger),
		schedulingAdvisoryJob: NewSchedulingAdvisoryJob(outlook, forecast, logger),
		stockCheckJob:         NewStockCheckJob(inventoryReport, logger),
	}
}

// StartAll starts all scheduled jobs. If one fails to start, jobs already
// running are stopped before returning.
func (jm *JobManager) StartAll() error {
	if err := jm.reminderSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start reminder sweep job: %w", err)
	}

	if err := jm.schedulingAdvisoryJob.Start(); err != nil {
		jm.reminderSweepJob.Stop()
		return fmt.Errorf("failed to start scheduling advisory job: %w", err)
	}

	if err := jm.stockCheckJob.Start(); err != nil {
		jm.schedulingAdvisoryJob.Stop()
		jm.reminderSweepJob.Stop()
		return fmt.Errorf("failed to start stock check job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stockCheckJob.Stop()
	jm.schedulingAdvisoryJob.Stop()
	jm.reminderSweepJob.Stop()
}
