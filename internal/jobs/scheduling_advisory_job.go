package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"restring/internal/core/application/usecases/queries"
	"restring/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// advisoryHorizonDays is how far ahead the nightly advisory looks.
const advisoryHorizonDays = 7

// SchedulingAdvisoryJob computes the capacity outlook and the revenue
// projection every night and logs the promote/limit recommendations for the
// operations team. Both are derived state; recomputing is always safe.
type SchedulingAdvisoryJob struct {
	outlook  queries.ScheduleOutlookQueryHandler
	forecast queries.RevenueForecastQueryHandler
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSchedulingAdvisoryJob creates the nightly advisory job.
func NewSchedulingAdvisoryJob(
	outlook queries.ScheduleOutlookQueryHandler,
	forecast queries.RevenueForecastQueryHandler,
	logger *slog.Logger,
) *SchedulingAdvisoryJob {
	return &SchedulingAdvisoryJob{
		outlook:  outlook,
		forecast: forecast,
		cron:     cron.New(),
		logger:   logger.With("component", "scheduling_advisory_job"),
	}
}

// Start schedules the advisory for 02:00 every night.
func (j *SchedulingAdvisoryJob) Start() error {
	_, err := j.cron.AddFunc("0 2 * * *", func() {
		if err := j.Run(context.Background()); err != nil {
			j.logger.Error("Scheduling advisory failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Scheduling advisory job started (nightly at 02:00)")
	return nil
}

// Stop stops the scheduled advisory.
func (j *SchedulingAdvisoryJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Scheduling advisory job stopped")
}

// Run computes one outlook plus the revenue projection and logs any day
// needing intervention.
func (j *SchedulingAdvisoryJob) Run(ctx context.Context) error {
	query, err := queries.NewScheduleOutlookQuery(advisoryHorizonDays)
	if err != nil {
		return err
	}

	outlook, err := j.outlook.Handle(ctx, query)
	if err != nil {
		return fmt.Errorf("schedule outlook failed: %w", err)
	}

	for _, day := range outlook {
		if day.Action == services.ActionNormal {
			continue
		}

		j.logger.InfoContext(ctx, "Scheduling recommendation",
			"day", day.Day.Format("2006-01-02"),
			"action", string(day.Action),
			"booked", day.Booked,
			"available_capacity", day.AvailableCapacity,
			"utilization", day.Utilization,
		)
	}

	forecastQuery, err := queries.NewRevenueForecastQuery(advisoryHorizonDays)
	if err != nil {
		return err
	}

	forecast, err := j.forecast.Handle(ctx, forecastQuery)
	if err != nil {
		return fmt.Errorf("revenue forecast failed: %w", err)
	}

	j.logger.InfoContext(ctx, "Scheduling advisory completed",
		"days", len(outlook),
		"revenue_forecast", forecast.Forecast.StringFixed(2),
		"forecast_horizon_days", forecast.HorizonDays,
	)
	return nil
}
