package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restring/internal/core/application/usecases/queries"
	"restring/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// reminderRiskThreshold selects which customers the sweep contacts. Customers
// at or above this churn risk get a win-back message.
const reminderRiskThreshold = 0.6

// churnReportSource is the slice of the read side the sweep consumes.
type churnReportSource interface {
	Handle(ctx context.Context, query queries.ChurnReportQuery) ([]queries.ChurnReportQueryResponse, error)
}

// ReminderSweepJob sends a daily win-back reminder to customers the churn
// report flags as at risk. The per-customer per-day dedupe key makes the
// sweep idempotent: running it twice in one day sends nothing the second
// time.
type ReminderSweepJob struct {
	churnReport churnReportSource
	dispatcher  services.NotificationDispatcher
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewReminderSweepJob creates the daily reminder sweep.
func NewReminderSweepJob(
	churnReport churnReportSource,
	dispatcher services.NotificationDispatcher,
	logger *slog.Logger,
) *ReminderSweepJob {
	return &ReminderSweepJob{
		churnReport: churnReport,
		dispatcher:  dispatcher,
		cron:        cron.New(),
		logger:      logger.With("component", "reminder_sweep_job"),
	}
}

// Start schedules the sweep for 09:00 every day.
func (j *ReminderSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 9 * * *", func() {
		if err := j.Run(context.Background()); err != nil {
			j.logger.Error("Reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Reminder sweep job started (daily at 09:00)")
	return nil
}

// Stop stops the scheduled sweep.
func (j *ReminderSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Reminder sweep job stopped")
}

// Run executes one sweep. Safe to invoke manually; the dedupe key keeps a
// manual run and the scheduled run from double-sending.
func (j *ReminderSweepJob) Run(ctx context.Context) error {
	query, err := queries.NewChurnReportQuery(reminderRiskThreshold)
	if err != nil {
		return err
	}

	atRisk, err := j.churnReport.Handle(ctx, query)
	if err != nil {
		return fmt.Errorf("churn report failed: %w", err)
	}

	today := time.Now().UTC()
	sent := 0
	for _, c := range atRisk {
		key := services.ReminderDedupeKey(c.Email, today)
		message := "We miss you! Your racket is probably due for a fresh restring. " +
			"Book a pickup and we'll take care of the rest."

		if err = j.dispatcher.Dispatch(ctx, key, c.Email, message); err != nil {
			// One failed send must not stop the sweep; the next run retries.
			j.logger.ErrorContext(ctx, "Reminder send failed", "customer", c.Email, "error", err)
			continue
		}
		sent++
	}

	j.logger.InfoContext(ctx, "Reminder sweep completed", "at_risk", len(atRisk), "dispatched", sent)
	return nil
}
