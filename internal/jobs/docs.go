// Package jobs provides the scheduled batch entry points of the engine,
// built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReminderSweepJob - daily win-back reminder for at-risk customers
// 2. SchedulingAdvisoryJob - nightly promote/limit capacity outlook
// 3. StockCheckJob - morning stock-health review
//
// Every job exposes Run(ctx) so operators can trigger a sweep manually; the
// reminder sweep stays idempotent per calendar day through its dedupe keys,
// and the other two only read.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(churnReport, outlook, forecast, inventoryReport, dispatcher, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
