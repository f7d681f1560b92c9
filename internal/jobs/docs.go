// Package jobs provides scheduled background tasks for the tracking service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// OverdueSweepJob runs on OVERDUE_SWEEP_SCHEDULE (every minute by default) and
// moves shipments still "shipped" after their delivery date to "delayed". It
// goes through the regular status update path, so a shipment delivered in the
// meantime is left untouched.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(markOverdueHandler, cfg.OverdueSweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
