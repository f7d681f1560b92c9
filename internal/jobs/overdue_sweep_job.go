package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultOverdueSweepSchedule runs the sweep at the start of every minute.
const DefaultOverdueSweepSchedule = "0 * * * * *"

type overdueMarker interface {
	Handle(ctx context.Context, cmd commands.MarkOverdueShipmentsCommand) (int, error)
}

// OverdueSweepJob periodically moves shipped shipments whose delivery date
// has passed to delayed.
type OverdueSweepJob struct {
	handler  overdueMarker
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOverdueSweepJob creates the job. schedule is a six-field cron
// expression; empty selects DefaultOverdueSweepSchedule.
func NewOverdueSweepJob(handler overdueMarker, schedule string, logger *slog.Logger) *OverdueSweepJob {
	if schedule == "" {
		schedule = DefaultOverdueSweepSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OverdueSweepJob{
		handler:  handler,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_sweep_job"),
	}
}

// Start registers the sweep with the scheduler and starts it.
func (j *OverdueSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue sweep job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and returns the number of shipments marked.
func (j *OverdueSweepJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewMarkOverdueShipmentsCommand(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue sweep job failed", "error", err)
		return 0
	}

	marked, err := j.handler.Handle(ctx, cmd)
	if marked > 0 {
		metrics.OverdueShipmentsMarked.Add(float64(marked))
		j.logger.InfoContext(ctx, "Marked overdue shipments as delayed", "count", marked)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue sweep job failed", "error", err)
	}

	return marked
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *OverdueSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue sweep job stopped")
}
