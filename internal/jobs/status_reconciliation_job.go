package jobs

import (
	"context"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StatusReconciliationJob periodically re-derives every uncompleted order's
// status from its sub-orders. Inline derivation on each transition is the
// primary mechanism; this sweep repairs drift.
type StatusReconciliationJob struct {
	handler commands.ReconcileOrderStatusesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStatusReconciliationJob creates a new job for order status reconciliation.
func NewStatusReconciliationJob(
	handler commands.ReconcileOrderStatusesCommandHandler,
	logger *slog.Logger,
) *StatusReconciliationJob {
	return &StatusReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "status_reconciliation_job"),
	}
}

// Start begins the reconciliation job, running at the top of every minute.
func (j *StatusReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReconcileOrderStatusesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Status reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *StatusReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status reconciliation job stopped")
}
