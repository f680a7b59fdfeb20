package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// BatchCompleter closes IN_PROGRESS batches whose orders are all delivered.
type BatchCompleter interface {
	Handle(ctx context.Context, cmd commands.CompleteBatchesCommand) ([]kernel.UUID, error)
}

// BatchCompletionJob sweeps for batches that were fully delivered without
// the last delivery closing them, e.g. orders delivered through a data fix.
type BatchCompletionJob struct {
	handler  BatchCompleter
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBatchCompletionJob(handler BatchCompleter, schedule string, logger *slog.Logger) *BatchCompletionJob {
	return &BatchCompletionJob{
		handler:  handler,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "batch_completion_job"),
	}
}

func (j *BatchCompletionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Batch completion job started", "schedule", j.schedule)
	return nil
}

func (j *BatchCompletionJob) Run(ctx context.Context) {
	completed, err := j.handler.Handle(ctx, commands.NewCompleteBatchesCommand(j.now()))
	if err != nil {
		j.logger.ErrorContext(ctx, "Batch completion job failed", "error", err)
		return
	}

	for _, id := range completed {
		j.logger.InfoContext(ctx, "Batch completed", "batch_id", id.String())
	}
}

func (j *BatchCompletionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Batch completion job stopped")
}
