package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BatchGenerator runs one batch generation pass.
type BatchGenerator interface {
	Handle(ctx context.Context, cmd commands.GenerateBatchesCommand) (commands.GenerateBatchesResult, error)
}

// BatchGenerationJob periodically groups PENDING orders into batches using
// the configured default limits.
type BatchGenerationJob struct {
	handler  BatchGenerator
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBatchGenerationJob(handler BatchGenerator, schedule string, timeout time.Duration, logger *slog.Logger) *BatchGenerationJob {
	return &BatchGenerationJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "batch_generation_job"),
	}
}

// Start schedules the job. The schedule uses the six-field cron format with
// seconds.
func (j *BatchGenerationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Batch generation job started", "schedule", j.schedule)
	return nil
}

// Run performs a single generation pass. Failures are logged; the next tick
// retries with whatever is still PENDING.
func (j *BatchGenerationJob) Run(ctx context.Context) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	cmd, err := commands.NewGenerateBatchesCommand(0, 0)
	if err != nil {
		j.logger.ErrorContext(ctx, "Batch generation job failed", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Batch generation job failed", "error", err)
		return
	}

	if len(result.Batches) > 0 {
		j.logger.InfoContext(ctx, "Batch generation job created batches",
			"batches", len(result.Batches), "orders", result.OrderCount)
	}
}

func (j *BatchGenerationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Batch generation job stopped")
}
