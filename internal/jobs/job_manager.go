package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules configures the cron expressions of the background jobs. An
// empty expression disables the job.
type Schedules struct {
	Generation        string
	GenerationTimeout time.Duration
	Completion        string
}

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []job
	started []job
}

// NewJobManager creates a job manager for the enabled jobs.
func NewJobManager(
	generator BatchGenerator,
	completer BatchCompleter,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if schedules.Generation != "" {
		jm.jobs = append(jm.jobs, NewBatchGenerationJob(generator, schedules.Generation, schedules.GenerationTimeout, logger))
	}
	if schedules.Completion != "" {
		jm.jobs = append(jm.jobs, NewBatchCompletionJob(completer, schedules.Completion, logger))
	}
	return jm
}

// StartAll starts all scheduled jobs.
// When one fails to start, the jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %T: %w", j, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the running jobs and waits for in-flight runs to finish.
func (jm *JobManager) StopAll() {
	for _, j := range jm.started {
		j.Stop()
	}
	jm.started = nil
}
