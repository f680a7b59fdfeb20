// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and overlapping ticks of the same job are skipped.
//
// # Available Jobs
//
//  1. BatchGenerationJob - groups PENDING orders into batches with the default limits
//  2. BatchCompletionJob - completes IN_PROGRESS batches whose orders are all delivered
//
// # Usage
//
//	jobManager := jobs.NewJobManager(generateHandler, completeHandler, jobs.Schedules{
//		Generation: "0 */15 * * * *",
//		Completion: "0 * * * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Batch generation is
// all-or-nothing, so a failed tick leaves every order PENDING.
package jobs
