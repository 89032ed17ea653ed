package execution

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
	"github.com/google/uuid"
)

// Recorder writes one audit record per batch-job run. Every run — clean,
// partially failed, or aborted at setup — emits exactly one record.
type Recorder struct {
	repo execution.ExecutionRepository
}

func NewRecorder(repo execution.ExecutionRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Begin opens a run. startedAt is the job's single clock read at run
// start, so the audit trail matches the window/period the job derived
// from it.
func (r *Recorder) Begin(jobType execution.JobType, startedAt time.Time, metadata map[string]any) *Run {
	return &Run{
		repo:      r.repo,
		jobType:   jobType,
		startedAt: startedAt,
		metadata:  metadata,
	}
}

// Run accumulates the outcome of one job run. Success and Fail are safe
// to call from concurrent item workers.
type Run struct {
	repo      execution.ExecutionRepository
	jobType   execution.JobType
	startedAt time.Time
	metadata  map[string]any

	mu           sync.Mutex
	successCount int
	itemErrors   []execution.ItemError
}

// Success counts one processed item.
func (run *Run) Success() {
	run.mu.Lock()
	defer run.mu.Unlock()
	run.successCount++
}

// Fail counts one failed item and keeps its error for the audit record.
func (run *Run) Fail(itemID string, err error) {
	run.mu.Lock()
	defer run.mu.Unlock()
	run.itemErrors = append(run.itemErrors, execution.ItemError{
		ItemID:  itemID,
		Message: err.Error(),
	})
}

// Abort writes the record for a run that failed before processing any
// item (setup error). Classified failed with zero items.
func (run *Run) Abort(ctx context.Context, setupErr error) execution.Record {
	run.mu.Lock()
	defer run.mu.Unlock()

	errs := []execution.ItemError{{ItemID: "setup", Message: setupErr.Error()}}
	return run.write(ctx, execution.StatusFailed, 0, 0, 0, errs)
}

// Finish writes the record for a completed item loop.
func (run *Run) Finish(ctx context.Context) execution.Record {
	run.mu.Lock()
	defer run.mu.Unlock()

	failed := len(run.itemErrors)
	total := run.successCount + failed
	status := execution.Classify(false, total, run.successCount, failed)
	return run.write(ctx, status, total, run.successCount, failed, run.itemErrors)
}

// write must be called with run.mu held.
func (run *Run) write(ctx context.Context, status execution.Status, total, success, failed int, itemErrors []execution.ItemError) execution.Record {
	completedAt := time.Now()
	rec := execution.Record{
		ID:           uuid.Must(uuid.NewV7()).String(),
		JobType:      run.jobType,
		Status:       status,
		StartedAt:    run.startedAt,
		CompletedAt:  completedAt,
		DurationMs:   completedAt.Sub(run.startedAt).Milliseconds(),
		TotalItems:   total,
		SuccessCount: success,
		FailedCount:  failed,
		ErrorDetails: itemErrors,
		Metadata:     run.metadata,
	}

	created, err := run.repo.Create(ctx, rec)
	if err != nil {
		slog.Error("Failed to write execution record",
			"job_type", run.jobType, "status", status, "error", err)
		return rec
	}
	return created
}
