package execution

import (
	"time"
)

// JobType enum
type JobType string

const (
	JobTypeSessionPayout      JobType = "session_payout_calculation"
	JobTypePayrollAggregation JobType = "payroll_aggregation"
)

// Status enum
type Status string

const (
	StatusSuccess             Status = "success"
	StatusCompletedWithErrors Status = "completed_with_errors"
	StatusFailed              Status = "failed"
)

// ItemError - one failed item (a session or a teacher) within a run.
type ItemError struct {
	ItemID  string `json:"item_id"`
	Message string `json:"message"`
}

// Record - append-only audit row for one run of a batch job. The status
// is the primary operator-facing signal for whether a run needs
// investigation or re-invocation.
type Record struct {
	ID           string
	JobType      JobType
	Status       Status
	StartedAt    time.Time
	CompletedAt  time.Time
	DurationMs   int64
	TotalItems   int
	SuccessCount int
	FailedCount  int
	ErrorDetails []ItemError
	Metadata     map[string]any
	CreatedAt    time.Time
}

// Classify maps a run outcome to its audit status. aborted means the run
// failed before processing any item (setup error).
func Classify(aborted bool, totalItems, successCount, failedCount int) Status {
	switch {
	case aborted:
		return StatusFailed
	case totalItems > 0 && successCount == 0 && failedCount == totalItems:
		return StatusFailed
	case failedCount > 0 && failedCount < totalItems:
		return StatusCompletedWithErrors
	default:
		return StatusSuccess
	}
}
