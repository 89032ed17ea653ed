package payout

import (
	"context"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
)

// CalculatorService converts ended sessions into payout rows, exactly
// once per session.
type CalculatorService interface {
	// Run processes the daily window derived from now. It returns the
	// execution record of the run; the error is non-nil only when the run
	// aborted at setup (per-item failures are recorded, not returned).
	Run(ctx context.Context, now time.Time) (execution.Record, error)

	List(ctx context.Context, filter ListFilter) (ListPayoutResponse, error)

	// Get returns one payout together with the session, class and
	// attendance data it was computed from.
	Get(ctx context.Context, id string) (PayoutDetailResponse, error)
}
