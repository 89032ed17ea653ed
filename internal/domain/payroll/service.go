package payroll

import (
	"context"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
)

// AggregatorService batches calculated payouts into immutable payroll
// statements, one per (teacher, period).
type AggregatorService interface {
	// Run aggregates the previous calendar month derived from now. It
	// returns the execution record of the run; the error is non-nil only
	// when the run aborted at setup.
	Run(ctx context.Context, now time.Time) (execution.Record, error)

	GetStatement(ctx context.Context, id string) (StatementResponse, error)
	ListStatements(ctx context.Context, filter ListFilter) (ListStatementResponse, error)
}
