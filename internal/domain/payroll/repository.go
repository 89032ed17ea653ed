package payroll

import (
	"context"
)

type PayrollRepository interface {
	// CreateStatementWithPayouts atomically inserts the statement and
	// re-links every payout in payoutIDs to it (status batched, payroll id
	// set). Both writes commit together or neither does. Returns
	// payout.ErrPayoutsAlreadyBatched (and rolls back) when any payout was
	// claimed by a concurrent run.
	CreateStatementWithPayouts(ctx context.Context, stmt Statement, payoutIDs []string) (Statement, error)

	GetStatementByID(ctx context.Context, id string) (Statement, error)
	ListStatements(ctx context.Context, filter ListFilter) ([]Statement, int64, error)
}
