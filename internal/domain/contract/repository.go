package contract

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ContractRepository interface {
	// GetActiveRate returns the payout rate of the teacher's contract that
	// is effective at the given time. ErrNoActiveContract when none.
	GetActiveRate(ctx context.Context, teacherID string, at time.Time) (decimal.Decimal, error)
}
