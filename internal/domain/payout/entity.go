package payout

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	// StatusCalculated - created by the calculator, not yet batched.
	StatusCalculated Status = "calculated"
	// StatusBatched - linked into a payroll statement by the aggregator.
	StatusBatched Status = "batched"
	// StatusPaid - set by the external payment workflow.
	StatusPaid Status = "paid"
)

// Payout - computed teacher compensation for one ended session. At most
// one payout ever exists per session (unique session id). Created once by
// the calculator; only the aggregator mutates it (status + payroll id);
// the pipeline never deletes it.
type Payout struct {
	ID            string
	SessionID     string
	TeacherID     string
	FeePerStudent decimal.Decimal
	BillableCount int
	TotalRevenue  decimal.Decimal
	PayoutRate    decimal.Decimal
	TeacherPayout decimal.Decimal
	CalculatedAt  time.Time
	Status        Status
	PayrollID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
