package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	// StatusPending is the only status the pipeline ever writes.
	StatusPending Status = "pending"
	// Approved/rejected/paid are set by the external approval workflow.
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// ComputedDetails records how a statement was assembled, for audit.
type ComputedDetails struct {
	SessionCount int       `json:"session_count"`
	PayoutIDs    []string  `json:"payout_ids"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// Statement - immutable aggregated payout statement for one teacher over
// one calendar-month billing period. TotalAmount equals the sum of the
// linked payouts' teacher payout at creation time. Bonuses and deductions
// are applied later by the external approval workflow.
type Statement struct {
	ID          string
	TeacherID   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalAmount decimal.Decimal
	Status      Status
	Details     ComputedDetails
	Bonuses     decimal.Decimal
	Deductions  decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
