package payout

import (
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ListFilter struct {
	TeacherID string
	Status    string
	Page      int
	Limit     int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	switch Status(f.Status) {
	case "", StatusCalculated, StatusBatched, StatusPaid:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of 'calculated', 'batched', 'paid'"})
	}
	if f.TeacherID != "" && !validator.IsValidUUID(f.TeacherID) {
		errs = append(errs, validator.ValidationError{Field: "teacher_id", Message: "must be a valid UUID"})
	}
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be non-negative"})
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayoutResponse struct {
	ID            string          `json:"id"`
	SessionID     string          `json:"session_id"`
	TeacherID     string          `json:"teacher_id"`
	FeePerStudent decimal.Decimal `json:"fee_per_student"`
	BillableCount int             `json:"billable_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PayoutRate    decimal.Decimal `json:"payout_rate"`
	TeacherPayout decimal.Decimal `json:"teacher_payout"`
	CalculatedAt  string          `json:"calculated_at"`
	Status        string          `json:"status"`
	PayrollID     *string         `json:"payroll_id,omitempty"`
}

type ListPayoutResponse struct {
	Data       []PayoutResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

type AttendanceDetail struct {
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
	Billable  bool   `json:"billable"`
}

// PayoutDetailResponse explains a single payout: the session and class
// it was computed from plus the per-student attendance breakdown behind
// the billable count.
type PayoutDetailResponse struct {
	Payout        PayoutResponse     `json:"payout"`
	SessionDate   string             `json:"session_date"`
	SessionStatus string             `json:"session_status"`
	ClassName     string             `json:"class_name"`
	Attendance    []AttendanceDetail `json:"attendance"`
}
