package payroll

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
	case "", StatusPending, StatusApproved, StatusRejected, StatusPaid:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of 'pending', 'approved', 'rejected', 'paid'"})
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

type StatementResponse struct {
	ID           string          `json:"id"`
	TeacherID    string          `json:"teacher_id"`
	PeriodStart  string          `json:"period_start"`
	PeriodEnd    string          `json:"period_end"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	SessionCount int             `json:"session_count"`
	PayoutIDs    []string        `json:"payout_ids"`
	GeneratedAt  string          `json:"generated_at"`
	Bonuses      decimal.Decimal `json:"bonuses"`
	Deductions   decimal.Decimal `json:"deductions"`
}

type ListStatementResponse struct {
	Data       []StatementResponse `json:"data"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}
