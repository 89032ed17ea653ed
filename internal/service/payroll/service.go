package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payroll"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/period"
	executionservice "github.com/brightpath-edu/tutoring-backend-go/internal/service/execution"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AggregatorServiceImpl struct {
	payoutRepo  payout.PayoutRepository
	payrollRepo payroll.PayrollRepository
	recorder    *executionservice.Recorder
}

func NewAggregatorService(
	payoutRepo payout.PayoutRepository,
	payrollRepo payroll.PayrollRepository,
	recorder *executionservice.Recorder,
) payroll.AggregatorService {
	return &AggregatorServiceImpl{
		payoutRepo:  payoutRepo,
		payrollRepo: payrollRepo,
		recorder:    recorder,
	}
}

// Run batches the previous calendar month's calculated payouts into one
// pending statement per teacher. A teacher whose payouts were claimed
// between the scan and the re-fetch is skipped, not failed.
func (s *AggregatorServiceImpl) Run(ctx context.Context, now time.Time) (execution.Record, error) {
	month := period.PreviousMonth(now)

	run := s.recorder.Begin(execution.JobTypePayrollAggregation, now, map[string]any{
		"period_start": month.Start.Format(time.RFC3339),
		"period_end":   month.End.Format(time.RFC3339),
	})

	teacherIDs, err := s.payoutRepo.ListTeacherIDsWithCalculated(ctx, month.Start, month.End)
	if err != nil {
		setupErr := fmt.Errorf("failed to list teachers for payroll aggregation: %w", err)
		slog.Error("Payroll aggregation aborted", "period", month.String(), "error", setupErr)
		return run.Abort(ctx, setupErr), setupErr
	}

	slog.Info("Payroll aggregation started", "period", month.String(), "teachers", len(teacherIDs))

	for _, teacherID := range teacherIDs {
		if err := s.aggregateTeacher(ctx, teacherID, month, now); err != nil {
			if errors.Is(err, payroll.ErrNoPayoutsToBatch) {
				slog.Info("No payouts left to batch for teacher, skipping", "teacher_id", teacherID)
				continue
			}
			slog.Error("Failed to aggregate payroll for teacher",
				"teacher_id", teacherID, "error", err)
			run.Fail(teacherID, err)
			continue
		}
		run.Success()
	}

	rec := run.Finish(ctx)
	slog.Info("Payroll aggregation finished",
		"status", rec.Status, "total", rec.TotalItems,
		"success", rec.SuccessCount, "failed", rec.FailedCount)
	return rec, nil
}

func (s *AggregatorServiceImpl) aggregateTeacher(ctx context.Context, teacherID string, month period.Month, now time.Time) error {
	payouts, err := s.payoutRepo.ListCalculatedByTeacher(ctx, teacherID, month.Start, month.End)
	if err != nil {
		return fmt.Errorf("failed to list calculated payouts: %w", err)
	}
	if len(payouts) == 0 {
		return payroll.ErrNoPayoutsToBatch
	}

	total := decimal.Zero
	payoutIDs := make([]string, 0, len(payouts))
	for _, p := range payouts {
		total = total.Add(p.TeacherPayout)
		payoutIDs = append(payoutIDs, p.ID)
	}

	stmt := payroll.Statement{
		ID:          uuid.Must(uuid.NewV7()).String(),
		TeacherID:   teacherID,
		PeriodStart: month.Start,
		PeriodEnd:   month.End,
		TotalAmount: total,
		Status:      payroll.StatusPending,
		Details: payroll.ComputedDetails{
			SessionCount: len(payouts),
			PayoutIDs:    payoutIDs,
			GeneratedAt:  now,
		},
		Bonuses:    decimal.Zero,
		Deductions: decimal.Zero,
	}

	if _, err := s.payrollRepo.CreateStatementWithPayouts(ctx, stmt, payoutIDs); err != nil {
		return err
	}

	return nil
}

func (s *AggregatorServiceImpl) GetStatement(ctx context.Context, id string) (payroll.StatementResponse, error) {
	stmt, err := s.payrollRepo.GetStatementByID(ctx, id)
	if err != nil {
		return payroll.StatementResponse{}, err
	}
	return toStatementResponse(stmt), nil
}

func (s *AggregatorServiceImpl) ListStatements(ctx context.Context, filter payroll.ListFilter) (payroll.ListStatementResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListStatementResponse{}, err
	}

	statements, totalCount, err := s.payrollRepo.ListStatements(ctx, filter)
	if err != nil {
		return payroll.ListStatementResponse{}, err
	}

	data := make([]payroll.StatementResponse, 0, len(statements))
	for _, stmt := range statements {
		data = append(data, toStatementResponse(stmt))
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	return payroll.ListStatementResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
	}, nil
}

func toStatementResponse(stmt payroll.Statement) payroll.StatementResponse {
	return payroll.StatementResponse{
		ID:           stmt.ID,
		TeacherID:    stmt.TeacherID,
		PeriodStart:  stmt.PeriodStart.Format(time.RFC3339),
		PeriodEnd:    stmt.PeriodEnd.Format(time.RFC3339),
		TotalAmount:  stmt.TotalAmount,
		Status:       string(stmt.Status),
		SessionCount: stmt.Details.SessionCount,
		PayoutIDs:    stmt.Details.PayoutIDs,
		GeneratedAt:  stmt.Details.GeneratedAt.Format(time.RFC3339),
		Bonuses:      stmt.Bonuses,
		Deductions:   stmt.Deductions,
	}
}
