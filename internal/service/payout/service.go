package payout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/attendance"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/class"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/session"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/period"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/validator"
	executionservice "github.com/brightpath-edu/tutoring-backend-go/internal/service/execution"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CalculatorServiceImpl struct {
	sessionRepo    session.SessionRepository
	attendanceRepo attendance.AttendanceRepository
	classRepo      class.ClassRepository
	payoutRepo     payout.PayoutRepository
	rates          *RateResolver
	recorder       *executionservice.Recorder
}

func NewCalculatorService(
	sessionRepo session.SessionRepository,
	attendanceRepo attendance.AttendanceRepository,
	classRepo class.ClassRepository,
	payoutRepo payout.PayoutRepository,
	rates *RateResolver,
	recorder *executionservice.Recorder,
) payout.CalculatorService {
	return &CalculatorServiceImpl{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
		payoutRepo:     payoutRepo,
		rates:          rates,
		recorder:       recorder,
	}
}

// Run processes yesterday's ended sessions into payout rows. now is read
// once by the caller; both the selection window and the audit record
// derive from it.
func (s *CalculatorServiceImpl) Run(ctx context.Context, now time.Time) (execution.Record, error) {
	window := period.DailyWindow(now)

	run := s.recorder.Begin(execution.JobTypeSessionPayout, now, map[string]any{
		"window_start": window.Start.Format(time.RFC3339),
		"window_end":   window.End.Format(time.RFC3339),
	})

	sessions, err := s.sessionRepo.ListEndedWithoutPayout(ctx, window.Start, window.End)
	if err != nil {
		setupErr := fmt.Errorf("failed to list sessions for payout calculation: %w", err)
		slog.Error("Payout calculation aborted", "window", window.String(), "error", setupErr)
		return run.Abort(ctx, setupErr), setupErr
	}

	slog.Info("Payout calculation started", "window", window.String(), "sessions", len(sessions))

	for _, sess := range sessions {
		if err := s.calculateSession(ctx, sess, now); err != nil {
			slog.Error("Failed to calculate payout for session",
				"session_id", sess.ID, "error", err)
			run.Fail(sess.ID, err)
			continue
		}
		run.Success()
	}

	rec := run.Finish(ctx)
	slog.Info("Payout calculation finished",
		"status", rec.Status, "total", rec.TotalItems,
		"success", rec.SuccessCount, "failed", rec.FailedCount)
	return rec, nil
}

func (s *CalculatorServiceImpl) calculateSession(ctx context.Context, sess session.Session, now time.Time) error {
	teacherID, err := sess.EffectiveTeacherID()
	if err != nil {
		return err
	}

	billable, err := s.attendanceRepo.CountBillable(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to count billable attendance: %w", err)
	}

	fee, err := s.classRepo.GetFeeAmount(ctx, sess.ClassID)
	if err != nil {
		return fmt.Errorf("failed to get class fee: %w", err)
	}

	rate, err := s.rates.Resolve(ctx, teacherID, sess.Date)
	if err != nil {
		return err
	}

	totalRevenue := fee.Mul(decimal.NewFromInt(int64(billable)))
	teacherPayout := totalRevenue.Mul(rate)

	_, err = s.payoutRepo.Create(ctx, payout.Payout{
		ID:            uuid.Must(uuid.NewV7()).String(),
		SessionID:     sess.ID,
		TeacherID:     teacherID,
		FeePerStudent: fee,
		BillableCount: billable,
		TotalRevenue:  totalRevenue,
		PayoutRate:    rate,
		TeacherPayout: teacherPayout,
		CalculatedAt:  now,
		Status:        payout.StatusCalculated,
	})
	if err != nil {
		return err
	}

	return nil
}

func (s *CalculatorServiceImpl) List(ctx context.Context, filter payout.ListFilter) (payout.ListPayoutResponse, error) {
	if err := filter.Validate(); err != nil {
		return payout.ListPayoutResponse{}, err
	}

	payouts, totalCount, err := s.payoutRepo.List(ctx, filter)
	if err != nil {
		return payout.ListPayoutResponse{}, err
	}

	data := make([]payout.PayoutResponse, 0, len(payouts))
	for _, p := range payouts {
		data = append(data, toPayoutResponse(p))
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	return payout.ListPayoutResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
	}, nil
}

func (s *CalculatorServiceImpl) Get(ctx context.Context, id string) (payout.PayoutDetailResponse, error) {
	if !validator.IsValidUUID(id) {
		return payout.PayoutDetailResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "must be a valid UUID"},
		}
	}

	p, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return payout.PayoutDetailResponse{}, err
	}

	sess, err := s.sessionRepo.GetByID(ctx, p.SessionID)
	if err != nil {
		return payout.PayoutDetailResponse{}, err
	}

	cls, err := s.classRepo.GetByID(ctx, sess.ClassID)
	if err != nil {
		return payout.PayoutDetailResponse{}, err
	}

	records, err := s.attendanceRepo.ListBySessionID(ctx, p.SessionID)
	if err != nil {
		return payout.PayoutDetailResponse{}, err
	}

	attendanceDetails := make([]payout.AttendanceDetail, 0, len(records))
	for _, rec := range records {
		attendanceDetails = append(attendanceDetails, payout.AttendanceDetail{
			StudentID: rec.StudentID,
			Status:    string(rec.Status),
			Billable:  rec.Billable(),
		})
	}

	return payout.PayoutDetailResponse{
		Payout:        toPayoutResponse(p),
		SessionDate:   sess.Date.Format("2006-01-02"),
		SessionStatus: string(sess.Status),
		ClassName:     cls.Name,
		Attendance:    attendanceDetails,
	}, nil
}

func toPayoutResponse(p payout.Payout) payout.PayoutResponse {
	return payout.PayoutResponse{
		ID:            p.ID,
		SessionID:     p.SessionID,
		TeacherID:     p.TeacherID,
		FeePerStudent: p.FeePerStudent,
		BillableCount: p.BillableCount,
		TotalRevenue:  p.TotalRevenue,
		PayoutRate:    p.PayoutRate,
		TeacherPayout: p.TeacherPayout,
		CalculatedAt:  p.CalculatedAt.Format(time.RFC3339),
		Status:        string(p.Status),
		PayrollID:     p.PayrollID,
	}
}
