package payroll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payroll"
	executionservice "github.com/brightpath-edu/tutoring-backend-go/internal/service/execution"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayoutRepo struct {
	mu      sync.Mutex
	payouts map[string]*payout.Payout
	// sessionDates mirrors class_sessions.session_date, which the real
	// period queries join on. The fake must filter on it, not on
	// CalculatedAt, to match the SQL.
	sessionDates map[string]time.Time
	scanErr      error
	// claimOnScan batches every scanned payout right after the distinct
	// scan returns, simulating a concurrent run claiming them before the
	// per-teacher re-fetch.
	claimOnScan bool
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{
		payouts:      make(map[string]*payout.Payout),
		sessionDates: make(map[string]time.Time),
	}
}

func (f *fakePayoutRepo) add(p payout.Payout, sessionDate time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := p
	f.payouts[p.ID] = &cp
	f.sessionDates[p.ID] = sessionDate
}

func (f *fakePayoutRepo) Create(_ context.Context, p payout.Payout) (payout.Payout, error) {
	f.add(p, p.CalculatedAt)
	return p, nil
}

func (f *fakePayoutRepo) GetByID(_ context.Context, id string) (payout.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.payouts[id]; ok {
		return *p, nil
	}
	return payout.Payout{}, payout.ErrPayoutNotFound
}

func (f *fakePayoutRepo) GetBySessionID(_ context.Context, sessionID string) (payout.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payouts {
		if p.SessionID == sessionID {
			return *p, nil
		}
	}
	return payout.Payout{}, payout.ErrPayoutNotFound
}

func (f *fakePayoutRepo) ListTeacherIDsWithCalculated(_ context.Context, periodStart, periodEnd time.Time) ([]string, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range f.payouts {
		if p.Status != payout.StatusCalculated {
			continue
		}
		if sd := f.sessionDates[p.ID]; sd.Before(periodStart) || sd.After(periodEnd) {
			continue
		}
		if !seen[p.TeacherID] {
			seen[p.TeacherID] = true
			out = append(out, p.TeacherID)
		}
	}
	if f.claimOnScan {
		ext := "external-run"
		for _, p := range f.payouts {
			if p.Status == payout.StatusCalculated {
				p.Status = payout.StatusBatched
				p.PayrollID = &ext
			}
		}
	}
	return out, nil
}

func (f *fakePayoutRepo) ListCalculatedByTeacher(_ context.Context, teacherID string, periodStart, periodEnd time.Time) ([]payout.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payout.Payout
	for _, p := range f.payouts {
		if p.TeacherID != teacherID || p.Status != payout.StatusCalculated {
			continue
		}
		if sd := f.sessionDates[p.ID]; sd.Before(periodStart) || sd.After(periodEnd) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePayoutRepo) List(_ context.Context, _ payout.ListFilter) ([]payout.Payout, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payout.Payout
	for _, p := range f.payouts {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

// fakePayrollRepo mirrors the all-or-nothing contract of the real
// repository: on any failure no statement is stored and no payout is
// touched.
type fakePayrollRepo struct {
	mu         sync.Mutex
	payouts    *fakePayoutRepo
	statements map[string]payroll.Statement
	createErr  error
}

func newFakePayrollRepo(payouts *fakePayoutRepo) *fakePayrollRepo {
	return &fakePayrollRepo{
		payouts:    payouts,
		statements: make(map[string]payroll.Statement),
	}
}

func (f *fakePayrollRepo) CreateStatementWithPayouts(_ context.Context, stmt payroll.Statement, payoutIDs []string) (payroll.Statement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return payroll.Statement{}, f.createErr
	}

	f.payouts.mu.Lock()
	defer f.payouts.mu.Unlock()
	for _, id := range payoutIDs {
		p, ok := f.payouts.payouts[id]
		if !ok || p.Status != payout.StatusCalculated {
			return payroll.Statement{}, payout.ErrPayoutsAlreadyBatched
		}
	}
	for _, id := range payoutIDs {
		f.payouts.payouts[id].Status = payout.StatusBatched
		f.payouts.payouts[id].PayrollID = &stmt.ID
	}

	stmt.CreatedAt = time.Now()
	stmt.UpdatedAt = stmt.CreatedAt
	f.statements[stmt.ID] = stmt
	return stmt, nil
}

func (f *fakePayrollRepo) GetStatementByID(_ context.Context, id string) (payroll.Statement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if stmt, ok := f.statements[id]; ok {
		return stmt, nil
	}
	return payroll.Statement{}, payroll.ErrStatementNotFound
}

func (f *fakePayrollRepo) ListStatements(_ context.Context, filter payroll.ListFilter) ([]payroll.Statement, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payroll.Statement
	for _, stmt := range f.statements {
		if filter.TeacherID != "" && stmt.TeacherID != filter.TeacherID {
			continue
		}
		out = append(out, stmt)
	}
	return out, int64(len(out)), nil
}

type fakeExecutionRepo struct {
	records []execution.Record
}

func (f *fakeExecutionRepo) Create(_ context.Context, rec execution.Record) (execution.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeExecutionRepo) List(_ context.Context, _ execution.ListFilter) ([]execution.Record, error) {
	return f.records, nil
}

type aggregatorFixture struct {
	payouts    *fakePayoutRepo
	payrolls   *fakePayrollRepo
	executions *fakeExecutionRepo
	service    payroll.AggregatorService
}

func newAggregatorFixture() *aggregatorFixture {
	payouts := newFakePayoutRepo()
	payrolls := newFakePayrollRepo(payouts)
	executions := &fakeExecutionRepo{}
	return &aggregatorFixture{
		payouts:    payouts,
		payrolls:   payrolls,
		executions: executions,
		service:    NewAggregatorService(payouts, payrolls, executionservice.NewRecorder(executions)),
	}
}

// runTime on Dec 1st so the aggregated period is November 2024.
var runTime = time.Date(2024, 12, 1, 3, 0, 0, 0, time.UTC)

var novSessionDate = time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)

func calculatedPayout(id, teacherID, amount string) payout.Payout {
	return payout.Payout{
		ID:            id,
		SessionID:     "session-" + id,
		TeacherID:     teacherID,
		TeacherPayout: decimal.RequireFromString(amount),
		CalculatedAt:  time.Date(2024, 11, 15, 2, 0, 0, 0, time.UTC),
		Status:        payout.StatusCalculated,
	}
}

func TestAggregator_BatchesPayoutsPerTeacher(t *testing.T) {
	f := newAggregatorFixture()
	f.payouts.add(calculatedPayout("p1", "teacher-1", "320000"), novSessionDate)
	f.payouts.add(calculatedPayout("p2", "teacher-1", "180000"), novSessionDate)
	f.payouts.add(calculatedPayout("p3", "teacher-2", "90000"), novSessionDate)

	rec, err := f.service.Run(context.Background(), runTime)
	require.NoError(t, err)

	assert.Equal(t, execution.StatusSuccess, rec.Status)
	assert.Equal(t, 2, rec.TotalItems)
	assert.Equal(t, 2, rec.SuccessCount)

	statements, _, err := f.payrolls.ListStatements(context.Background(), payroll.ListFilter{TeacherID: "teacher-1"})
	require.NoError(t, err)
	require.Len(t, statements, 1)
	stmt := statements[0]
	assert.True(t, stmt.TotalAmount.Equal(decimal.RequireFromString("500000")), "total: %s", stmt.TotalAmount)
	assert.Equal(t, payroll.StatusPending, stmt.Status)
	assert.Equal(t, 2, stmt.Details.SessionCount)
	assert.ElementsMatch(t, []string{"p1", "p2"}, stmt.Details.PayoutIDs)
	assert.Equal(t, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), stmt.PeriodStart)
	assert.Equal(t, time.Date(2024, 11, 30, 23, 59, 59, 999000000, time.UTC), stmt.PeriodEnd)
	assert.True(t, stmt.Bonuses.IsZero())
	assert.True(t, stmt.Deductions.IsZero())

	for _, id := range []string{"p1", "p2"} {
		p, err := f.payouts.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, payout.StatusBatched, p.Status)
		require.NotNil(t, p.PayrollID)
		assert.Equal(t, stmt.ID, *p.PayrollID)
	}
}

func TestAggregator_SumsExactDecimals(t *testing.T) {
	f := newAggregatorFixture()
	f.payouts.add(calculatedPayout("p1", "teacher-1", "0.1"), novSessionDate)
	f.payouts.add(calculatedPayout("p2", "teacher-1", "0.2"), novSessionDate)

	_, err := f.service.Run(context.Background(), runTime)
	require.NoError(t, err)

	statements, _, err := f.payrolls.ListStatements(context.Background(), payroll.ListFilter{})
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.True(t, statements[0].TotalAmount.Equal(decimal.RequireFromString("0.3")), "total: %s", statements[0].TotalAmount)
}

func TestAggregator_SelectsBySessionDateNotCalculationDate(t *testing.T) {
	f := newAggregatorFixture()

	// November session whose payout was only calculated in December, e.g.
	// after a manual re-run. It belongs to the November statement.
	late := calculatedPayout("p1", "teacher-1", "75000")
	late.CalculatedAt = time.Date(2024, 12, 1, 2, 0, 0, 0, time.UTC)
	f.payouts.add(late, novSessionDate)

	// December session calculated before the run. Outside the period.
	early := calculatedPayout("p2", "teacher-1", "99999")
	f.payouts.add(early, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	rec, err := f.service.Run(context.Background(), runTime)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TotalItems)

	statements, _, err := f.payrolls.ListStatements(context.Background(), payroll.ListFilter{})
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.True(t, statements[0].TotalAmount.Equal(decimal.RequireFromString("75000")), "total: %s", statements[0].TotalAmount)
	assert.Equal(t, []string{"p1"}, statements[0].Details.PayoutIDs)

	p2, err := f.payouts.GetByID(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, payout.StatusCalculated, p2.Status)
}

func TestAggregator_FailedLinkLeavesNoStatement(t *testing.T) {
	f := newAggregatorFixture()
	f.payouts.add(calculatedPayout("p1", "teacher-1", "100000"), novSessionDate)
	f.payrolls.createErr = errors.New("deadlock detected")

	rec, err := f.service.Run(context.Background(), runTime)
	require.NoError(t, err)

	assert.Equal(t, execution.StatusFailed, rec.Status)
	assert.Equal(t, 1, rec.FailedCount)
	require.Len(t, rec.ErrorDetails, 1)
	assert.Equal(t, "teacher-1", rec.ErrorDetails[0].ItemID)

	statements, _, err := f.payrolls.ListStatements(context.Background(), payroll.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, statements)

	p, err := f.payouts.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, payout.StatusCalculated, p.Status)
	assert.Nil(t, p.PayrollID)
}

func TestAggregator_BatchedPayoutsNeverReselected(t *testing.T) {
	f := newAggregatorFixture()
	f.payouts.add(calculatedPayout("p1", "teacher-1", "250000"), novSessionDate)

	first, err := f.service.Run(context.Background(), runTime)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalItems)

	second, err := f.service.Run(context.Background(), runTime)
	require.NoError(t, err)
	assert.Equal(t, execution.StatusSuccess, second.Status)
	assert.Equal(t, 0, second.TotalItems)

	statements, _, err := f.payrolls.ListStatements(context.Background(), payroll.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, statements, 1)
}

func TestAggregator_SkipsTeacherClaimedBetweenScanAndFetch(t *testing.T) {
	f := newAggregatorFixture()
	f.payouts.add(calculatedPayout("p1", "teacher-1", "50000"), novSessionDate)
	f.payouts.claimOnScan = true

	rec, err := f.service.Run(context.Background(), runTime)
	require.NoError(t, err)

	// The teacher is skipped, not failed: zero items, clean run.
	assert.Equal(t, execution.StatusSuccess, rec.Status)
	assert.Equal(t, 0, rec.TotalItems)
	assert.Equal(t, 0, rec.FailedCount)

	statements, _, err := f.payrolls.ListStatements(context.Background(), payroll.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, statements)
}

func TestAggregator_ScanFailureAbortsRun(t *testing.T) {
	f := newAggregatorFixture()
	f.payouts.scanErr = errors.New("connection refused")

	rec, err := f.service.Run(context.Background(), runTime)
	require.Error(t, err)

	assert.Equal(t, execution.StatusFailed, rec.Status)
	assert.Equal(t, 0, rec.TotalItems)
	require.Len(t, rec.ErrorDetails, 1)
	assert.Contains(t, rec.ErrorDetails[0].Message, "connection refused")
	require.Len(t, f.executions.records, 1)
}

func TestAggregator_GetStatement(t *testing.T) {
	f := newAggregatorFixture()
	f.payouts.add(calculatedPayout("p1", "teacher-1", "125000"), novSessionDate)

	_, err := f.service.Run(context.Background(), runTime)
	require.NoError(t, err)

	statements, _, err := f.payrolls.ListStatements(context.Background(), payroll.ListFilter{})
	require.NoError(t, err)
	require.Len(t, statements, 1)

	resp, err := f.service.GetStatement(context.Background(), statements[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "teacher-1", resp.TeacherID)
	assert.Equal(t, string(payroll.StatusPending), resp.Status)
	assert.Equal(t, 1, resp.SessionCount)
	assert.Equal(t, []string{"p1"}, resp.PayoutIDs)

	_, err = f.service.GetStatement(context.Background(), "missing")
	assert.ErrorIs(t, err, payroll.ErrStatementNotFound)
}

func TestAggregator_ListStatementsRejectsBadFilter(t *testing.T) {
	f := newAggregatorFixture()

	_, err := f.service.ListStatements(context.Background(), payroll.ListFilter{Status: "bogus"})
	require.Error(t, err)
}
