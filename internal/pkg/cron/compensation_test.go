package cron

import (
	"context"
	"testing"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalculator struct {
	runs []time.Time
}

func (f *fakeCalculator) Run(_ context.Context, now time.Time) (execution.Record, error) {
	f.runs = append(f.runs, now)
	return execution.Record{Status: execution.StatusSuccess}, nil
}

func (f *fakeCalculator) List(_ context.Context, _ payout.ListFilter) (payout.ListPayoutResponse, error) {
	return payout.ListPayoutResponse{}, nil
}

func (f *fakeCalculator) Get(_ context.Context, _ string) (payout.PayoutDetailResponse, error) {
	return payout.PayoutDetailResponse{}, nil
}

type fakeAggregator struct {
	runs []time.Time
}

func (f *fakeAggregator) Run(_ context.Context, now time.Time) (execution.Record, error) {
	f.runs = append(f.runs, now)
	return execution.Record{Status: execution.StatusSuccess}, nil
}

func (f *fakeAggregator) GetStatement(_ context.Context, _ string) (payroll.StatementResponse, error) {
	return payroll.StatementResponse{}, nil
}

func (f *fakeAggregator) ListStatements(_ context.Context, _ payroll.ListFilter) (payroll.ListStatementResponse, error) {
	return payroll.ListStatementResponse{}, nil
}

func newJobs(loc *time.Location) (*CompensationJobs, *fakeCalculator, *fakeAggregator) {
	calc := &fakeCalculator{}
	agg := &fakeAggregator{}
	return NewCompensationJobs(calc, agg, loc, 2, 1, 3), calc, agg
}

func TestCalculateSessionPayouts_FiresOnlyAtRunHour(t *testing.T) {
	jobs, calc, _ := newJobs(time.UTC)

	for hour := 0; hour < 24; hour++ {
		now := time.Date(2024, 12, 7, hour, 15, 0, 0, time.UTC)
		require.NoError(t, jobs.CalculateSessionPayouts(context.Background(), now))
	}

	require.Len(t, calc.runs, 1)
	assert.Equal(t, 2, calc.runs[0].Hour())
}

func TestAggregateMonthlyPayroll_FiresOnlyOnRunDayAndHour(t *testing.T) {
	jobs, _, agg := newJobs(time.UTC)

	for day := 1; day <= 31; day++ {
		for _, hour := range []int{0, 3, 12} {
			now := time.Date(2024, 12, day, hour, 30, 0, 0, time.UTC)
			require.NoError(t, jobs.AggregateMonthlyPayroll(context.Background(), now))
		}
	}

	require.Len(t, agg.runs, 1)
	assert.Equal(t, 1, agg.runs[0].Day())
	assert.Equal(t, 3, agg.runs[0].Hour())
}

func TestCompensationJobs_GateUsesConfiguredTimezone(t *testing.T) {
	jakarta := time.FixedZone("UTC+7", 7*3600)
	jobs, calc, _ := newJobs(jakarta)

	// 19:00 UTC is 02:00 the next day in UTC+7.
	now := time.Date(2024, 12, 6, 19, 0, 0, 0, time.UTC)
	require.NoError(t, jobs.CalculateSessionPayouts(context.Background(), now))

	require.Len(t, calc.runs, 1)
	assert.Equal(t, 2, calc.runs[0].Hour())
	assert.Equal(t, 7, calc.runs[0].Day())
}
