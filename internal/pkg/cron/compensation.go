package cron

import (
	"context"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payroll"
)

// CompensationJobs contains the teacher compensation batch jobs. Cadence
// and timezone are operational configuration; the jobs tick hourly and
// gate on the configured run hour (and run day for the monthly job), so
// each fires once per day/month. An extra invocation is harmless: both
// jobs select only unprocessed items.
type CompensationJobs struct {
	calculator payout.CalculatorService
	aggregator payroll.AggregatorService
	location   *time.Location

	payoutRunHour      int
	aggregationRunDay  int
	aggregationRunHour int
}

// NewCompensationJobs creates the compensation cron jobs
func NewCompensationJobs(
	calculator payout.CalculatorService,
	aggregator payroll.AggregatorService,
	location *time.Location,
	payoutRunHour int,
	aggregationRunDay int,
	aggregationRunHour int,
) *CompensationJobs {
	return &CompensationJobs{
		calculator:         calculator,
		aggregator:         aggregator,
		location:           location,
		payoutRunHour:      payoutRunHour,
		aggregationRunDay:  aggregationRunDay,
		aggregationRunHour: aggregationRunHour,
	}
}

// RegisterJobs registers the compensation jobs
func (j *CompensationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("calculate_session_payouts", 1*time.Hour, j.CalculateSessionPayouts)
	scheduler.AddJob("aggregate_monthly_payroll", 1*time.Hour, j.AggregateMonthlyPayroll)
}

// CalculateSessionPayouts converts yesterday's ended sessions into payout
// rows, once per day at the configured hour.
func (j *CompensationJobs) CalculateSessionPayouts(ctx context.Context, now time.Time) error {
	local := now.In(j.location)
	if local.Hour() != j.payoutRunHour {
		return nil
	}

	_, err := j.calculator.Run(ctx, local)
	return err
}

// AggregateMonthlyPayroll batches last month's payouts into payroll
// statements shortly after the month closes.
func (j *CompensationJobs) AggregateMonthlyPayroll(ctx context.Context, now time.Time) error {
	local := now.In(j.location)
	if local.Day() != j.aggregationRunDay || local.Hour() != j.aggregationRunHour {
		return nil
	}

	_, err := j.aggregator.Run(ctx, local)
	return err
}
