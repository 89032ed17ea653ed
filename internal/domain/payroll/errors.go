package payroll

import "errors"

var (
	ErrStatementNotFound = errors.New("payroll statement not found")
	// ErrNoPayoutsToBatch - the per-teacher re-fetch came back empty; the
	// teacher's payouts were already handled elsewhere and the teacher is
	// skipped, not failed.
	ErrNoPayoutsToBatch = errors.New("no calculated payouts to batch for teacher")
)
