package payout

import (
	"context"
	"time"
)

type PayoutRepository interface {
	// Create inserts a payout with status calculated. Returns
	// ErrPayoutAlreadyExists when the session already has one.
	Create(ctx context.Context, p Payout) (Payout, error)
	GetByID(ctx context.Context, id string) (Payout, error)
	GetBySessionID(ctx context.Context, sessionID string) (Payout, error)

	// ListTeacherIDsWithCalculated returns the distinct teachers that have
	// at least one calculated payout whose session date falls inside
	// [periodStart, periodEnd].
	ListTeacherIDsWithCalculated(ctx context.Context, periodStart, periodEnd time.Time) ([]string, error)

	// ListCalculatedByTeacher re-fetches the calculated payouts for one
	// teacher inside the period. The aggregator calls this per teacher
	// rather than reusing the distinct scan, so payouts claimed by a
	// concurrent run in the meantime are not double-batched.
	ListCalculatedByTeacher(ctx context.Context, teacherID string, periodStart, periodEnd time.Time) ([]Payout, error)

	List(ctx context.Context, filter ListFilter) ([]Payout, int64, error)
}
