package session

import (
	"context"
	"time"
)

type SessionRepository interface {
	// ListEndedWithoutPayout returns ended sessions with date in [from, to)
	// that have no payout row yet. The anti-join is the selection filter
	// that keeps payout calculation idempotent across re-runs.
	ListEndedWithoutPayout(ctx context.Context, from, to time.Time) ([]Session, error)
	GetByID(ctx context.Context, id string) (Session, error)
}
