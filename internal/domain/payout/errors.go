package payout

import "errors"

var (
	ErrPayoutNotFound = errors.New("payout not found")
	// ErrPayoutAlreadyExists - a payout row for the session already exists.
	// Surfaces when a concurrent run inserted between selection and insert;
	// the unique session id constraint is the last line of defense.
	ErrPayoutAlreadyExists = errors.New("payout already exists for this session")
	// ErrPayoutsAlreadyBatched - some payouts were claimed by a concurrent
	// aggregation before the re-link could commit; the whole transaction is
	// rolled back.
	ErrPayoutsAlreadyBatched = errors.New("payouts already batched by a concurrent run")
)
