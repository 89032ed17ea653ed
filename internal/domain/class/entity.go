package class

import (
	"time"

	"github.com/shopspring/decimal"
)

// Class - the owning class of a set of sessions. FeeAmount is the locked
// per-student fee; payouts snapshot it at calculation time, so later fee
// changes never retroactively alter an already-computed payout.
type Class struct {
	ID        string
	Name      string
	SubjectID string
	FeeAmount decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
