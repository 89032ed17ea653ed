package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// TeacherContract - per-teacher compensation terms. PayoutRate is the
// fraction of session revenue paid to the teacher while the contract is
// effective. Teachers without an active contract fall back to the
// configured default rate.
type TeacherContract struct {
	ID            string
	TeacherID     string
	PayoutRate    decimal.Decimal
	EffectiveDate time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
