package class

import (
	"context"

	"github.com/shopspring/decimal"
)

type ClassRepository interface {
	GetByID(ctx context.Context, id string) (Class, error)
	// GetFeeAmount returns the class's currently locked per-student fee.
	GetFeeAmount(ctx context.Context, id string) (decimal.Decimal, error)
}
