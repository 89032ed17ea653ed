package payout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/contract"
	"github.com/shopspring/decimal"
)

// RateResolver picks the payout rate for a teacher: the rate of the
// contract active at the session date, falling back to the configured
// default when the teacher has no active contract.
type RateResolver struct {
	contractRepo contract.ContractRepository
	defaultRate  decimal.Decimal
}

func NewRateResolver(contractRepo contract.ContractRepository, defaultRate decimal.Decimal) *RateResolver {
	return &RateResolver{
		contractRepo: contractRepo,
		defaultRate:  defaultRate,
	}
}

func (r *RateResolver) Resolve(ctx context.Context, teacherID string, at time.Time) (decimal.Decimal, error) {
	rate, err := r.contractRepo.GetActiveRate(ctx, teacherID, at)
	if err != nil {
		if errors.Is(err, contract.ErrNoActiveContract) {
			return r.defaultRate, nil
		}
		return decimal.Decimal{}, fmt.Errorf("failed to resolve payout rate: %w", err)
	}
	return rate, nil
}
