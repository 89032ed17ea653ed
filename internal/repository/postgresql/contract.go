package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/contract"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) GetActiveRate(ctx context.Context, teacherID string, at time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payout_rate
		FROM teacher_contracts
		WHERE teacher_id = $1
			AND effective_date <= $2
			AND (end_date IS NULL OR end_date >= $2)
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var rate decimal.Decimal
	err := q.QueryRow(ctx, query, teacherID, at).Scan(&rate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Decimal{}, contract.ErrNoActiveContract
		}
		return decimal.Decimal{}, fmt.Errorf("failed to get contract rate: %w", err)
	}

	return rate, nil
}
