package postgresql

import (
	"context"
	"fmt"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/class"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type classRepository struct {
	db *database.DB
}

func NewClassRepository(db *database.DB) class.ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) GetByID(ctx context.Context, id string) (class.Class, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, subject_id, fee_amount, created_at, updated_at
		FROM classes
		WHERE id = $1
	`

	var c class.Class
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.SubjectID, &c.FeeAmount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return class.Class{}, class.ErrClassNotFound
		}
		return class.Class{}, fmt.Errorf("failed to get class: %w", err)
	}

	return c, nil
}

func (r *classRepository) GetFeeAmount(ctx context.Context, id string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var fee decimal.Decimal
	err := q.QueryRow(ctx, `SELECT fee_amount FROM classes WHERE id = $1`, id).Scan(&fee)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Decimal{}, class.ErrClassNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("failed to get class fee: %w", err)
	}

	return fee, nil
}
