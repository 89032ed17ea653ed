package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payroll"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const statementColumns = `id, teacher_id, period_start, period_end, total_amount,
	status, computed_details, bonuses, deductions, created_at, updated_at`

func scanStatement(row pgx.Row) (payroll.Statement, error) {
	var s payroll.Statement
	var detailsBytes []byte
	err := row.Scan(
		&s.ID, &s.TeacherID, &s.PeriodStart, &s.PeriodEnd, &s.TotalAmount,
		&s.Status, &detailsBytes, &s.Bonuses, &s.Deductions, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.Statement{}, err
	}
	_ = json.Unmarshal(detailsBytes, &s.Details)
	return s, nil
}

func (r *payrollRepository) CreateStatementWithPayouts(ctx context.Context, stmt payroll.Statement, payoutIDs []string) (payroll.Statement, error) {
	var created payroll.Statement

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		detailsJSON, err := json.Marshal(stmt.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal computed details: %w", err)
		}

		insertQuery := `
			INSERT INTO payroll_statements (
				id, teacher_id, period_start, period_end, total_amount,
				status, computed_details, bonuses, deductions
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + statementColumns

		created, err = scanStatement(q.QueryRow(txCtx, insertQuery,
			stmt.ID, stmt.TeacherID, stmt.PeriodStart, stmt.PeriodEnd, stmt.TotalAmount,
			stmt.Status, detailsJSON, stmt.Bonuses, stmt.Deductions,
		))
		if err != nil {
			return fmt.Errorf("failed to create payroll statement: %w", err)
		}

		// The status guard keeps a payout claimed by a concurrent run from
		// being re-linked; if any row is missed the whole transaction rolls
		// back, so a statement never commits without all of its payouts.
		updateQuery := `
			UPDATE session_payouts
			SET status = $1, payroll_id = $2, updated_at = NOW()
			WHERE id = ANY($3) AND status = $4
		`

		tag, err := q.Exec(txCtx, updateQuery,
			payout.StatusBatched, created.ID, payoutIDs, payout.StatusCalculated,
		)
		if err != nil {
			return fmt.Errorf("failed to link payouts to statement: %w", err)
		}
		if tag.RowsAffected() != int64(len(payoutIDs)) {
			return payout.ErrPayoutsAlreadyBatched
		}

		return nil
	})
	if err != nil {
		return payroll.Statement{}, err
	}

	return created, nil
}

func (r *payrollRepository) GetStatementByID(ctx context.Context, id string) (payroll.Statement, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanStatement(q.QueryRow(ctx, `SELECT `+statementColumns+` FROM payroll_statements WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Statement{}, payroll.ErrStatementNotFound
		}
		return payroll.Statement{}, fmt.Errorf("failed to get payroll statement: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) ListStatements(ctx context.Context, filter payroll.ListFilter) ([]payroll.Statement, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.TeacherID != "" {
		where = append(where, fmt.Sprintf("teacher_id = $%d", argPos))
		args = append(args, filter.TeacherID)
		argPos++
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	whereClause := strings.Join(where, " AND ")

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM payroll_statements WHERE ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll statements: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`SELECT %s FROM payroll_statements WHERE %s ORDER BY period_start DESC, teacher_id LIMIT $%d OFFSET $%d`,
		statementColumns, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll statements: %w", err)
	}
	defer rows.Close()

	var statements []payroll.Statement
	for rows.Next() {
		s, err := scanStatement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll statement: %w", err)
		}
		statements = append(statements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read payroll statements: %w", err)
	}

	return statements, totalCount, nil
}
