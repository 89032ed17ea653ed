package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payoutRepository struct {
	db *database.DB
}

func NewPayoutRepository(db *database.DB) payout.PayoutRepository {
	return &payoutRepository{db: db}
}

const payoutColumns = `id, session_id, teacher_id, fee_per_student, billable_count,
	total_revenue, payout_rate, teacher_payout, calculated_at, status, payroll_id,
	created_at, updated_at`

func scanPayout(row pgx.Row) (payout.Payout, error) {
	var p payout.Payout
	err := row.Scan(
		&p.ID, &p.SessionID, &p.TeacherID, &p.FeePerStudent, &p.BillableCount,
		&p.TotalRevenue, &p.PayoutRate, &p.TeacherPayout, &p.CalculatedAt, &p.Status, &p.PayrollID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payoutRepository) Create(ctx context.Context, p payout.Payout) (payout.Payout, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO session_payouts (
			id, session_id, teacher_id, fee_per_student, billable_count,
			total_revenue, payout_rate, teacher_payout, calculated_at, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + payoutColumns

	created, err := scanPayout(q.QueryRow(ctx, query,
		p.ID, p.SessionID, p.TeacherID, p.FeePerStudent, p.BillableCount,
		p.TotalRevenue, p.PayoutRate, p.TeacherPayout, p.CalculatedAt, p.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_session_payout_session") {
			return payout.Payout{}, payout.ErrPayoutAlreadyExists
		}
		return payout.Payout{}, fmt.Errorf("failed to create payout: %w", err)
	}

	return created, nil
}

func (r *payoutRepository) GetByID(ctx context.Context, id string) (payout.Payout, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayout(q.QueryRow(ctx, `SELECT `+payoutColumns+` FROM session_payouts WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payout.Payout{}, payout.ErrPayoutNotFound
		}
		return payout.Payout{}, fmt.Errorf("failed to get payout: %w", err)
	}

	return p, nil
}

func (r *payoutRepository) GetBySessionID(ctx context.Context, sessionID string) (payout.Payout, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayout(q.QueryRow(ctx, `SELECT `+payoutColumns+` FROM session_payouts WHERE session_id = $1`, sessionID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payout.Payout{}, payout.ErrPayoutNotFound
		}
		return payout.Payout{}, fmt.Errorf("failed to get payout by session: %w", err)
	}

	return p, nil
}

func (r *payoutRepository) ListTeacherIDsWithCalculated(ctx context.Context, periodStart, periodEnd time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT p.teacher_id
		FROM session_payouts p
		JOIN class_sessions s ON s.id = p.session_id
		WHERE p.status = $1
			AND s.session_date >= $2 AND s.session_date <= $3
		ORDER BY p.teacher_id
	`

	rows, err := q.Query(ctx, query, payout.StatusCalculated, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers with calculated payouts: %w", err)
	}
	defer rows.Close()

	var teacherIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan teacher id: %w", err)
		}
		teacherIDs = append(teacherIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teacher ids: %w", err)
	}

	return teacherIDs, nil
}

func (r *payoutRepository) ListCalculatedByTeacher(ctx context.Context, teacherID string, periodStart, periodEnd time.Time) ([]payout.Payout, error) {
	q := GetQuerier(ctx, r.db)

	// Row locks persist only when called inside a transaction; the
	// conditional re-link in CreateStatementWithPayouts is the final guard
	// against a concurrent aggregation either way.
	query := `
		SELECT p.id, p.session_id, p.teacher_id, p.fee_per_student, p.billable_count,
			   p.total_revenue, p.payout_rate, p.teacher_payout, p.calculated_at, p.status, p.payroll_id,
			   p.created_at, p.updated_at
		FROM session_payouts p
		JOIN class_sessions s ON s.id = p.session_id
		WHERE p.teacher_id = $1
			AND p.status = $2
			AND s.session_date >= $3 AND s.session_date <= $4
		ORDER BY s.session_date
		FOR UPDATE OF p
	`

	rows, err := q.Query(ctx, query, teacherID, payout.StatusCalculated, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculated payouts for teacher: %w", err)
	}
	defer rows.Close()

	var payouts []payout.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payout: %w", err)
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payouts: %w", err)
	}

	return payouts, nil
}

func (r *payoutRepository) List(ctx context.Context, filter payout.ListFilter) ([]payout.Payout, int64, error) {
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
	countQuery := `SELECT COUNT(*) FROM session_payouts WHERE ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payouts: %w", err)
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

	query := fmt.Sprintf(`SELECT %s FROM session_payouts WHERE %s ORDER BY calculated_at DESC LIMIT $%d OFFSET $%d`,
		payoutColumns, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payouts: %w", err)
	}
	defer rows.Close()

	var payouts []payout.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payout: %w", err)
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read payouts: %w", err)
	}

	return payouts, totalCount, nil
}
