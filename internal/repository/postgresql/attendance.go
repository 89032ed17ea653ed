package postgresql

import (
	"context"
	"fmt"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/attendance"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) CountBillable(ctx context.Context, sessionID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE session_id = $1 AND status <> $2
	`

	var count int
	err := q.QueryRow(ctx, query, sessionID, attendance.StatusExcused).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count billable attendance: %w", err)
	}

	return count, nil
}

func (r *attendanceRepository) ListBySessionID(ctx context.Context, sessionID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, student_id, status, created_at, updated_at
		FROM attendance_records
		WHERE session_id = $1
		ORDER BY student_id
	`

	rows, err := q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.StudentID, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}
