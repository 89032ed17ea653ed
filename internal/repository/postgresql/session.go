package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/session"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) session.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) ListEndedWithoutPayout(ctx context.Context, from, to time.Time) ([]session.Session, error) {
	q := GetQuerier(ctx, r.db)

	// The anti-join on session_payouts is the selection filter that makes
	// re-runs idempotent: an already-paid-out session is never selected.
	query := `
		SELECT s.id, s.class_id, s.session_date, s.start_time, s.end_time,
			   s.status, s.teacher_id, s.substitute_teacher_id, s.created_at, s.updated_at
		FROM class_sessions s
		LEFT JOIN session_payouts p ON p.session_id = s.id
		WHERE s.session_date >= $1 AND s.session_date < $2
			AND s.status = $3
			AND p.id IS NULL
		ORDER BY s.session_date, s.start_time
	`

	rows, err := q.Query(ctx, query, from, to, session.StatusEnded)
	if err != nil {
		return nil, fmt.Errorf("failed to list ended sessions without payout: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		var s session.Session
		if err := rows.Scan(
			&s.ID, &s.ClassID, &s.Date, &s.StartTime, &s.EndTime,
			&s.Status, &s.TeacherID, &s.SubstituteTeacherID, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	return sessions, nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, class_id, session_date, start_time, end_time,
			   status, teacher_id, substitute_teacher_id, created_at, updated_at
		FROM class_sessions
		WHERE id = $1
	`

	var s session.Session
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ClassID, &s.Date, &s.StartTime, &s.EndTime,
		&s.Status, &s.TeacherID, &s.SubstituteTeacherID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return session.Session{}, session.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	return s, nil
}
