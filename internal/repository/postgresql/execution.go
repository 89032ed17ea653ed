package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/database"
)

type executionRepository struct {
	db *database.DB
}

func NewExecutionRepository(db *database.DB) execution.ExecutionRepository {
	return &executionRepository{db: db}
}

func (r *executionRepository) Create(ctx context.Context, rec execution.Record) (execution.Record, error) {
	q := GetQuerier(ctx, r.db)

	errorsJSON, err := json.Marshal(rec.ErrorDetails)
	if err != nil {
		return execution.Record{}, fmt.Errorf("failed to marshal error details: %w", err)
	}
	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return execution.Record{}, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO execution_records (
			id, job_type, status, started_at, completed_at, duration_ms,
			total_items, success_count, failed_count, error_details, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, job_type, status, started_at, completed_at, duration_ms,
			total_items, success_count, failed_count, error_details, metadata, created_at
	`

	var created execution.Record
	var errorsBytes, metadataBytes []byte
	err = q.QueryRow(ctx, query,
		rec.ID, rec.JobType, rec.Status, rec.StartedAt, rec.CompletedAt, rec.DurationMs,
		rec.TotalItems, rec.SuccessCount, rec.FailedCount, errorsJSON, metadataJSON,
	).Scan(
		&created.ID, &created.JobType, &created.Status, &created.StartedAt, &created.CompletedAt, &created.DurationMs,
		&created.TotalItems, &created.SuccessCount, &created.FailedCount, &errorsBytes, &metadataBytes, &created.CreatedAt,
	)
	if err != nil {
		return execution.Record{}, fmt.Errorf("failed to create execution record: %w", err)
	}

	_ = json.Unmarshal(errorsBytes, &created.ErrorDetails)
	_ = json.Unmarshal(metadataBytes, &created.Metadata)

	return created, nil
}

func (r *executionRepository) List(ctx context.Context, filter execution.ListFilter) ([]execution.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, job_type, status, started_at, completed_at, duration_ms,
			   total_items, success_count, failed_count, error_details, metadata, created_at
		FROM execution_records
	`
	args := []interface{}{}
	if filter.JobType != "" {
		query += ` WHERE job_type = $1`
		args = append(args, filter.JobType)
	}
	query += ` ORDER BY started_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list execution records: %w", err)
	}
	defer rows.Close()

	var records []execution.Record
	for rows.Next() {
		var rec execution.Record
		var errorsBytes, metadataBytes []byte
		if err := rows.Scan(
			&rec.ID, &rec.JobType, &rec.Status, &rec.StartedAt, &rec.CompletedAt, &rec.DurationMs,
			&rec.TotalItems, &rec.SuccessCount, &rec.FailedCount, &errorsBytes, &metadataBytes, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan execution record: %w", err)
		}
		_ = json.Unmarshal(errorsBytes, &rec.ErrorDetails)
		_ = json.Unmarshal(metadataBytes, &rec.Metadata)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read execution records: %w", err)
	}

	return records, nil
}
