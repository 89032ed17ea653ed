package execution

import "context"

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]RecordResponse, error)
}

type RecordResponse struct {
	ID           string         `json:"id"`
	JobType      string         `json:"job_type"`
	Status       string         `json:"status"`
	StartedAt    string         `json:"started_at"`
	CompletedAt  string         `json:"completed_at"`
	DurationMs   int64          `json:"duration_ms"`
	TotalItems   int            `json:"total_items"`
	SuccessCount int            `json:"success_count"`
	FailedCount  int            `json:"failed_count"`
	ErrorDetails []ItemError    `json:"error_details,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
