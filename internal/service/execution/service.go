package execution

import (
	"context"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
)

type ServiceImpl struct {
	repo execution.ExecutionRepository
}

func NewExecutionService(repo execution.ExecutionRepository) execution.Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, filter execution.ListFilter) ([]execution.RecordResponse, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]execution.RecordResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, execution.RecordResponse{
			ID:           rec.ID,
			JobType:      string(rec.JobType),
			Status:       string(rec.Status),
			StartedAt:    rec.StartedAt.Format(time.RFC3339),
			CompletedAt:  rec.CompletedAt.Format(time.RFC3339),
			DurationMs:   rec.DurationMs,
			TotalItems:   rec.TotalItems,
			SuccessCount: rec.SuccessCount,
			FailedCount:  rec.FailedCount,
			ErrorDetails: rec.ErrorDetails,
			Metadata:     rec.Metadata,
		})
	}

	return result, nil
}
