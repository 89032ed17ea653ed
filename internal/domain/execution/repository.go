package execution

import "context"

type ExecutionRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, error)
}

type ListFilter struct {
	JobType string
	Limit   int
}
