package http

import (
	"net/http"
	"time"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payroll"
	"github.com/brightpath-edu/tutoring-backend-go/internal/handler/http/response"
)

// JobHandler lets operators trigger the batch jobs outside their
// schedule, typically to re-run after a failed execution. Both jobs are
// idempotent, so an extra trigger is safe.
type JobHandler interface {
	RunPayoutCalculation(w http.ResponseWriter, r *http.Request)
	RunPayrollAggregation(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	calculatorService payout.CalculatorService
	aggregatorService payroll.AggregatorService
	location          *time.Location
}

func NewJobHandler(
	calculatorService payout.CalculatorService,
	aggregatorService payroll.AggregatorService,
	location *time.Location,
) JobHandler {
	return &jobHandlerImpl{
		calculatorService: calculatorService,
		aggregatorService: aggregatorService,
		location:          location,
	}
}

func (h *jobHandlerImpl) RunPayoutCalculation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.calculatorService.Run(r.Context(), time.Now().In(h.location))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payout calculation completed", toRecordResponse(rec))
}

func (h *jobHandlerImpl) RunPayrollAggregation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.aggregatorService.Run(r.Context(), time.Now().In(h.location))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll aggregation completed", toRecordResponse(rec))
}

func toRecordResponse(rec execution.Record) execution.RecordResponse {
	return execution.RecordResponse{
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
	}
}
