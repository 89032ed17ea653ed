package http

import (
	"net/http"
	"strconv"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/execution"
	"github.com/brightpath-edu/tutoring-backend-go/internal/handler/http/response"
)

type ExecutionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type executionHandlerImpl struct {
	executionService execution.Service
}

func NewExecutionHandler(executionService execution.Service) ExecutionHandler {
	return &executionHandlerImpl{executionService: executionService}
}

func (h *executionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := execution.ListFilter{
		JobType: r.URL.Query().Get("job_type"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}

	result, err := h.executionService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
