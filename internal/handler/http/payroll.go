package http

import (
	"net/http"
	"strconv"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payroll"
	"github.com/brightpath-edu/tutoring-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetStatement(w http.ResponseWriter, r *http.Request)
	ListStatements(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	aggregatorService payroll.AggregatorService
}

func NewPayrollHandler(aggregatorService payroll.AggregatorService) PayrollHandler {
	return &payrollHandlerImpl{aggregatorService: aggregatorService}
}

func (h *payrollHandlerImpl) GetStatement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.aggregatorService.GetStatement(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListStatements(w http.ResponseWriter, r *http.Request) {
	filter := payroll.ListFilter{
		TeacherID: r.URL.Query().Get("teacher_id"),
		Status:    r.URL.Query().Get("status"),
	}
	if page := r.URL.Query().Get("page"); page != "" {
		filter.Page, _ = strconv.Atoi(page)
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}

	result, err := h.aggregatorService.ListStatements(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}
