package http

import (
	"net/http"
	"strconv"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayoutHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type payoutHandlerImpl struct {
	calculatorService payout.CalculatorService
}

func NewPayoutHandler(calculatorService payout.CalculatorService) PayoutHandler {
	return &payoutHandlerImpl{calculatorService: calculatorService}
}

func (h *payoutHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payout.ListFilter{
		TeacherID: r.URL.Query().Get("teacher_id"),
		Status:    r.URL.Query().Get("status"),
	}
	if page := r.URL.Query().Get("page"); page != "" {
		filter.Page, _ = strconv.Atoi(page)
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}

	result, err := h.calculatorService.List(r.Context(), filter)
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

func (h *payoutHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.calculatorService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
