package response

import (
	"errors"
	"net/http"

	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/class"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/contract"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payout"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/payroll"
	"github.com/brightpath-edu/tutoring-backend-go/internal/domain/session"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payout domain errors
	case errors.Is(err, payout.ErrPayoutNotFound):
		NotFound(w, "Payout not found")
	case errors.Is(err, payout.ErrPayoutAlreadyExists):
		Conflict(w, "Payout already exists for this session")
	case errors.Is(err, payout.ErrPayoutsAlreadyBatched):
		Conflict(w, "Payouts already batched by a concurrent run")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrStatementNotFound):
		NotFound(w, "Payroll statement not found")

	// Session domain errors
	case errors.Is(err, session.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, session.ErrNoTeacherAssigned):
		BadRequest(w, "Session has no assigned or substitute teacher", nil)

	// Class domain errors
	case errors.Is(err, class.ErrClassNotFound):
		NotFound(w, "Class not found")

	// Contract domain errors
	case errors.Is(err, contract.ErrNoActiveContract):
		NotFound(w, "No active contract for teacher")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
