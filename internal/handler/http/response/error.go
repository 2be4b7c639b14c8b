package response

import (
	"errors"
	"net/http"

	"github.com/fspro/attendance-backend-go/internal/domain/auth"
	"github.com/fspro/attendance-backend-go/internal/domain/lateattendance"
	"github.com/fspro/attendance-backend-go/internal/domain/user"
	"github.com/fspro/attendance-backend-go/internal/pkg/validator"
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
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Late attendance domain errors
	case errors.Is(err, lateattendance.ErrMissingReason):
		BadRequest(w, "A reason is required for a late check-in", nil)
	case errors.Is(err, lateattendance.ErrInvalidTimeFormat):
		BadRequest(w, "Time is not in a recognized format", nil)
	case errors.Is(err, lateattendance.ErrAlreadyCheckedIn):
		Conflict(w, "An open late check-in already exists for this day")
	case errors.Is(err, lateattendance.ErrNoOpenRecord):
		NotFound(w, "No open late check-in record found")
	case errors.Is(err, lateattendance.ErrRecordNotFound):
		NotFound(w, "Late check-in record not found")
	case errors.Is(err, lateattendance.ErrAlreadyProcessed):
		Conflict(w, "Late check-in record already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
