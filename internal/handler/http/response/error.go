package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Export errors
	var configErr *export.ConfigurationError
	if errors.As(err, &configErr) {
		BadRequest(w, configErr.Error(), nil)
		return
	}
	var inputErr *export.InputError
	if errors.As(err, &inputErr) {
		ValidationError(w, map[string]string{"data": inputErr.Error()})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrEmployeeIDAlreadyExists):
		Conflict(w, "Employee ID already registered")
	case errors.Is(err, auth.ErrResetTokenInvalid):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrGoogleLoginDisabled):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrGoogleAccountNotRegistered):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already registered")
	case errors.Is(err, user.ErrEmailUnchanged):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrEmailChangeTokenInvalid):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrCannotDeleteSelf):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrLunchAlreadyTaken),
		errors.Is(err, attendance.ErrOnLunch),
		errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrNotOnLunch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDeleteNotPermitted):
		Forbidden(w, "You do not have permission to delete this record, or it does not exist.")
	case errors.Is(err, attendance.ErrDeleteManyNotPermitted):
		Forbidden(w, "You do not have permission to delete these records, or they do not exist.")
	case errors.Is(err, attendance.ErrRecordAccessDenied):
		Forbidden(w, err.Error())

	// Summary domain errors
	case errors.Is(err, summary.ErrSummaryNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, summary.ErrSummaryAccessDenied):
		Forbidden(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
