package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
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
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")

	// Attendance conflicts
	case errors.Is(err, attendance.ErrAlreadyCheckedInPendingCheckout),
		errors.Is(err, attendance.ErrAlreadyCheckedInToday),
		errors.Is(err, attendance.ErrNotCheckedInToday),
		errors.Is(err, attendance.ErrAlreadyCheckedOutToday),
		errors.Is(err, attendance.ErrNoActiveCheckInFound),
		errors.Is(err, attendance.ErrRecordConflict):
		Conflict(w, err.Error())

	// Attendance rejections carry the concrete distance or window in the message
	case errors.Is(err, attendance.ErrOutsideOfficeRadius),
		errors.Is(err, attendance.ErrOutsideCheckInWindow),
		errors.Is(err, attendance.ErrOutsideCheckOutWindow):
		Forbidden(w, err.Error())

	// Settings not configured by admin
	case errors.Is(err, attendance.ErrOfficeLocationNotConfigured),
		errors.Is(err, attendance.ErrScheduleNotConfigured):
		PreconditionFailed(w, err.Error())
	case errors.Is(err, location.ErrOfficeLocationNotFound):
		NotFound(w, "Office location not configured")
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Attendance schedule not configured")

	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, err.Error(), map[string]string{"date": "must be YYYY-MM-DD"})
	case errors.Is(err, schedule.ErrInvalidClockTime),
		errors.Is(err, schedule.ErrWindowEndBeforeStart):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, attendance.ErrQueryFailed):
		slog.Error("Attendance query failed", "error", err)
		InternalServerError(w, "Failed to retrieve attendance records")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
