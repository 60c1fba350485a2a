package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedInPendingCheckout = errors.New("you have not checked out of your previous attendance")
	ErrAlreadyCheckedInToday           = errors.New("you have already recorded attendance today")
	ErrOutsideCheckInWindow            = errors.New("check-in is outside the allowed time")

	// Check-out errors
	ErrNotCheckedInToday      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOutToday = errors.New("you have already checked out today")
	ErrOutsideCheckOutWindow  = errors.New("check-out is outside the allowed time")
	ErrNoActiveCheckInFound   = errors.New("no active check-in found")

	// Shared validation errors
	ErrOfficeLocationNotConfigured = errors.New("office location has not been set by admin")
	ErrScheduleNotConfigured       = errors.New("attendance schedule has not been set by admin")
	ErrOutsideOfficeRadius         = errors.New("you are outside the office area")

	// Storage errors
	ErrRecordConflict = errors.New("attendance record already exists for this user and date")
	ErrQueryFailed    = errors.New("failed to query attendance records")
	ErrInvalidDate    = errors.New("invalid date, use YYYY-MM-DD")
)
