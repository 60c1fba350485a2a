package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// workDate is always a calendar date produced by workday.Calendar.Date.
type AttendanceRepository interface {
	// GetByUserAndDate returns nil without error when the user has no record for the date.
	GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*Attendance, error)

	// CreateCheckIn inserts a record holding only check-in fields.
	// Returns ErrRecordConflict when (user, work date) already exists.
	CreateCheckIn(ctx context.Context, attendance Attendance) (Attendance, error)

	// UpdateCheckOut closes the user's open check-in for workDate and returns the rows affected (0 or 1).
	UpdateCheckOut(ctx context.Context, userID string, workDate time.Time, at time.Time, latitude, longitude float64) (int64, error)

	// ListByUser returns the user's records, most recent check-in first.
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListAllWithUser returns records of non-admin users joined with username and full name.
	ListAllWithUser(ctx context.Context) ([]Attendance, error)

	// ListByDateWithUser returns the records of non-admin users for one work date.
	ListByDateWithUser(ctx context.Context, workDate time.Time) ([]Attendance, error)

	// ListOpenByDate returns records for workDate that were checked in but never checked out.
	ListOpenByDate(ctx context.Context, workDate time.Time) ([]Attendance, error)
}
