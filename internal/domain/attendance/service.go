package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn validates and records the first attendance event of the day
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut validates and closes today's open check-in
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves the history of one user
	GetMyAttendance(ctx context.Context, userID string) ([]AttendanceResponse, error)

	// ListAttendance retrieves every non-admin record (admin)
	ListAttendance(ctx context.Context) ([]AttendanceResponse, error)

	// DailyRoster returns one entry per non-admin user for the date, empty date means today (admin)
	DailyRoster(ctx context.Context, date string) (DailyRosterResponse, error)

	// ExportDailyRoster renders DailyRoster as an xlsx workbook (admin)
	ExportDailyRoster(ctx context.Context, date string) (ExportFile, error)

	// ServerTime reports the current time in the attendance time zone
	ServerTime(ctx context.Context) (ServerTimeResponse, error)
}
