package schedule

import "context"

// ScheduleRepository stores the single active attendance schedule.
type ScheduleRepository interface {
	// Get returns nil without error when no schedule has been configured.
	Get(ctx context.Context) (*AttendanceSchedule, error)

	// Upsert replaces the active schedule.
	Upsert(ctx context.Context, s AttendanceSchedule) (AttendanceSchedule, error)
}
