package schedule

import "context"

// ScheduleService manages the attendance windows (admin).
type ScheduleService interface {
	GetSchedule(ctx context.Context) (ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)
}
