package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{ScheduleRepository: scheduleRepo}
}

// GetSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context) (schedule.ScheduleResponse, error) {
	active, err := s.ScheduleRepository.Get(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get attendance schedule: %w", err)
	}
	if active == nil {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
	}
	return schedule.NewScheduleResponse(*active), nil
}

// UpdateSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateSchedule(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	newSchedule, err := req.ToSchedule()
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := newSchedule.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	saved, err := s.ScheduleRepository.Upsert(ctx, newSchedule)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to save attendance schedule: %w", err)
	}

	slog.Info("Attendance schedule updated",
		"check_in", fmt.Sprintf("%s-%s", saved.CheckInStart, saved.CheckInEnd),
		"check_out", fmt.Sprintf("%s-%s", saved.CheckOutStart, saved.CheckOutEnd))

	return schedule.NewScheduleResponse(saved), nil
}
