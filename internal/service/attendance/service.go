package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/workday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/ws"
)

// Notifier receives attendance events after successful writes.
type Notifier interface {
	Broadcast(event ws.Event)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	location.OfficeLocationRepository
	schedule.ScheduleRepository
	user.UserRepository
	calendar workday.Calendar
	notifier Notifier
	now      func() time.Time
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now().UTC()
	workDate := a.calendar.Date(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, workDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		if existing.CheckOutTime == nil {
			return a.reject("check-in", req.UserID, attendance.ErrAlreadyCheckedInPendingCheckout)
		}
		return a.reject("check-in", req.UserID, attendance.ErrAlreadyCheckedInToday)
	}

	office, err := a.OfficeLocationRepository.Get(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get office location: %w", err)
	}
	if err := validateLocation(office, req.Coordinate()); err != nil {
		return a.reject("check-in", req.UserID, err)
	}

	activeSchedule, err := a.ScheduleRepository.Get(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance schedule: %w", err)
	}
	if activeSchedule == nil {
		return a.reject("check-in", req.UserID, attendance.ErrScheduleNotConfigured)
	}

	window := activeSchedule.CheckInWindow()
	minuteOfDay := a.calendar.MinuteOfDay(now)
	if !window.Contains(minuteOfDay) {
		return a.reject("check-in", req.UserID, outsideWindow(attendance.ErrOutsideCheckInWindow, window))
	}

	status := attendance.StatusPresent
	if window.IsLate(minuteOfDay) {
		status = attendance.StatusLate
	}

	lat, lng := *req.Latitude, *req.Longitude
	created, err := a.AttendanceRepository.CreateCheckIn(ctx, attendance.Attendance{
		UserID:           req.UserID,
		WorkDate:         workDate,
		CheckInTime:      &now,
		CheckInLatitude:  &lat,
		CheckInLongitude: &lng,
		Status:           status,
	})
	if err != nil {
		// A concurrent check-in for the same day won the insert.
		if errors.Is(err, attendance.ErrRecordConflict) {
			return a.reject("check-in", req.UserID, attendance.ErrAlreadyCheckedInToday)
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	slog.Info("Attendance checked in", "user_id", req.UserID, "attendance_id", created.ID, "status", status)

	resp := attendance.NewAttendanceResponse(created, a.calendar)
	a.publish(attendance.EventCheckIn, resp)
	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now().UTC()
	workDate := a.calendar.Date(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, workDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil {
		return a.reject("check-out", req.UserID, attendance.ErrNotCheckedInToday)
	}
	if existing.CheckOutTime != nil {
		return a.reject("check-out", req.UserID, attendance.ErrAlreadyCheckedOutToday)
	}

	office, err := a.OfficeLocationRepository.Get(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get office location: %w", err)
	}
	if err := validateLocation(office, req.Coordinate()); err != nil {
		return a.reject("check-out", req.UserID, err)
	}

	activeSchedule, err := a.ScheduleRepository.Get(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance schedule: %w", err)
	}
	if activeSchedule == nil {
		return a.reject("check-out", req.UserID, attendance.ErrScheduleNotConfigured)
	}

	window := activeSchedule.CheckOutWindow()
	if !window.Contains(a.calendar.MinuteOfDay(now)) {
		return a.reject("check-out", req.UserID, outsideWindow(attendance.ErrOutsideCheckOutWindow, window))
	}

	lat, lng := *req.Latitude, *req.Longitude
	affected, err := a.AttendanceRepository.UpdateCheckOut(ctx, req.UserID, workDate, now, lat, lng)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if affected == 0 {
		return a.reject("check-out", req.UserID, attendance.ErrNoActiveCheckInFound)
	}

	updated := *existing
	updated.CheckOutTime = &now
	updated.CheckOutLatitude = &lat
	updated.CheckOutLongitude = &lng
	updated.UpdatedAt = now

	slog.Info("Attendance checked out", "user_id", req.UserID, "attendance_id", updated.ID)

	resp := attendance.NewAttendanceResponse(updated, a.calendar)
	a.publish(attendance.EventCheckOut, resp)
	return resp, nil
}

// ServerTime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ServerTime(ctx context.Context) (attendance.ServerTimeResponse, error) {
	now := a.now()
	local := now.In(a.calendar.Location())

	resp := attendance.ServerTimeResponse{
		Time:      local.Format(workday.TimeLayout),
		Date:      workday.FormatDate(a.calendar.Date(now)),
		DateTime:  a.calendar.Format(now),
		Timezone:  a.calendar.Location().String(),
		Timestamp: now.Unix(),
	}

	activeSchedule, err := a.ScheduleRepository.Get(ctx)
	if err != nil {
		return attendance.ServerTimeResponse{}, fmt.Errorf("%w: %w", attendance.ErrQueryFailed, err)
	}
	if activeSchedule != nil {
		s := schedule.NewScheduleResponse(*activeSchedule)
		resp.Schedule = &s
	}

	return resp, nil
}

// validateLocation checks the geofence. A distance equal to the radius is accepted.
func validateLocation(office *location.OfficeLocation, p utils.Coordinate) error {
	if office == nil {
		return attendance.ErrOfficeLocationNotConfigured
	}

	if !office.Covers(p) {
		return fmt.Errorf("%w (%dm from office, maximum %dm)",
			attendance.ErrOutsideOfficeRadius, int64(math.Round(office.DistanceFrom(p))), office.RadiusMeters)
	}

	return nil
}

func outsideWindow(sentinel error, w schedule.Window) error {
	return fmt.Errorf("%w: allowed between %s - %s", sentinel, w.EarliestAllowed(), w.LatestAllowed())
}

// reject logs a refused attendance attempt and returns err unchanged. Store
// failures never pass through here.
func (a *AttendanceServiceImpl) reject(action, userID string, err error) (attendance.AttendanceResponse, error) {
	slog.Info("Attendance rejected", "action", action, "user_id", userID, "reason", err.Error())
	return attendance.AttendanceResponse{}, err
}

func (a *AttendanceServiceImpl) publish(eventType string, payload interface{}) {
	if a.notifier == nil {
		return
	}
	a.notifier.Broadcast(ws.Event{Type: eventType, Payload: payload})
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	officeLocationRepo location.OfficeLocationRepository,
	scheduleRepo schedule.ScheduleRepository,
	userRepo user.UserRepository,
	calendar workday.Calendar,
	notifier Notifier,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:     attendanceRepo,
		OfficeLocationRepository: officeLocationRepo,
		ScheduleRepository:       scheduleRepo,
		UserRepository:           userRepo,
		calendar:                 calendar,
		notifier:                 notifier,
		now:                      time.Now,
	}
}
