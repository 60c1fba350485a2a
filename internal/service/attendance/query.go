package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/workday"
	"golang.org/x/sync/errgroup"
)

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, userID string) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", attendance.ErrQueryFailed, err)
	}
	return attendance.NewAttendanceResponses(records, a.calendar), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListAllWithUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", attendance.ErrQueryFailed, err)
	}
	return attendance.NewAttendanceResponses(records, a.calendar), nil
}

// DailyRoster implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DailyRoster(ctx context.Context, date string) (attendance.DailyRosterResponse, error) {
	workDate, err := a.resolveDate(date)
	if err != nil {
		return attendance.DailyRosterResponse{}, err
	}

	var (
		users   []user.User
		records []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		users, err = a.UserRepository.ListNonAdmin(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		records, err = a.AttendanceRepository.ListByDateWithUser(gCtx, workDate)
		return err
	})

	if err := g.Wait(); err != nil {
		return attendance.DailyRosterResponse{}, fmt.Errorf("%w: %w", attendance.ErrQueryFailed, err)
	}

	byUser := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		byUser[r.UserID] = r
	}

	roster := attendance.DailyRosterResponse{
		Date:    workday.FormatDate(workDate),
		Entries: make([]attendance.RosterEntryResponse, 0, len(users)),
	}

	for _, u := range users {
		entry := attendance.RosterEntryResponse{
			UserID:   u.ID,
			Username: u.Username,
			FullName: u.FullName,
		}

		record, ok := byUser[u.ID]
		if ok {
			id := record.ID
			entry.AttendanceID = &id
			entry.CheckInTime = a.calendar.FormatPtr(record.CheckInTime)
			entry.CheckOutTime = a.calendar.FormatPtr(record.CheckOutTime)
			entry.CheckInLatitude = record.CheckInLatitude
			entry.CheckInLongitude = record.CheckInLongitude
			entry.CheckOutLatitude = record.CheckOutLatitude
			entry.CheckOutLongitude = record.CheckOutLongitude
			entry.Status = string(record.EffectiveStatus())
		} else {
			entry.Status = string(attendance.DeriveStatus(nil, nil))
		}

		switch attendance.Status(entry.Status) {
		case attendance.StatusPresent:
			roster.Present++
		case attendance.StatusLate:
			roster.Late++
		case attendance.StatusAbsent:
			roster.Absent++
		}

		roster.Entries = append(roster.Entries, entry)
	}
	roster.Total = len(roster.Entries)

	return roster, nil
}

// resolveDate parses YYYY-MM-DD, defaulting to today's work date.
func (a *AttendanceServiceImpl) resolveDate(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return a.calendar.Date(a.now()), nil
	}
	d, err := workday.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", attendance.ErrInvalidDate, date)
	}
	return d, nil
}
