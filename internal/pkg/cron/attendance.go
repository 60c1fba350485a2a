package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/workday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/ws"
)

// Broadcaster publishes events to the admin live feed
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// UnclosedReport is the live-feed payload for records left without a check-out
type UnclosedReport struct {
	Date    string                          `json:"date"`
	Count   int                             `json:"count"`
	Records []attendance.AttendanceResponse `json:"records"`
}

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	calendar       workday.Calendar
	broadcaster    Broadcaster
	now            func() time.Time

	mu           sync.Mutex
	lastReported time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	calendar workday.Calendar,
	broadcaster Broadcaster,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		calendar:       calendar,
		broadcaster:    broadcaster,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_unclosed_attendances", 1*time.Hour, j.ReportUnclosedAttendances)
}

// ReportUnclosedAttendances reports the previous work date's check-ins that
// never got a check-out. Records are left untouched. Each work date is
// reported once per process.
func (j *AttendanceJobs) ReportUnclosedAttendances(ctx context.Context) error {
	yesterday := j.calendar.Date(j.now()).AddDate(0, 0, -1)

	j.mu.Lock()
	if j.lastReported.Equal(yesterday) {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	slog.Info("Cron: Starting unclosed attendance report", "date", workday.FormatDate(yesterday))

	open, err := j.attendanceRepo.ListOpenByDate(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list open attendances: %w", err)
	}

	j.mu.Lock()
	j.lastReported = yesterday
	j.mu.Unlock()

	if len(open) == 0 {
		slog.Info("Cron: No unclosed attendances found", "date", workday.FormatDate(yesterday))
		return nil
	}

	for _, a := range open {
		slog.Warn("Cron: Attendance without check-out",
			"attendance_id", a.ID,
			"user_id", a.UserID,
			"date", workday.FormatDate(a.WorkDate))
	}

	if j.broadcaster != nil {
		j.broadcaster.Broadcast(ws.Event{
			Type: attendance.EventUnclosed,
			Payload: UnclosedReport{
				Date:    workday.FormatDate(yesterday),
				Count:   len(open),
				Records: attendance.NewAttendanceResponses(open, j.calendar),
			},
		})
	}

	slog.Info("Cron: Unclosed attendance report completed", "date", workday.FormatDate(yesterday), "count", len(open))
	return nil
}
