package attendance

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/workday"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func (r *CheckInRequest) Validate() error {
	return validateEventRequest(r.UserID, r)
}

func (r *CheckInRequest) Coordinate() utils.Coordinate {
	return utils.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

type CheckOutRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func (r *CheckOutRequest) Validate() error {
	return validateEventRequest(r.UserID, r)
}

func (r *CheckOutRequest) Coordinate() utils.Coordinate {
	return utils.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

func validateEventRequest(userID string, req interface{}) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(userID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if err := validator.ValidateStruct(req); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type AttendanceResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	Username          *string  `json:"username,omitempty"`
	FullName          *string  `json:"full_name,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       *string  `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time"`
	CheckInLatitude   *float64 `json:"check_in_latitude"`
	CheckInLongitude  *float64 `json:"check_in_longitude"`
	CheckOutLatitude  *float64 `json:"check_out_latitude"`
	CheckOutLongitude *float64 `json:"check_out_longitude"`
	Status            string   `json:"status"`
}

// NewAttendanceResponse renders timestamps in the calendar's zone.
func NewAttendanceResponse(a Attendance, cal workday.Calendar) AttendanceResponse {
	return AttendanceResponse{
		ID:                a.ID,
		UserID:            a.UserID,
		Username:          a.Username,
		FullName:          a.FullName,
		Date:              workday.FormatDate(a.WorkDate),
		CheckInTime:       cal.FormatPtr(a.CheckInTime),
		CheckOutTime:      cal.FormatPtr(a.CheckOutTime),
		CheckInLatitude:   a.CheckInLatitude,
		CheckInLongitude:  a.CheckInLongitude,
		CheckOutLatitude:  a.CheckOutLatitude,
		CheckOutLongitude: a.CheckOutLongitude,
		Status:            string(a.EffectiveStatus()),
	}
}

func NewAttendanceResponses(records []Attendance, cal workday.Calendar) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, NewAttendanceResponse(a, cal))
	}
	return responses
}

// RosterEntryResponse is one user's line in a daily roster. AttendanceID is nil
// for synthesized absent entries.
type RosterEntryResponse struct {
	UserID            string   `json:"user_id"`
	Username          string   `json:"username"`
	FullName          string   `json:"full_name"`
	AttendanceID      *string  `json:"attendance_id"`
	CheckInTime       *string  `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time"`
	CheckInLatitude   *float64 `json:"check_in_latitude"`
	CheckInLongitude  *float64 `json:"check_in_longitude"`
	CheckOutLatitude  *float64 `json:"check_out_latitude"`
	CheckOutLongitude *float64 `json:"check_out_longitude"`
	Status            string   `json:"status"`
}

type DailyRosterResponse struct {
	Date    string                `json:"date"`
	Total   int                   `json:"total"`
	Present int                   `json:"present"`
	Late    int                   `json:"late"`
	Absent  int                   `json:"absent"`
	Entries []RosterEntryResponse `json:"entries"`
}

type ServerTimeResponse struct {
	Time      string                     `json:"time"`
	Date      string                     `json:"date"`
	DateTime  string                     `json:"datetime"`
	Timezone  string                     `json:"timezone"`
	Timestamp int64                      `json:"timestamp"`
	Schedule  *schedule.ScheduleResponse `json:"schedule,omitempty"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Realtime event names published after successful writes.
const (
	EventCheckIn  = "attendance:check_in"
	EventCheckOut = "attendance:check_out"
	EventUnclosed = "attendance:unclosed"
)
