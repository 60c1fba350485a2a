package schedule

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type UpdateScheduleRequest struct {
	CheckInStart  string `json:"check_in_start" validate:"required,clocktime"`
	CheckInEnd    string `json:"check_in_end" validate:"required,clocktime"`
	CheckOutStart string `json:"check_out_start" validate:"required,clocktime"`
	CheckOutEnd   string `json:"check_out_end" validate:"required,clocktime"`
}

func (r *UpdateScheduleRequest) Validate() error {
	if err := validator.ValidateStruct(r); err != nil {
		return err
	}

	s, err := r.ToSchedule()
	if err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if s.CheckInEnd < s.CheckInStart {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_end",
			Message: "check_in_end must not be before check_in_start",
		})
	}
	if s.CheckOutEnd < s.CheckOutStart {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_end",
			Message: "check_out_end must not be before check_out_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToSchedule converts the request strings into clock times once, at the boundary.
func (r *UpdateScheduleRequest) ToSchedule() (AttendanceSchedule, error) {
	var s AttendanceSchedule
	var err error

	if s.CheckInStart, err = ParseClockTime(r.CheckInStart); err != nil {
		return AttendanceSchedule{}, err
	}
	if s.CheckInEnd, err = ParseClockTime(r.CheckInEnd); err != nil {
		return AttendanceSchedule{}, err
	}
	if s.CheckOutStart, err = ParseClockTime(r.CheckOutStart); err != nil {
		return AttendanceSchedule{}, err
	}
	if s.CheckOutEnd, err = ParseClockTime(r.CheckOutEnd); err != nil {
		return AttendanceSchedule{}, err
	}

	return s, nil
}

type WindowResponse struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	EarliestAllowed string `json:"earliest_allowed"`
	LatestAllowed   string `json:"latest_allowed"`
}

type ScheduleResponse struct {
	CheckInStart  string         `json:"check_in_start"`
	CheckInEnd    string         `json:"check_in_end"`
	CheckOutStart string         `json:"check_out_start"`
	CheckOutEnd   string         `json:"check_out_end"`
	BufferMinutes int            `json:"buffer_minutes"`
	CheckIn       WindowResponse `json:"check_in"`
	CheckOut      WindowResponse `json:"check_out"`
	UpdatedAt     string         `json:"updated_at,omitempty"`
}

func NewWindowResponse(w Window) WindowResponse {
	return WindowResponse{
		Start:           w.Start.String(),
		End:             w.End.String(),
		EarliestAllowed: w.EarliestAllowed().String(),
		LatestAllowed:   w.LatestAllowed().String(),
	}
}

func NewScheduleResponse(s AttendanceSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		CheckInStart:  s.CheckInStart.String(),
		CheckInEnd:    s.CheckInEnd.String(),
		CheckOutStart: s.CheckOutStart.String(),
		CheckOutEnd:   s.CheckOutEnd.String(),
		BufferMinutes: BufferMinutes,
		CheckIn:       NewWindowResponse(s.CheckInWindow()),
		CheckOut:      NewWindowResponse(s.CheckOutWindow()),
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
