package schedule

import "errors"

var (
	ErrScheduleNotFound     = errors.New("attendance schedule has not been configured")
	ErrInvalidClockTime     = errors.New("invalid time of day, use HH:MM or HH:MM:SS")
	ErrWindowEndBeforeStart = errors.New("window end must not be before its start; windows crossing midnight are not supported")
)
