package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BufferMinutes widens every window on both sides for admission. It never affects lateness.
const BufferMinutes = 15

const minutesPerDay = 24 * 60

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

// ParseClockTime parses HH:MM or HH:MM:SS. Seconds are validated and dropped.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, len(parts))
	for i, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 || v > limits[i] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
		}
		values[i] = v
	}

	return ClockTime(values[0]*60 + values[1]), nil
}

// MustParseClockTime is ParseClockTime for literals known to be valid.
func MustParseClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) Minutes() int {
	return int(c)
}

// String renders HH:MM, wrapping values outside a single day.
func (c ClockTime) String() string {
	m := ((int(c) % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Window is a named time-of-day range with a symmetric admission buffer.
type Window struct {
	Name   string
	Start  ClockTime
	End    ClockTime
	Buffer int
}

func NewWindow(name string, start, end ClockTime) Window {
	return Window{Name: name, Start: start, End: end, Buffer: BufferMinutes}
}

// Contains reports whether minuteOfDay lies within the buffered window, bounds included.
func (w Window) Contains(minuteOfDay int) bool {
	return w.EarliestAllowed().Minutes() <= minuteOfDay && minuteOfDay <= w.LatestAllowed().Minutes()
}

// IsLate reports whether minuteOfDay is strictly after the unbuffered start.
func (w Window) IsLate(minuteOfDay int) bool {
	return minuteOfDay > w.Start.Minutes()
}

// EarliestAllowed is the buffered start, held at 00:00. Minutes before
// midnight belong to the previous work date and can never be admitted.
func (w Window) EarliestAllowed() ClockTime {
	if earliest := w.Start - ClockTime(w.Buffer); earliest > 0 {
		return earliest
	}
	return 0
}

// LatestAllowed is the buffered end, held at 23:59.
func (w Window) LatestAllowed() ClockTime {
	if latest := w.End + ClockTime(w.Buffer); latest < minutesPerDay-1 {
		return latest
	}
	return minutesPerDay - 1
}

// AttendanceSchedule is the single active set of check-in and check-out windows.
type AttendanceSchedule struct {
	CheckInStart  ClockTime
	CheckInEnd    ClockTime
	CheckOutStart ClockTime
	CheckOutEnd   ClockTime
	UpdatedAt     time.Time
}

func (s AttendanceSchedule) CheckInWindow() Window {
	return NewWindow("check-in", s.CheckInStart, s.CheckInEnd)
}

func (s AttendanceSchedule) CheckOutWindow() Window {
	return NewWindow("check-out", s.CheckOutStart, s.CheckOutEnd)
}

// Validate rejects windows that end before they start. Windows crossing midnight are not supported.
func (s AttendanceSchedule) Validate() error {
	if s.CheckInEnd < s.CheckInStart {
		return fmt.Errorf("%w: check-in %s - %s", ErrWindowEndBeforeStart, s.CheckInStart, s.CheckInEnd)
	}
	if s.CheckOutEnd < s.CheckOutStart {
		return fmt.Errorf("%w: check-out %s - %s", ErrWindowEndBeforeStart, s.CheckOutStart, s.CheckOutEnd)
	}
	return nil
}
