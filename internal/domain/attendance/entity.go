package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent:
		return true
	}
	return false
}

type Attendance struct {
	ID                string
	UserID            string
	WorkDate          time.Time
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Join
	Username *string
	FullName *string
}

// IsOpen reports whether the record has a check-in still waiting for its check-out.
func (a *Attendance) IsOpen() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}

// EffectiveStatus returns the stored status. Rows without one fall back to DeriveStatus.
func (a *Attendance) EffectiveStatus() Status {
	if a.Status.IsValid() {
		return a.Status
	}
	return DeriveStatus(a.CheckInTime, a.CheckOutTime)
}

// LatestEvent returns the more recent of the two timestamps, or nil when neither is set.
func (a *Attendance) LatestEvent() *time.Time {
	switch {
	case a.CheckInTime == nil:
		return a.CheckOutTime
	case a.CheckOutTime == nil:
		return a.CheckInTime
	case a.CheckOutTime.After(*a.CheckInTime):
		return a.CheckOutTime
	default:
		return a.CheckInTime
	}
}

// DeriveStatus applies the null-ness rule used for rows that carry no stored status:
// a check-out without a check-in is late, any check-in is present, nothing is absent.
func DeriveStatus(checkIn, checkOut *time.Time) Status {
	switch {
	case checkIn != nil:
		return StatusPresent
	case checkOut != nil:
		return StatusLate
	default:
		return StatusAbsent
	}
}
