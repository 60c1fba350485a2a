// Package workday maps instants to the work date and time-of-day of the
// deployment's canonical time zone. Every day boundary, window comparison and
// displayed timestamp goes through one Calendar.
package workday

import (
	"fmt"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	TimeLayout     = "15:04:05"
)

// DefaultOffset is the fixed offset used when the configured zone cannot be loaded.
const DefaultOffset = 7 * 60 * 60

type Calendar struct {
	loc *time.Location
}

func New(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// Default returns a calendar on a fixed UTC+7 offset.
func Default() Calendar {
	return New(time.FixedZone("UTC+7", DefaultOffset))
}

// Load builds a calendar for an IANA zone name.
func Load(name string) (Calendar, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Calendar{}, fmt.Errorf("load location %q: %w", name, err)
	}
	return New(loc), nil
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Date returns the work date of t as midnight UTC of the local calendar day,
// the representation used for DATE columns.
func (c Calendar) Date(t time.Time) time.Time {
	lt := t.In(c.Location())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// MinuteOfDay returns the local minutes since midnight of t. Seconds are dropped.
func (c Calendar) MinuteOfDay(t time.Time) int {
	lt := t.In(c.Location())
	return lt.Hour()*60 + lt.Minute()
}

// Format renders t in the calendar's zone.
func (c Calendar) Format(t time.Time) string {
	return t.In(c.Location()).Format(DateTimeLayout)
}

// FormatPtr is Format for optional timestamps.
func (c Calendar) FormatPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := c.Format(*t)
	return &s
}

// ParseDate parses YYYY-MM-DD into the same representation Date returns.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return d, nil
}

// FormatDate renders a work date.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
