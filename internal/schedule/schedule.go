package schedule

import (
	"errors"
	"time"
)

var (
	ErrClosedDay = errors.New("clinic closed on that day")
	ErrPastDate  = errors.New("date in the past")
)

// Policy decides which calendar dates can be requested. A disabled policy
// accepts everything, leaving the check to the booking form.
type Policy struct {
	Enabled    bool
	Location   *time.Location
	ClosedDays []time.Weekday
}

func NewPolicy(enabled bool, loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{
		Enabled:    enabled,
		Location:   loc,
		ClosedDays: []time.Weekday{time.Friday},
	}
}

// CalendarDate keeps the year, month and day of t and drops the rest.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (p Policy) IsClosed(date time.Time) bool {
	for _, day := range p.ClosedDays {
		if date.Weekday() == day {
			return true
		}
	}
	return false
}

// IsDatePast compares calendar dates in the clinic's time zone; today is not past.
func (p Policy) IsDatePast(date time.Time, now time.Time) bool {
	local := now.In(p.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return CalendarDate(date).Before(today)
}

func (p Policy) Check(date time.Time, now time.Time) error {
	if !p.Enabled {
		return nil
	}
	date = CalendarDate(date)
	if p.IsDatePast(date, now) {
		return ErrPastDate
	}
	if p.IsClosed(date) {
		return ErrClosedDay
	}
	return nil
}
