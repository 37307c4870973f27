package entities

import "time"

// DateLayout is the layout used for calendar days in logs, messages and CLI arguments
const DateLayout = "2006-01-02"

// Day strips the time of day and location from t, returning midnight UTC of t's calendar date.
// All bonus window arithmetic is done on values produced by Day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayIn returns the calendar day that t falls on in loc
func DayIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(t.In(loc))
}

// ParseDay parses a calendar day using layout
func ParseDay(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// AddDays shifts a calendar day by n days
func AddDays(day time.Time, n int) time.Time {
	return Day(day).AddDate(0, 0, n)
}
