package model

import (
	"strconv"
	"time"
)

// Day is a calendar date without time or zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDay reads the leading YYYY-MM-DD of an event date. The rest of the
// string (a time component, a zone) is ignored so a date never shifts
// across a period boundary.
func ParseDay(s string) (Day, bool) {
	if len(s) < 10 || s[4] != '-' || s[7] != '-' {
		return Day{}, false
	}
	y, err := strconv.Atoi(s[0:4])
	if err != nil {
		return Day{}, false
	}
	m, err := strconv.Atoi(s[5:7])
	if err != nil || m < 1 || m > 12 {
		return Day{}, false
	}
	d, err := strconv.Atoi(s[8:10])
	if err != nil || d < 1 || d > 31 {
		return Day{}, false
	}
	// Reject days the month does not have, such as 2024-02-31.
	if t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC); t.Day() != d {
		return Day{}, false
	}
	return Day{Year: y, Month: time.Month(m), Day: d}, true
}

func (d Day) String() string {
	return d.Time().Format(DateLayout)
}

func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the layout events are stamped with.
const DateLayout = "2006-01-02"

// Today formats t as an event date in t's own location.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}
