package model

import (
	"fmt"
	"time"
)

// Weekday is the three-letter day code stored with working intervals.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Weekdays lists all days in Monday-first order.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayRanks = map[Weekday]int{
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
	Sunday:    7,
}

// Rank returns the Monday-first ordering position (1-7), or 0 for an
// unknown code.
func (d Weekday) Rank() int {
	return weekdayRanks[d]
}

func (d Weekday) Valid() bool {
	_, ok := weekdayRanks[d]
	return ok
}

// WeekdayOf maps a calendar date to its day code. time.Weekday counts
// Sunday as 0, so the result is re-anchored to Monday-first.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ParseWeekday validates a day code coming from a request payload.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(s)
	if !d.Valid() {
		return "", fmt.Errorf("invalid day of week: %q", s)
	}
	return d, nil
}
