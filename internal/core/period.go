package core

import (
	"errors"
	"time"
)

// Period selects the aggregation window relative to the current date.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

var ErrInvalidPeriod = errors.New("invalid period")

// ParsePeriod validates a period name coming from a chat command.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), nil
	}
	return "", ErrInvalidPeriod
}

// DateOnly truncates t to its local calendar date at midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Contains reports whether date falls inside the period ending at today.
// Both arguments are compared as naive local dates.
//
// The week window starts on Monday and is truncated at today, so mid-week it
// covers only the elapsed part of the ISO week.
func (p Period) Contains(date, today time.Time) bool {
	date, today = DateOnly(date), DateOnly(today)
	switch p {
	case PeriodDay:
		return date.Equal(today)
	case PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7 // days since Monday
		start := today.AddDate(0, 0, -offset)
		return !date.Before(start) && !date.After(today)
	case PeriodMonth:
		return date.Year() == today.Year() && date.Month() == today.Month()
	}
	return false
}
