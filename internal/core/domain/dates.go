package domain

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Day returns the calendar date of t (in t's own location) as UTC midnight,
// so that differences between days are always whole multiples of 24h.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func DateKey(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// ParseDate accepts a plain date key or any RFC3339 timestamp and returns the
// calendar day it names.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if len(s) > len(DateLayout) {
			if d, err2 := time.Parse(DateLayout, s[:len(DateLayout)]); err2 == nil {
				return d, nil
			}
		}
		return time.Time{}, err
	}
	return Day(t), nil
}

// IsDateKey reports whether s is a YYYY-MM-DD key.
func IsDateKey(s string) bool {
	if len(s) != len(DateLayout) || s[4] != '-' || s[7] != '-' {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// DaysBetween returns the number of calendar days from `from` to `to`.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}
