package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly drops the time-of-day component, keeping a UTC midnight instant so
// date arithmetic and equality checks stay exact. The calendar date is read
// in the value's own location; converting to UTC first could shift the day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of whole days in the half-open interval
// [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)) / (24 * time.Hour))
}

// MonthRange turns a YYYY-MM filter into the half-open interval
// [first day of month, first day of next month).
func MonthRange(mes string) (time.Time, time.Time, error) {
	parts := strings.Split(strings.TrimSpace(mes), "-")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, errors.New("mes must be YYYY-MM")
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid year in mes %q", mes)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month in mes %q", mes)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}
