// Package schedule derives the orderable schedule of a drop: the
// horizon between pre-order open and the last pickup window, the
// calendar days it spans, and the 15-minute pickup slots per day.
// Every function is pure; parsing is permissive so a storefront stays
// renderable even when the backend hands us partial data.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

// Clock is a civil time of day.
type Clock struct {
	Hour   int
	Minute int
}

var twelveHourRe = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{1,2}))?\s*(AM|PM)\s*$`)

// ParseClock normalizes "9:30 PM", "21:30" and "13:00:00" style strings
// into a Clock. Malformed input degrades to midnight rather than
// erroring; out-of-range components are treated as absent.
func ParseClock(raw string) Clock {
	if raw == "" {
		return Clock{}
	}

	if m := twelveHourRe.FindStringSubmatch(raw); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		meridiem := strings.ToUpper(m[3])
		if meridiem == "PM" && hour < 12 {
			hour += 12
		}
		if meridiem == "AM" && hour == 12 {
			hour = 0
		}
		return clampClock(hour, minute)
	}

	parts := strings.Split(strings.TrimSpace(raw), ":")
	hour := atoiOrZero(parts[0])
	minute := 0
	if len(parts) > 1 {
		minute = atoiOrZero(parts[1])
	}
	return clampClock(hour, minute)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func clampClock(hour, minute int) Clock {
	if hour < 0 || hour > 23 {
		hour = 0
	}
	if minute < 0 || minute > 59 {
		minute = 0
	}
	return Clock{Hour: hour, Minute: minute}
}
