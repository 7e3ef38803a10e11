package schedule

import (
	"fmt"
	"time"
)

// Remaining is the wait until the horizon opens, clamped at zero once
// now has reached start. Callers re-evaluate it on their own tick; the
// engine owns no timer.
func Remaining(now, start time.Time) time.Duration {
	d := start.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Countdown is the display decomposition of a remaining duration.
type Countdown struct {
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
}

// DecomposeCountdown splits d into zero-padded hour/minute/second
// fields for rendering.
func DecomposeCountdown(d time.Duration) Countdown {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)
	return Countdown{
		Hours:   fmt.Sprintf("%02d", hours),
		Minutes: fmt.Sprintf("%02d", minutes),
		Seconds: fmt.Sprintf("%02d", seconds),
	}
}
