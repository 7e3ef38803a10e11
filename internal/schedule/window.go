package schedule

import (
	"regexp"
	"time"

	"ms-storefront/internal/models"
)

// Window is a pickup window resolved to civil instants on its own day.
type Window struct {
	ID         string
	LocationID string
	StartAt    time.Time
	EndAt      time.Time
}

// Contains reports whether at falls inside the half-open range
// [StartAt, EndAt). The window's end minute belongs to the next window.
func (w Window) Contains(at time.Time) bool {
	return !at.Before(w.StartAt) && at.Before(w.EndAt)
}

// Usable reports whether the window can bound the horizon. Inverted
// windows are skipped for boundary math but never rejected outright.
func (w Window) Usable() bool {
	return w.EndAt.After(w.StartAt)
}

var civilDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

// civilDate takes the YYYY-MM-DD prefix of raw and builds a local
// midnight from the components directly. The string is never parsed as
// UTC: round-tripping through a zoned timestamp shifts the civil day
// for anyone west of Greenwich.
func civilDate(raw string) (time.Time, bool) {
	m := civilDateRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	year := atoiOrZero(m[1])
	month := atoiOrZero(m[2])
	day := atoiOrZero(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

func combine(day time.Time, c Clock) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// NormalizeWindow converts a raw pickup-window record into a Window.
// Field-name variance is already absorbed by the model's unmarshalling;
// here only a usable date matters. Returns false when no date is
// present, in which case the record contributes nothing to the horizon.
func NormalizeWindow(raw models.PickupWindow) (Window, bool) {
	day, ok := civilDate(raw.PickupDate)
	if !ok {
		return Window{}, false
	}
	return Window{
		ID:         raw.ID,
		LocationID: raw.PickupLocationID,
		StartAt:    combine(day, ParseClock(raw.StartTime)),
		EndAt:      combine(day, ParseClock(raw.EndTime)),
	}, true
}

// NormalizeWindows drops records without a usable date and keeps the
// rest in input order.
func NormalizeWindows(raw []models.PickupWindow) []Window {
	windows := make([]Window, 0, len(raw))
	for _, r := range raw {
		if w, ok := NormalizeWindow(r); ok {
			windows = append(windows, w)
		}
	}
	return windows
}
