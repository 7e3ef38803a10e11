package schedule

import "time"

// Day is one orderable calendar day inside the horizon.
type Day struct {
	Date  time.Time `json:"-"`
	Key   string    `json:"key"`
	Label string    `json:"label"`
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EnumerateDays lists every calendar day from the horizon's start day
// through its end day inclusive. Days are stepped with AddDate rather
// than 24h offsets so a DST transition inside the horizon cannot skip
// or duplicate a day. An inverted horizon yields no days.
func EnumerateDays(h Horizon) []Day {
	first := startOfDay(h.Start)
	last := startOfDay(h.End)
	if first.After(last) {
		return nil
	}

	var days []Day
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:  d,
			Key:   d.Format("2006-01-02"),
			Label: d.Format("Mon, Jan 2"),
		})
	}
	return days
}
