package schedule

import "time"

// SlotInterval is the spacing between offered pickup times.
const SlotInterval = 15 * time.Minute

// Slot is one selectable pickup time. WindowID names the pickup window
// covering the instant, or stays empty when no window does — an open
// slot is still selectable.
type Slot struct {
	At       time.Time `json:"at"`
	Label    string    `json:"label"`
	WindowID string    `json:"windowId,omitempty"`
}

// GenerateSlots produces the slots for one day, clipped to the horizon:
// the first day starts at the horizon start, the last day ends at the
// horizon end, any other day runs midnight to midnight. Steps are
// anchored at the clipped start, so a 09:07 opening yields 09:07,
// 09:22, ... rather than snapping to the quarter hour. The final
// partial step is dropped.
func GenerateSlots(day Day, h Horizon, windows []Window) []Slot {
	if h.Degenerate() {
		return nil
	}

	from := day.Date
	if sameDay(day.Date, h.Start) {
		from = h.Start
	}
	to := day.Date.AddDate(0, 0, 1)
	if sameDay(day.Date, h.End) {
		to = h.End
	}
	if !from.Before(to) {
		return nil
	}

	var slots []Slot
	for at := from; at.Before(to); at = at.Add(SlotInterval) {
		slots = append(slots, Slot{
			At:       at,
			Label:    at.Format("3:04 PM"),
			WindowID: coveringWindowID(at, windows),
		})
	}
	return slots
}

// coveringWindowID returns the id of the first window whose half-open
// [StartAt, EndAt) range contains at.
func coveringWindowID(at time.Time, windows []Window) string {
	for _, w := range windows {
		if w.Contains(at) {
			return w.ID
		}
	}
	return ""
}
