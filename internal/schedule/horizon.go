package schedule

import "time"

// FallbackHorizon pads the horizon end when a drop has no pickup
// windows yet, so a horizon of positive length always exists.
const FallbackHorizon = time.Hour

// Horizon is the span from pre-order open to the latest window end.
type Horizon struct {
	Start time.Time
	End   time.Time
}

// Degenerate reports a horizon that cannot hold any slot. Day and slot
// enumeration return empty sequences for it instead of failing.
func (h Horizon) Degenerate() bool {
	return !h.Start.Before(h.End)
}

// ComputeHorizon derives the ordering horizon from the drop's raw open
// date/time and its normalized windows. A missing open date means
// ordering is treated as already open at now, so the countdown reads
// zero immediately. now is injected to keep the function pure.
func ComputeHorizon(openDate, openTime string, windows []Window, now time.Time) Horizon {
	var start time.Time
	if day, ok := civilDate(openDate); ok {
		start = combine(day, ParseClock(openTime))
	} else {
		start = now
	}

	var end time.Time
	for _, w := range windows {
		if !w.Usable() {
			continue
		}
		if w.EndAt.After(end) {
			end = w.EndAt
		}
	}
	if end.IsZero() {
		end = start.Add(FallbackHorizon)
	}

	return Horizon{Start: start, End: end}
}
