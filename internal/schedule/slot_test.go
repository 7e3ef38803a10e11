package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-storefront/internal/models"
	"ms-storefront/internal/schedule"
)

func horizonOn(startHour, startMin, endHour, endMin int) schedule.Horizon {
	return schedule.Horizon{
		Start: time.Date(2025, 6, 1, startHour, startMin, 0, 0, time.Local),
		End:   time.Date(2025, 6, 1, endHour, endMin, 0, 0, time.Local),
	}
}

func TestGenerateSlotsClippedToBoundaryDay(t *testing.T) {
	h := horizonOn(9, 7, 9, 40)
	days := schedule.EnumerateDays(h)
	require.Len(t, days, 1)

	slots := schedule.GenerateSlots(days[0], h, nil)
	require.Len(t, slots, 3)

	// Steps anchor at the clipped start, not at the quarter hour.
	assert.Equal(t, "9:07 AM", slots[0].Label)
	assert.Equal(t, "9:22 AM", slots[1].Label)
	assert.Equal(t, "9:37 AM", slots[2].Label)
	for _, s := range slots {
		assert.True(t, s.At.Before(h.End), "no slot at or after the horizon end")
	}
}

func TestGenerateSlotsMiddleDayRunsFullDay(t *testing.T) {
	h := schedule.Horizon{
		Start: time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local),
		End:   time.Date(2025, 6, 3, 14, 0, 0, 0, time.Local),
	}
	days := schedule.EnumerateDays(h)
	require.Len(t, days, 3)

	slots := schedule.GenerateSlots(days[1], h, nil)
	require.Len(t, slots, 96, "a full day holds 96 quarter-hour slots")
	assert.Equal(t, "12:00 AM", slots[0].Label)
	assert.Equal(t, "11:45 PM", slots[95].Label)
}

func TestGenerateSlotsWindowAssignmentHalfOpen(t *testing.T) {
	windows := schedule.NormalizeWindows([]models.PickupWindow{
		{ID: "W1", PickupDate: "2025-06-01", StartTime: "11:00", EndTime: "12:00"},
	})
	h := horizonOn(11, 0, 13, 0)
	days := schedule.EnumerateDays(h)
	require.Len(t, days, 1)

	slots := schedule.GenerateSlots(days[0], h, windows)
	byLabel := map[string]schedule.Slot{}
	for _, s := range slots {
		byLabel[s.Label] = s
	}

	assert.Equal(t, "W1", byLabel["11:30 AM"].WindowID)
	assert.Equal(t, "", byLabel["12:00 PM"].WindowID, "slot at the window end is unassigned")
	assert.Equal(t, "", byLabel["12:15 PM"].WindowID, "open slots stay selectable without a window")
}

func TestGenerateSlotsFirstMatchingWindowWins(t *testing.T) {
	windows := schedule.NormalizeWindows([]models.PickupWindow{
		{ID: "W1", PickupDate: "2025-06-01", StartTime: "11:00", EndTime: "12:00"},
		{ID: "W2", PickupDate: "2025-06-01", StartTime: "11:30", EndTime: "13:00"},
	})
	h := horizonOn(11, 0, 13, 0)
	days := schedule.EnumerateDays(h)

	slots := schedule.GenerateSlots(days[0], h, windows)
	for _, s := range slots {
		if s.Label == "11:30 AM" {
			assert.Equal(t, "W1", s.WindowID)
		}
	}
}

func TestGenerateSlotsDegenerateHorizon(t *testing.T) {
	h := schedule.Horizon{
		Start: time.Date(2025, 6, 5, 10, 0, 0, 0, time.Local),
		End:   time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local),
	}

	day := schedule.Day{Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.Local), Key: "2025-06-03"}
	assert.Empty(t, schedule.GenerateSlots(day, h, nil))
}

func TestGenerateSlotsIdempotent(t *testing.T) {
	windows := schedule.NormalizeWindows([]models.PickupWindow{
		{ID: "W1", PickupDate: "2025-06-01", StartTime: "11:00", EndTime: "12:00"},
	})
	h := horizonOn(9, 0, 14, 0)
	days := schedule.EnumerateDays(h)

	first := schedule.GenerateSlots(days[0], h, windows)
	second := schedule.GenerateSlots(days[0], h, windows)
	assert.Equal(t, first, second)
}
