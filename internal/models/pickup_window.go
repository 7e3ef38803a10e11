package models

import (
	"encoding/json"

	"github.com/uptrace/bun"
)

// PickupWindow is a bounded collection range on a single calendar day.
// The dashboard and the legacy admin API disagree on field naming
// (pickupDate vs pickup_date and friends), so UnmarshalJSON accepts
// both spellings and MarshalJSON always emits the camelCase form.
type PickupWindow struct {
	bun.BaseModel `bun:"table:pickup_windows"`

	ID               string `bun:"id,pk"`
	EventID          string `bun:"event_id,notnull"`
	PickupDate       string `bun:"pickup_date"`
	StartTime        string `bun:"start_time"`
	EndTime          string `bun:"end_time"`
	PickupLocationID string `bun:"pickup_location_id"`
}

type pickupWindowWire struct {
	ID               string `json:"id"`
	EventID          string `json:"eventId"`
	EventIDSnake     string `json:"event_id"`
	PickupDate       string `json:"pickupDate"`
	PickupDateSnake  string `json:"pickup_date"`
	StartTime        string `json:"startTime"`
	StartTimeSnake   string `json:"start_time"`
	EndTime          string `json:"endTime"`
	EndTimeSnake     string `json:"end_time"`
	PickupLocationID string `json:"pickupLocationId"`
	PickupLocSnake   string `json:"pickup_location_id"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (w *PickupWindow) UnmarshalJSON(data []byte) error {
	var wire pickupWindowWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	w.ID = wire.ID
	w.EventID = firstNonEmpty(wire.EventID, wire.EventIDSnake)
	w.PickupDate = firstNonEmpty(wire.PickupDate, wire.PickupDateSnake)
	w.StartTime = firstNonEmpty(wire.StartTime, wire.StartTimeSnake)
	w.EndTime = firstNonEmpty(wire.EndTime, wire.EndTimeSnake)
	w.PickupLocationID = firstNonEmpty(wire.PickupLocationID, wire.PickupLocSnake)
	return nil
}

func (w PickupWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID               string `json:"id"`
		EventID          string `json:"eventId"`
		PickupDate       string `json:"pickupDate"`
		StartTime        string `json:"startTime"`
		EndTime          string `json:"endTime"`
		PickupLocationID string `json:"pickupLocationId,omitempty"`
	}{w.ID, w.EventID, w.PickupDate, w.StartTime, w.EndTime, w.PickupLocationID})
}
