package models

import (
	"encoding/json"

	"github.com/uptrace/bun"
)

// MenuItem is one orderable product on a drop's menu. The image field
// arrives as imageUrl, image_url or image depending on which backend
// revision produced the record.
type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items"`

	ID          string  `bun:"id,pk"`
	EventID     string  `bun:"event_id,notnull"`
	Name        string  `bun:"name,notnull"`
	Price       float64 `bun:"price,notnull"`
	Description string  `bun:"description"`
	ImageURL    string  `bun:"image_url"`
}

type menuItemWire struct {
	ID            string  `json:"id"`
	EventID       string  `json:"eventId"`
	EventIDSnake  string  `json:"event_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"imageUrl"`
	ImageURLSnake string  `json:"image_url"`
	Image         string  `json:"image"`
}

func (m *MenuItem) UnmarshalJSON(data []byte) error {
	var wire menuItemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	m.ID = wire.ID
	m.EventID = firstNonEmpty(wire.EventID, wire.EventIDSnake)
	m.Name = wire.Name
	m.Price = wire.Price
	m.Description = wire.Description
	m.ImageURL = firstNonEmpty(wire.ImageURL, wire.ImageURLSnake, wire.Image)
	return nil
}

func (m MenuItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string  `json:"id"`
		EventID     string  `json:"eventId"`
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description string  `json:"description,omitempty"`
		ImageURL    string  `json:"imageUrl,omitempty"`
	}{m.ID, m.EventID, m.Name, m.Price, m.Description, m.ImageURL})
}
