package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Event is a drop: a pre-order opportunity with one open time and a set
// of pickup windows. PreOrderDate/PreOrderTime are stored as the raw
// strings the dashboard submits; the schedule package interprets them.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID                    string    `bun:"id,pk" json:"id"`
	StorefrontID          string    `bun:"storefront_id,notnull" json:"storefrontId"`
	Title                 string    `bun:"title,notnull" json:"title"`
	Description           string    `bun:"description" json:"description"`
	PreOrderDate          string    `bun:"pre_order_date" json:"preOrderDate"`
	PreOrderTime          string    `bun:"pre_order_time" json:"preOrderTime"`
	DefaultPickupWindow   string    `bun:"default_pickup_window" json:"defaultPickupWindow"`
	DefaultPickupLocation string    `bun:"default_pickup_location" json:"defaultPickupLocation"`
	CreatedAt             time.Time `bun:"created_at,notnull" json:"createdAt"`
}
