package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	OrderID        string    `bun:"order_id,pk" json:"orderId"`
	EventID        string    `bun:"event_id,notnull" json:"eventId"`
	PickupWindowID string    `bun:"pickup_window_id" json:"pickupWindowId,omitempty"`
	PickupAt       time.Time `bun:"pickup_at,notnull" json:"pickupAt"`
	CustomerID     string    `bun:"customer_id" json:"customerId,omitempty"`
	FirstName      string    `bun:"first_name" json:"firstName"`
	LastName       string    `bun:"last_name" json:"lastName"`
	Email          string    `bun:"email" json:"email"`
	Phone          string    `bun:"phone" json:"phone"`
	Status         string    `bun:"status,notnull" json:"status"`
	Total          float64   `bun:"total,notnull" json:"total"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"createdAt"`
}

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items"`

	ID         string  `bun:"id,pk" json:"id"`
	OrderID    string  `bun:"order_id,notnull" json:"orderId"`
	MenuItemID string  `bun:"menu_item_id,notnull" json:"menuItemId"`
	Name       string  `bun:"name,notnull" json:"name"`
	UnitPrice  float64 `bun:"unit_price,notnull" json:"unitPrice"`
	Quantity   int     `bun:"quantity,notnull" json:"quantity"`
}

// OrderRequest is the checkout submission. pickup_date_time is an ISO
// instant naming the slot the customer picked.
type OrderRequest struct {
	EventID        string             `json:"event_id"`
	PickupWindowID string             `json:"pickup_window_id"`
	PickupDateTime string             `json:"pickup_date_time"`
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Items          []OrderRequestItem `json:"items"`
}

type OrderRequestItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Name       string `json:"name"`
}

type OrderResponse struct {
	Success bool       `json:"success"`
	Data    *OrderData `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
}

type OrderData struct {
	ID string `json:"id"`
}

// OrderWithItems bundles an order with its line items for read endpoints.
type OrderWithItems struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
