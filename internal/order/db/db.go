package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"ms-storefront/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- ORDERS ----------------

// CreateOrder inserts the order and its line items in one transaction.
func (d *DB) CreateOrder(order models.Order, items []models.OrderItem) error {
	return d.Bun.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&order).Exec(ctx); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&items).Exec(ctx)
		return err
	})
}

func (d *DB) GetOrderByID(id string) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Where("order_id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderWithItems fetches an order together with its line items.
func (d *DB) GetOrderWithItems(id string) (*models.OrderWithItems, error) {
	order, err := d.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	var items []models.OrderItem
	err = d.Bun.NewSelect().
		Model(&items).
		Where("order_id = ?", id).
		Order("name").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}

	return &models.OrderWithItems{Order: *order, Items: items}, nil
}

// UpdateOrder rewrites the mutable order fields.
func (d *DB) UpdateOrder(order models.Order) error {
	_, err := d.Bun.NewUpdate().
		Model(&order).
		Column("pickup_window_id", "pickup_at", "first_name", "last_name", "email", "phone", "status", "total").
		Where("order_id = ?", order.OrderID).
		Exec(context.Background())
	return err
}

// GetPendingOrderBySlot finds the pending order holding the given
// pickup slot, or nil when none exists.
func (d *DB) GetPendingOrderBySlot(eventID string, at time.Time) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Where("event_id = ?", eventID).
		Where("pickup_at = ?", at).
		Where("status = ?", "pending").
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ---------------- MERCHANT DATA ----------------

func (d *DB) GetEvent(id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *DB) GetPickupWindows(eventID string) ([]models.PickupWindow, error) {
	var windows []models.PickupWindow
	err := d.Bun.NewSelect().
		Model(&windows).
		Where("event_id = ?", eventID).
		Order("pickup_date", "start_time").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (d *DB) GetMenuItems(eventID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := d.Bun.NewSelect().
		Model(&items).
		Where("event_id = ?", eventID).
		Order("name").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return items, nil
}
