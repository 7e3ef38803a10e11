package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-storefront/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- STOREFRONTS ----------------

func (d *DB) GetStorefrontBySlug(slug string) (*models.Storefront, error) {
	var storefront models.Storefront
	err := d.Bun.NewSelect().
		Model(&storefront).
		Where("merchant_slug = ?", slug).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &storefront, nil
}

// ---------------- EVENTS ----------------

func (d *DB) GetEventsByStorefront(storefrontID string) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Where("storefront_id = ?", storefrontID).
		Order("created_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}

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

func (d *DB) CreateEvent(event models.Event) error {
	_, err := d.Bun.NewInsert().Model(&event).Exec(context.Background())
	return err
}

func (d *DB) UpdateEvent(event models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&event).
		Column("title", "description", "pre_order_date", "pre_order_time",
			"default_pickup_window", "default_pickup_location").
		Where("id = ?", event.ID).
		Exec(context.Background())
	return err
}

// ---------------- PICKUP WINDOWS ----------------

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

func (d *DB) CreatePickupWindow(window models.PickupWindow) error {
	_, err := d.Bun.NewInsert().Model(&window).Exec(context.Background())
	return err
}

func (d *DB) DeletePickupWindow(id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.PickupWindow)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}
