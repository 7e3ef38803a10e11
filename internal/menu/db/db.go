package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-storefront/internal/models"
)

type DB struct {
	Bun *bun.DB
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

func (d *DB) GetMenuItem(id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := d.Bun.NewSelect().
		Model(&item).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (d *DB) CreateMenuItem(item models.MenuItem) error {
	_, err := d.Bun.NewInsert().Model(&item).Exec(context.Background())
	return err
}

func (d *DB) UpdateMenuItem(item models.MenuItem) error {
	_, err := d.Bun.NewUpdate().
		Model(&item).
		Column("name", "price", "description", "image_url").
		Where("id = ?", item.ID).
		Exec(context.Background())
	return err
}

func (d *DB) DeleteMenuItem(id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.MenuItem)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}
