package menu

import (
	"fmt"

	"github.com/google/uuid"

	"ms-storefront/internal/models"
)

type DBLayer interface {
	GetMenuItems(eventID string) ([]models.MenuItem, error)
	GetMenuItem(id string) (*models.MenuItem, error)
	CreateMenuItem(item models.MenuItem) error
	UpdateMenuItem(item models.MenuItem) error
	DeleteMenuItem(id string) error
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

func (s *Service) ListMenu(eventID string) ([]models.MenuItem, error) {
	items, err := s.DB.GetMenuItems(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return items, nil
}

func (s *Service) AddItem(eventID string, item models.MenuItem) (*models.MenuItem, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("menu item name is required")
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("menu item price cannot be negative")
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.EventID = eventID
	if err := s.DB.CreateMenuItem(item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}

func (s *Service) UpdateItem(id string, item models.MenuItem) error {
	existing, err := s.DB.GetMenuItem(id)
	if err != nil {
		return fmt.Errorf("menu item %s not found: %w", id, err)
	}
	item.ID = existing.ID
	item.EventID = existing.EventID
	return s.DB.UpdateMenuItem(item)
}

func (s *Service) RemoveItem(id string) error {
	return s.DB.DeleteMenuItem(id)
}
