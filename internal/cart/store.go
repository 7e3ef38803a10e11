// Package cart keeps the per-drop carts and checkout contact profiles
// in redis. A cart lives under one key per (event, customer) pair and
// expires after a day of inactivity; the contact profile is global per
// customer so it survives across drops.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-storefront/internal/models"
)

type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{Client: client, TTL: ttl}
}

func cartKey(eventID, customerID string) string {
	return fmt.Sprintf("cart:%s:%s", eventID, customerID)
}

func profileKey(customerID string) string {
	return "profile:" + customerID
}

// Get returns the cart for an event, or an empty cart if none exists.
func (s *Store) Get(ctx context.Context, eventID, customerID string) (*models.Cart, error) {
	val, err := s.Client.Get(ctx, cartKey(eventID, customerID)).Result()
	if err == redis.Nil {
		return &models.Cart{EventID: eventID, CustomerID: customerID, Lines: []models.CartLine{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("corrupt cart payload: %w", err)
	}
	return &cart, nil
}

// SetLine upserts one line. Quantity zero or below removes the line;
// removing the last line deletes the cart key entirely.
func (s *Store) SetLine(ctx context.Context, eventID, customerID string, line models.CartLine) (*models.Cart, error) {
	cart, err := s.Get(ctx, eventID, customerID)
	if err != nil {
		return nil, err
	}

	updated := cart.Lines[:0]
	replaced := false
	for _, l := range cart.Lines {
		if l.ItemID == line.ItemID {
			replaced = true
			if line.Quantity > 0 {
				updated = append(updated, line)
			}
			continue
		}
		updated = append(updated, l)
	}
	if !replaced && line.Quantity > 0 {
		updated = append(updated, line)
	}
	cart.Lines = updated

	if len(cart.Lines) == 0 {
		if err := s.Clear(ctx, eventID, customerID); err != nil {
			return nil, err
		}
		return cart, nil
	}
	return cart, s.save(ctx, cart)
}

func (s *Store) save(ctx context.Context, cart *models.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, cartKey(cart.EventID, cart.CustomerID), payload, s.TTL).Err()
}

func (s *Store) Clear(ctx context.Context, eventID, customerID string) error {
	return s.Client.Del(ctx, cartKey(eventID, customerID)).Err()
}

// SaveProfile stores the checkout contact card without expiry.
func (s *Store) SaveProfile(ctx context.Context, customerID string, profile models.ContactProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, profileKey(customerID), payload, 0).Err()
}

// GetProfile returns the saved contact card, or nil when none exists.
func (s *Store) GetProfile(ctx context.Context, customerID string) (*models.ContactProfile, error) {
	val, err := s.Client.Get(ctx, profileKey(customerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile models.ContactProfile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("corrupt profile payload: %w", err)
	}
	return &profile, nil
}
