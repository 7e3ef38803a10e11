// Package redis holds pickup slots during checkout. A hold is a SetNX
// key with a short TTL: one pending checkout per slot at a time. If the
// customer never completes checkout the key expires and the keyspace
// notification releases the slot (see the subscription in main).
package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const holdKeyPrefix = "slot_hold:"

// slotStamp is the key-safe encoding of a slot instant. Colons would
// collide with the key separator, so the compact civil form is used.
const slotStampLayout = "20060102T1504"

type Holds struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *log.Logger
}

func NewHolds(client *redis.Client, ttl time.Duration) *Holds {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Holds{Client: client, TTL: ttl, Logger: log.Default()}
}

func holdKey(eventID string, at time.Time) string {
	return fmt.Sprintf("%s%s:%s", holdKeyPrefix, eventID, at.Format(slotStampLayout))
}

// ParseHoldKey recovers the event id and slot instant from an expired
// hold key. Returns false for keys that are not slot holds.
func ParseHoldKey(key string) (eventID string, at time.Time, ok bool) {
	if len(key) <= len(holdKeyPrefix) || key[:len(holdKeyPrefix)] != holdKeyPrefix {
		return "", time.Time{}, false
	}
	rest := key[len(holdKeyPrefix):]
	sep := len(rest) - len(slotStampLayout) - 1
	if sep < 1 || rest[sep] != ':' {
		return "", time.Time{}, false
	}
	at, err := time.ParseInLocation(slotStampLayout, rest[sep+1:], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return rest[:sep], at, true
}

// HoldSlot takes the checkout hold for a slot. Returns false when
// another order already holds it.
func (h *Holds) HoldSlot(eventID string, at time.Time, orderID string) (bool, error) {
	return h.Client.SetNX(context.Background(), holdKey(eventID, at), orderID, h.TTL).Result()
}

// ReleaseSlot drops the hold if it still belongs to orderID.
func (h *Holds) ReleaseSlot(eventID string, at time.Time, orderID string) error {
	ctx := context.Background()
	key := holdKey(eventID, at)

	val, err := h.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if val == orderID {
		return h.Client.Del(ctx, key).Err()
	}
	return nil
}
