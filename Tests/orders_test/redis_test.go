package orders_test

import (
	"context"
	"testing"
	"time"

	holdredis "ms-storefront/internal/order/redis"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSlotHoldIntegration tests the slot hold with a real Redis container
func TestSlotHoldIntegration(t *testing.T) {
	// Skip if short test mode
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	// Start a Redis container
	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})

	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	defer redisContainer.Terminate(ctx)

	// Get Redis host and port
	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)

	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	// Create Redis client
	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port.Port(),
		Password: "",
		DB:       0,
	})

	holds := holdredis.NewHolds(client, 10*time.Minute)

	eventID := "drop-1"
	slotAt := time.Date(2025, 7, 2, 11, 15, 0, 0, time.Local)
	orderID := "test-order-id"

	// Hold the slot
	held, err := holds.HoldSlot(eventID, slotAt, orderID)
	require.NoError(t, err)
	assert.True(t, held, "Expected slot to be holdable")

	// A competing checkout on the same slot is rejected
	held, err = holds.HoldSlot(eventID, slotAt, "another-order-id")
	require.NoError(t, err)
	assert.False(t, held, "Expected slot to be already held")

	// A different slot on the same event is independent
	held, err = holds.HoldSlot(eventID, slotAt.Add(15*time.Minute), "another-order-id")
	require.NoError(t, err)
	assert.True(t, held, "Expected neighbouring slot to be holdable")

	// Releasing with the wrong order ID leaves the hold in place
	err = holds.ReleaseSlot(eventID, slotAt, "another-order-id")
	require.NoError(t, err)
	held, err = holds.HoldSlot(eventID, slotAt, "another-order-id")
	require.NoError(t, err)
	assert.False(t, held, "Expected hold to survive a release by a different order")

	// Releasing with the owning order ID frees the slot
	err = holds.ReleaseSlot(eventID, slotAt, orderID)
	require.NoError(t, err)

	held, err = holds.HoldSlot(eventID, slotAt, orderID)
	require.NoError(t, err)
	assert.True(t, held, "Expected slot to be holdable after release")
}

func TestParseHoldKey(t *testing.T) {
	slotAt := time.Date(2025, 7, 2, 11, 15, 0, 0, time.Local)

	eventID, parsedAt, ok := holdredis.ParseHoldKey("slot_hold:drop-1:20250702T1115")
	assert.True(t, ok)
	assert.Equal(t, "drop-1", eventID)
	assert.True(t, parsedAt.Equal(slotAt), "Expected %v, got %v", slotAt, parsedAt)

	// Keys from other subsystems are ignored
	_, _, ok = holdredis.ParseHoldKey("cart:drop-1:customer-1")
	assert.False(t, ok)

	// Malformed stamps are ignored
	_, _, ok = holdredis.ParseHoldKey("slot_hold:drop-1:not-a-stamp")
	assert.False(t, ok)
}
