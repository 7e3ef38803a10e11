package orders_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"ms-storefront/internal/models"
	"ms-storefront/internal/order/db"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB() (*db.DB, error) {
	// Create a new SQLite in-memory database
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}

	// Create a new bun.DB instance
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	// Create tables
	ctx := context.Background()
	for _, model := range []interface{}{
		(*models.Order)(nil),
		(*models.OrderItem)(nil),
		(*models.Event)(nil),
		(*models.PickupWindow)(nil),
		(*models.MenuItem)(nil),
	} {
		if err := bunDB.ResetModel(ctx, model); err != nil {
			return nil, err
		}
	}

	// Return a new DB instance
	return &db.DB{Bun: bunDB}, nil
}

func sampleOrder() (models.Order, []models.OrderItem) {
	order := models.Order{
		OrderID:        "test-order-id",
		EventID:        "test-event-id",
		PickupWindowID: "test-window-id",
		PickupAt:       time.Date(2025, 7, 2, 11, 15, 0, 0, time.UTC),
		CustomerID:     "test-customer-id",
		FirstName:      "Ada",
		LastName:       "Nguyen",
		Email:          "ada@example.com",
		Phone:          "555-0100",
		Status:         "pending",
		Total:          23.5,
		CreatedAt:      time.Now().Round(time.Second), // Round to avoid precision issues
	}
	items := []models.OrderItem{
		{ID: "line-1", OrderID: order.OrderID, MenuItemID: "item-1", Name: "Pork Bun", UnitPrice: 9.5, Quantity: 2},
		{ID: "line-2", OrderID: order.OrderID, MenuItemID: "item-2", Name: "Iced Tea", UnitPrice: 4.5, Quantity: 1},
	}
	return order, items
}

func TestCreateAndGetOrder(t *testing.T) {
	db, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to set up test database: %v", err)
	}

	order, items := sampleOrder()

	// Test CreateOrder
	err = db.CreateOrder(order, items)
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	// Test GetOrderByID
	retrievedOrder, err := db.GetOrderByID("test-order-id")
	if err != nil {
		t.Fatalf("Failed to retrieve order: %v", err)
	}

	// Verify retrieved order matches created order
	if retrievedOrder.OrderID != order.OrderID {
		t.Errorf("Expected order ID %s, got %s", order.OrderID, retrievedOrder.OrderID)
	}
	if retrievedOrder.EventID != order.EventID {
		t.Errorf("Expected event ID %s, got %s", order.EventID, retrievedOrder.EventID)
	}
	if retrievedOrder.Status != order.Status {
		t.Errorf("Expected status %s, got %s", order.Status, retrievedOrder.Status)
	}
	if retrievedOrder.Total != order.Total {
		t.Errorf("Expected total %f, got %f", order.Total, retrievedOrder.Total)
	}

	// Test GetOrderWithItems
	withItems, err := db.GetOrderWithItems("test-order-id")
	if err != nil {
		t.Fatalf("Failed to retrieve order with items: %v", err)
	}
	if len(withItems.Items) != len(items) {
		t.Fatalf("Expected %d line items, got %d", len(items), len(withItems.Items))
	}
	for i, item := range items {
		if withItems.Items[i].MenuItemID != item.MenuItemID {
			t.Errorf("Expected menu item %s at position %d, got %s", item.MenuItemID, i, withItems.Items[i].MenuItemID)
		}
		if withItems.Items[i].Quantity != item.Quantity {
			t.Errorf("Expected quantity %d at position %d, got %d", item.Quantity, i, withItems.Items[i].Quantity)
		}
	}
}

func TestUpdateOrder(t *testing.T) {
	db, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to set up test database: %v", err)
	}

	order, items := sampleOrder()

	// Create the order
	err = db.CreateOrder(order, items)
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	// Update the order
	order.Status = "confirmed"
	order.Total = 30.0

	err = db.UpdateOrder(order)
	if err != nil {
		t.Fatalf("Failed to update order: %v", err)
	}

	// Retrieve the updated order
	retrievedOrder, err := db.GetOrderByID("test-order-id")
	if err != nil {
		t.Fatalf("Failed to retrieve updated order: %v", err)
	}

	// Verify the updates were applied
	if retrievedOrder.Status != "confirmed" {
		t.Errorf("Expected status %s, got %s", "confirmed", retrievedOrder.Status)
	}
	if retrievedOrder.Total != 30.0 {
		t.Errorf("Expected total %f, got %f", 30.0, retrievedOrder.Total)
	}
}

func TestGetPendingOrderBySlot(t *testing.T) {
	db, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to set up test database: %v", err)
	}

	order, items := sampleOrder()

	// Create the order
	err = db.CreateOrder(order, items)
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	// Pending order on the slot is found
	pending, err := db.GetPendingOrderBySlot(order.EventID, order.PickupAt)
	if err != nil {
		t.Fatalf("Failed to look up pending order by slot: %v", err)
	}
	if pending == nil {
		t.Fatal("Expected pending order on the slot, got nil")
	}
	if pending.OrderID != order.OrderID {
		t.Errorf("Expected order ID %s, got %s", order.OrderID, pending.OrderID)
	}

	// A different slot yields no order and no error
	other, err := db.GetPendingOrderBySlot(order.EventID, order.PickupAt.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("Unexpected error for empty slot: %v", err)
	}
	if other != nil {
		t.Errorf("Expected no order on empty slot, got %s", other.OrderID)
	}

	// Confirmed orders are not returned
	order.Status = "confirmed"
	if err := db.UpdateOrder(order); err != nil {
		t.Fatalf("Failed to update order: %v", err)
	}
	confirmed, err := db.GetPendingOrderBySlot(order.EventID, order.PickupAt)
	if err != nil {
		t.Fatalf("Unexpected error after confirming order: %v", err)
	}
	if confirmed != nil {
		t.Errorf("Expected no pending order after confirmation, got %s", confirmed.OrderID)
	}
}

func TestEventWindowsAndMenu(t *testing.T) {
	testDB, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to set up test database: %v", err)
	}
	ctx := context.Background()

	event := models.Event{
		ID:           "test-event-id",
		StorefrontID: "test-storefront-id",
		Title:        "Saturday Dumpling Drop",
		PreOrderDate: "2025-07-01",
		PreOrderTime: "10:00 AM",
		CreatedAt:    time.Now().Round(time.Second),
	}
	if _, err := testDB.Bun.NewInsert().Model(&event).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert event: %v", err)
	}

	windows := []models.PickupWindow{
		{ID: "w1", EventID: event.ID, PickupDate: "2025-07-02", StartTime: "11:00 AM", EndTime: "1:00 PM"},
		{ID: "w2", EventID: event.ID, PickupDate: "2025-07-03", StartTime: "5:00 PM", EndTime: "7:00 PM"},
	}
	if _, err := testDB.Bun.NewInsert().Model(&windows).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert pickup windows: %v", err)
	}

	menuItems := []models.MenuItem{
		{ID: "item-1", EventID: event.ID, Name: "Pork Bun", Price: 9.5},
		{ID: "item-2", EventID: event.ID, Name: "Iced Tea", Price: 4.5},
	}
	if _, err := testDB.Bun.NewInsert().Model(&menuItems).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert menu items: %v", err)
	}

	retrievedEvent, err := testDB.GetEvent(event.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve event: %v", err)
	}
	if retrievedEvent.Title != event.Title {
		t.Errorf("Expected title %s, got %s", event.Title, retrievedEvent.Title)
	}
	if retrievedEvent.PreOrderTime != event.PreOrderTime {
		t.Errorf("Expected open time %s, got %s", event.PreOrderTime, retrievedEvent.PreOrderTime)
	}

	retrievedWindows, err := testDB.GetPickupWindows(event.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve pickup windows: %v", err)
	}
	if len(retrievedWindows) != 2 {
		t.Errorf("Expected 2 pickup windows, got %d", len(retrievedWindows))
	}

	retrievedMenu, err := testDB.GetMenuItems(event.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve menu items: %v", err)
	}
	if len(retrievedMenu) != 2 {
		t.Errorf("Expected 2 menu items, got %d", len(retrievedMenu))
	}
}
