package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-storefront/internal/models"
	"ms-storefront/internal/schedule"
)

type DBLayer interface {
	CreateOrder(order models.Order, items []models.OrderItem) error
	GetOrderByID(id string) (*models.Order, error)
	GetOrderWithItems(id string) (*models.OrderWithItems, error)
	UpdateOrder(order models.Order) error
	GetPendingOrderBySlot(eventID string, at time.Time) (*models.Order, error)
	GetEvent(id string) (*models.Event, error)
	GetPickupWindows(eventID string) ([]models.PickupWindow, error)
	GetMenuItems(eventID string) ([]models.MenuItem, error)
}

type SlotHolder interface {
	HoldSlot(eventID string, at time.Time, orderID string) (bool, error)
	ReleaseSlot(eventID string, at time.Time, orderID string) error
}

type KafkaPublisher interface {
	PublishOrderCreated(order models.Order) error
	PublishOrderUpdated(order models.Order) error
	PublishOrderCancelled(order models.Order) error
}

type CartCleaner interface {
	Clear(ctx context.Context, eventID, customerID string) error
}

// ErrSlotTaken means another checkout currently holds the slot.
var ErrSlotTaken = errors.New("pickup slot is already being checked out")

// ErrSlotUnavailable means the requested instant is not one of the
// slots the schedule offers.
var ErrSlotUnavailable = errors.New("pickup time is not an offered slot")

type OrderService struct {
	DB    DBLayer
	Holds SlotHolder
	Kafka KafkaPublisher
	Carts CartCleaner

	// Now is the clock used for horizon fallbacks; overridable in tests.
	Now func() time.Time
}

func NewOrderService(db DBLayer, holds SlotHolder, kafka KafkaPublisher, carts CartCleaner) *OrderService {
	return &OrderService{DB: db, Holds: holds, Kafka: kafka, Carts: carts, Now: time.Now}
}

// parsePickupInstant accepts a full RFC3339 instant or the bare civil
// form the older storefront build sends. Zoned instants are shifted to
// local so slot comparison happens in the same civil terms the
// schedule engine uses.
func parsePickupInstant(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(time.Local), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable pickup_date_time %q", raw)
}

// PlaceOrder validates the requested pickup slot against the drop's
// schedule, prices the items against the menu, takes the slot hold and
// persists the pending order.
func (s *OrderService) PlaceOrder(customerID string, req models.OrderRequest) (*models.Order, error) {
	event, err := s.DB.GetEvent(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("event %s not found: %w", req.EventID, err)
	}

	rawWindows, err := s.DB.GetPickupWindows(event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pickup windows: %w", err)
	}
	windows := schedule.NormalizeWindows(rawWindows)
	horizon := schedule.ComputeHorizon(event.PreOrderDate, event.PreOrderTime, windows, s.Now())
	if horizon.Degenerate() {
		return nil, ErrSlotUnavailable
	}

	pickupAt, err := parsePickupInstant(req.PickupDateTime)
	if err != nil {
		return nil, err
	}

	slot, ok := findSlot(pickupAt, horizon, windows)
	if !ok {
		return nil, ErrSlotUnavailable
	}

	// The window id is recomputed server side; the client's value is
	// only trusted for slots no window covers.
	windowID := slot.WindowID
	if windowID == "" {
		windowID = req.PickupWindowID
	}

	items, total, err := s.priceItems(event.ID, req.Items)
	if err != nil {
		return nil, err
	}

	orderID := uuid.NewString()

	held, err := s.Holds.HoldSlot(event.ID, slot.At, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to hold slot: %w", err)
	}
	if !held {
		return nil, ErrSlotTaken
	}

	order := models.Order{
		OrderID:        orderID,
		EventID:        event.ID,
		PickupWindowID: windowID,
		PickupAt:       slot.At,
		CustomerID:     customerID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Status:         "pending",
		Total:          total,
		CreatedAt:      s.Now(),
	}
	for i := range items {
		items[i].OrderID = orderID
	}

	if err := s.DB.CreateOrder(order, items); err != nil {
		_ = s.Holds.ReleaseSlot(event.ID, slot.At, orderID)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.Kafka.PublishOrderCreated(order); err != nil {
		fmt.Printf("Kafka publish error (order created): %v\n", err)
	}

	if customerID != "" && s.Carts != nil {
		if err := s.Carts.Clear(context.Background(), event.ID, customerID); err != nil {
			fmt.Printf("Failed to clear cart for order %s: %v\n", orderID, err)
		}
	}

	return &order, nil
}

// findSlot locates the offered slot matching at exactly, walking the
// same day/slot derivation the storefront renders.
func findSlot(at time.Time, horizon schedule.Horizon, windows []schedule.Window) (schedule.Slot, bool) {
	for _, day := range schedule.EnumerateDays(horizon) {
		if day.Key != at.Format("2006-01-02") {
			continue
		}
		for _, slot := range schedule.GenerateSlots(day, horizon, windows) {
			if slot.At.Equal(at) {
				return slot, true
			}
		}
		return schedule.Slot{}, false
	}
	return schedule.Slot{}, false
}

func (s *OrderService) priceItems(eventID string, reqItems []models.OrderRequestItem) ([]models.OrderItem, float64, error) {
	if len(reqItems) == 0 {
		return nil, 0, errors.New("order has no items")
	}

	menu, err := s.DB.GetMenuItems(eventID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load menu: %w", err)
	}
	byID := make(map[string]models.MenuItem, len(menu))
	for _, m := range menu {
		byID[m.ID] = m
	}

	var items []models.OrderItem
	var total float64
	for _, ri := range reqItems {
		m, ok := byID[ri.MenuItemID]
		if !ok {
			return nil, 0, fmt.Errorf("menu item %s is not on this drop's menu", ri.MenuItemID)
		}
		if ri.Quantity <= 0 {
			return nil, 0, fmt.Errorf("invalid quantity %d for item %s", ri.Quantity, ri.MenuItemID)
		}
		items = append(items, models.OrderItem{
			ID:         uuid.NewString(),
			MenuItemID: m.ID,
			Name:       m.Name,
			UnitPrice:  m.Price,
			Quantity:   ri.Quantity,
		})
		total += m.Price * float64(ri.Quantity)
	}
	return items, total, nil
}

func (s *OrderService) GetOrder(id string) (*models.OrderWithItems, error) {
	return s.DB.GetOrderWithItems(id)
}

// UpdateOrder rewrites contact fields on a pending order. The pickup
// slot, status and pricing are immutable here: a slot change would have
// to go back through checkout to be validated and held. Empty fields
// leave the stored value in place.
func (s *OrderService) UpdateOrder(id string, updateData models.Order) error {
	order, err := s.DB.GetOrderByID(id)
	if err != nil {
		return fmt.Errorf("order %s not found: %w", id, err)
	}
	if order.Status != "pending" {
		return errors.New("cannot update a non-pending order")
	}

	if updateData.FirstName != "" {
		order.FirstName = updateData.FirstName
	}
	if updateData.LastName != "" {
		order.LastName = updateData.LastName
	}
	if updateData.Email != "" {
		order.Email = updateData.Email
	}
	if updateData.Phone != "" {
		order.Phone = updateData.Phone
	}

	if err := s.DB.UpdateOrder(*order); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if err := s.Kafka.PublishOrderUpdated(*order); err != nil {
		fmt.Printf("Kafka publish error (order updated): %v\n", err)
	}
	return nil
}

// ConfirmOrder marks a pending order confirmed and releases the
// checkout hold so its expiry can never cancel a confirmed order.
func (s *OrderService) ConfirmOrder(id string) error {
	order, err := s.DB.GetOrderByID(id)
	if err != nil {
		return fmt.Errorf("order %s not found: %w", id, err)
	}
	if order.Status != "pending" {
		return errors.New("order is not in a valid state to confirm")
	}

	order.Status = "confirmed"
	if err := s.DB.UpdateOrder(*order); err != nil {
		return fmt.Errorf("failed to confirm order: %w", err)
	}

	if err := s.Holds.ReleaseSlot(order.EventID, order.PickupAt, order.OrderID); err != nil {
		fmt.Printf("Failed to release slot hold for order %s: %v\n", id, err)
	}
	return nil
}

func (s *OrderService) CancelOrder(id string) error {
	order, err := s.DB.GetOrderByID(id)
	if err != nil {
		return fmt.Errorf("order %s not found: %w", id, err)
	}
	if order.Status != "pending" {
		return errors.New("cannot cancel a non-pending order")
	}

	order.Status = "cancelled"
	if err := s.DB.UpdateOrder(*order); err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", id, err)
	}

	if err := s.Holds.ReleaseSlot(order.EventID, order.PickupAt, order.OrderID); err != nil {
		fmt.Printf("Failed to release slot hold for order %s: %v\n", id, err)
	}

	if err := s.Kafka.PublishOrderCancelled(*order); err != nil {
		fmt.Printf("Kafka publish error (order cancelled): %v\n", err)
	}
	return nil
}

// CancelExpiredSlotHold is invoked by the keyspace-expiry subscription
// when a checkout hold lapses: the pending order on that slot is
// cancelled so the slot opens up again.
func (s *OrderService) CancelExpiredSlotHold(eventID string, at time.Time) (*models.Order, error) {
	order, err := s.DB.GetPendingOrderBySlot(eventID, at)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	order.Status = "cancelled"
	if err := s.DB.UpdateOrder(*order); err != nil {
		return nil, fmt.Errorf("failed to cancel order %s: %w", order.OrderID, err)
	}

	if err := s.Kafka.PublishOrderCancelled(*order); err != nil {
		fmt.Printf("Kafka publish error (order cancelled): %v\n", err)
	}
	return order, nil
}
