package storefront

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-storefront/internal/models"
	"ms-storefront/internal/schedule"
)

type DBLayer interface {
	GetStorefrontBySlug(slug string) (*models.Storefront, error)
	GetEventsByStorefront(storefrontID string) ([]models.Event, error)
	GetEvent(id string) (*models.Event, error)
	CreateEvent(event models.Event) error
	UpdateEvent(event models.Event) error
	GetPickupWindows(eventID string) ([]models.PickupWindow, error)
	CreatePickupWindow(window models.PickupWindow) error
	DeletePickupWindow(id string) error
}

type Service struct {
	DB DBLayer

	// Now feeds the countdown and the missing-open-date fallback;
	// overridable in tests.
	Now func() time.Time
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db, Now: time.Now}
}

func (s *Service) GetStorefront(slug string) (*models.StorefrontResponse, error) {
	store, err := s.DB.GetStorefrontBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("storefront %q not found: %w", slug, err)
	}

	events, err := s.DB.GetEventsByStorefront(store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	if events == nil {
		events = []models.Event{}
	}

	return &models.StorefrontResponse{Storefront: *store, Events: events}, nil
}

func (s *Service) GetEvent(id string) (*models.Event, error) {
	return s.DB.GetEvent(id)
}

// Schedule is the full orderable schedule of one drop as the
// storefront renders it: a countdown until ordering opens, the
// orderable days, and the slots of the selected day.
type Schedule struct {
	EventID   string                `json:"eventId"`
	Open      bool                  `json:"open"`
	OpensAt   time.Time             `json:"opensAt"`
	ClosesAt  time.Time             `json:"closesAt"`
	Countdown schedule.Countdown    `json:"countdown"`
	Days      []schedule.Day        `json:"days"`
	Day       string                `json:"day,omitempty"`
	Slots     []schedule.Slot       `json:"slots"`
	Windows   []models.PickupWindow `json:"windows"`
}

// GetSchedule derives the schedule for an event. dayKey selects which
// day's slots to return; empty means the first orderable day. A
// degenerate horizon yields empty days and slots, never an error — the
// storefront renders a "no time slots available" state from it.
func (s *Service) GetSchedule(eventID, dayKey string) (*Schedule, error) {
	event, err := s.DB.GetEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("event %s not found: %w", eventID, err)
	}

	rawWindows, err := s.DB.GetPickupWindows(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pickup windows: %w", err)
	}
	if rawWindows == nil {
		rawWindows = []models.PickupWindow{}
	}

	now := s.Now()
	windows := schedule.NormalizeWindows(rawWindows)
	horizon := schedule.ComputeHorizon(event.PreOrderDate, event.PreOrderTime, windows, now)
	days := schedule.EnumerateDays(horizon)
	remaining := schedule.Remaining(now, horizon.Start)

	result := &Schedule{
		EventID:   eventID,
		Open:      remaining == 0,
		OpensAt:   horizon.Start,
		ClosesAt:  horizon.End,
		Countdown: schedule.DecomposeCountdown(remaining),
		Days:      days,
		Slots:     []schedule.Slot{},
		Windows:   rawWindows,
	}
	if len(days) == 0 {
		return result, nil
	}

	selected := days[0]
	for _, d := range days {
		if d.Key == dayKey {
			selected = d
			break
		}
	}
	result.Day = selected.Key

	if slots := schedule.GenerateSlots(selected, horizon, windows); slots != nil {
		result.Slots = slots
	}
	return result, nil
}

// ---------------- MERCHANT MUTATIONS ----------------

func (s *Service) CreateEvent(event models.Event) (*models.Event, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = s.Now()
	if err := s.DB.CreateEvent(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

func (s *Service) UpdateEvent(id string, event models.Event) error {
	existing, err := s.DB.GetEvent(id)
	if err != nil {
		return fmt.Errorf("event %s not found: %w", id, err)
	}
	event.ID = existing.ID
	event.StorefrontID = existing.StorefrontID
	return s.DB.UpdateEvent(event)
}

func (s *Service) AddPickupWindow(eventID string, window models.PickupWindow) (*models.PickupWindow, error) {
	if _, err := s.DB.GetEvent(eventID); err != nil {
		return nil, fmt.Errorf("event %s not found: %w", eventID, err)
	}
	if window.ID == "" {
		window.ID = uuid.NewString()
	}
	window.EventID = eventID
	if err := s.DB.CreatePickupWindow(window); err != nil {
		return nil, fmt.Errorf("failed to create pickup window: %w", err)
	}
	return &window, nil
}

func (s *Service) RemovePickupWindow(id string) error {
	return s.DB.DeletePickupWindow(id)
}
