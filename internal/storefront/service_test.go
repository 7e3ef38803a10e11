package storefront_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ms-storefront/internal/models"
	"ms-storefront/internal/storefront"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) GetStorefrontBySlug(slug string) (*models.Storefront, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Storefront), args.Error(1)
}

func (m *MockDBLayer) GetEventsByStorefront(storefrontID string) ([]models.Event, error) {
	args := m.Called(storefrontID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockDBLayer) GetEvent(id string) (*models.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockDBLayer) CreateEvent(event models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockDBLayer) UpdateEvent(event models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockDBLayer) GetPickupWindows(eventID string) ([]models.PickupWindow, error) {
	args := m.Called(eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PickupWindow), args.Error(1)
}

func (m *MockDBLayer) CreatePickupWindow(window models.PickupWindow) error {
	args := m.Called(window)
	return args.Error(0)
}

func (m *MockDBLayer) DeletePickupWindow(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func fixtureEvent() *models.Event {
	return &models.Event{
		ID:           "drop-1",
		StorefrontID: "store-1",
		Title:        "Saturday Dumpling Drop",
		PreOrderDate: "2025-07-01",
		PreOrderTime: "10:00 AM",
	}
}

func fixtureWindows() []models.PickupWindow {
	return []models.PickupWindow{
		{ID: "w1", EventID: "drop-1", PickupDate: "2025-07-02", StartTime: "11:00 AM", EndTime: "1:00 PM"},
		{ID: "w2", EventID: "drop-1", PickupDate: "2025-07-03", StartTime: "5:00 PM", EndTime: "7:00 PM"},
	}
}

func fixtureService(db *MockDBLayer, now time.Time) *storefront.Service {
	svc := storefront.NewService(db)
	svc.Now = func() time.Time { return now }
	return svc
}

func TestGetScheduleBeforeOpen(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetEvent", "drop-1").Return(fixtureEvent(), nil)
	db.On("GetPickupWindows", "drop-1").Return(fixtureWindows(), nil)

	// A day before ordering opens
	now := time.Date(2025, 6, 30, 10, 0, 0, 0, time.Local)
	svc := fixtureService(db, now)

	sched, err := svc.GetSchedule("drop-1", "")
	require.NoError(t, err)

	assert.False(t, sched.Open)
	assert.Equal(t, "24", sched.Countdown.Hours)
	assert.Equal(t, "00", sched.Countdown.Minutes)
	assert.Equal(t, time.Date(2025, 7, 1, 10, 0, 0, 0, time.Local), sched.OpensAt)
	assert.Equal(t, time.Date(2025, 7, 3, 19, 0, 0, 0, time.Local), sched.ClosesAt)

	// Ordering horizon spans open day through the last window day
	require.Len(t, sched.Days, 3)
	assert.Equal(t, "2025-07-01", sched.Days[0].Key)
	assert.Equal(t, "2025-07-03", sched.Days[2].Key)

	// Default day is the first orderable day, which has no windows
	assert.Equal(t, "2025-07-01", sched.Day)
	assert.NotNil(t, sched.Slots)
}

func TestGetScheduleSelectedDaySlots(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetEvent", "drop-1").Return(fixtureEvent(), nil)
	db.On("GetPickupWindows", "drop-1").Return(fixtureWindows(), nil)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)
	svc := fixtureService(db, now)

	sched, err := svc.GetSchedule("drop-1", "2025-07-02")
	require.NoError(t, err)

	assert.True(t, sched.Open)
	assert.Equal(t, "00", sched.Countdown.Hours)
	assert.Equal(t, "2025-07-02", sched.Day)

	// Full slot grid for the day, quarter-hour steps
	require.NotEmpty(t, sched.Slots)
	first := sched.Slots[0]
	assert.Equal(t, time.Date(2025, 7, 2, 0, 0, 0, 0, time.Local), first.At)

	// Slots inside the 11:00-1:00 window carry its id
	var inWindow, outWindow bool
	for _, slot := range sched.Slots {
		if slot.At.Equal(time.Date(2025, 7, 2, 11, 30, 0, 0, time.Local)) {
			assert.Equal(t, "w1", slot.WindowID)
			inWindow = true
		}
		if slot.At.Equal(time.Date(2025, 7, 2, 9, 0, 0, 0, time.Local)) {
			assert.Empty(t, slot.WindowID)
			outWindow = true
		}
	}
	assert.True(t, inWindow, "expected an 11:30 slot")
	assert.True(t, outWindow, "expected a 9:00 slot")
}

func TestGetScheduleUnknownDayFallsBack(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetEvent", "drop-1").Return(fixtureEvent(), nil)
	db.On("GetPickupWindows", "drop-1").Return(fixtureWindows(), nil)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)
	svc := fixtureService(db, now)

	sched, err := svc.GetSchedule("drop-1", "2025-12-25")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", sched.Day)
}

func TestGetScheduleNoWindowsNoOpenDate(t *testing.T) {
	event := fixtureEvent()
	event.PreOrderDate = ""
	event.PreOrderTime = ""

	db := new(MockDBLayer)
	db.On("GetEvent", "drop-1").Return(event, nil)
	db.On("GetPickupWindows", "drop-1").Return([]models.PickupWindow{}, nil)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)
	svc := fixtureService(db, now)

	sched, err := svc.GetSchedule("drop-1", "")
	require.NoError(t, err)

	// Fallback horizon opens immediately for one hour
	assert.True(t, sched.Open)
	assert.Equal(t, now, sched.OpensAt)
	assert.Equal(t, now.Add(time.Hour), sched.ClosesAt)
	require.Len(t, sched.Days, 1)
	assert.NotEmpty(t, sched.Slots)
}

func TestGetScheduleEventLookupFails(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetEvent", "missing").Return(nil, errors.New("sql: no rows in result set"))

	svc := fixtureService(db, time.Now())

	_, err := svc.GetSchedule("missing", "")
	assert.Error(t, err)
}

func TestGetStorefrontWithEvents(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetStorefrontBySlug", "dumpling-club").Return(&models.Storefront{
		ID:           "store-1",
		MerchantSlug: "dumpling-club",
		BusinessName: "Dumpling Club",
	}, nil)
	db.On("GetEventsByStorefront", "store-1").Return([]models.Event{*fixtureEvent()}, nil)

	svc := fixtureService(db, time.Now())

	resp, err := svc.GetStorefront("dumpling-club")
	require.NoError(t, err)
	assert.Equal(t, "Dumpling Club", resp.Storefront.BusinessName)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "drop-1", resp.Events[0].ID)
}

func TestAddPickupWindowAssignsID(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetEvent", "drop-1").Return(fixtureEvent(), nil)
	db.On("CreatePickupWindow", mock.AnythingOfType("models.PickupWindow")).Return(nil)

	svc := fixtureService(db, time.Now())

	created, err := svc.AddPickupWindow("drop-1", models.PickupWindow{
		PickupDate: "2025-07-02",
		StartTime:  "11:00 AM",
		EndTime:    "1:00 PM",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "drop-1", created.EventID)
}
