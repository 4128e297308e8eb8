package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/internal/seatmap"
)

// fakeRepository serves a single in-memory event.
type fakeRepository struct {
	event *Event
}

func (f *fakeRepository) Create(event *Event) error { return nil }

func (f *fakeRepository) GetByID(id uuid.UUID) (*Event, error) {
	return f.event, nil
}

func (f *fakeRepository) Update(id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	return f.event, nil
}

func (f *fakeRepository) Delete(id uuid.UUID) error { return nil }

func (f *fakeRepository) GetAll(query EventListQuery) ([]Event, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepository) GetUpcomingEvents(limit int) ([]Event, error) { return nil, nil }

func (f *fakeRepository) UpdateSeatMap(id uuid.UUID, payload json.RawMessage, seatTypes json.RawMessage, updatedBy uuid.UUID) error {
	return nil
}

func gridEvent() *Event {
	return &Event{
		ID:         uuid.New(),
		Name:       "Club Night",
		Venue:      "Basement",
		DateTime:   time.Now().Add(48 * time.Hour),
		Status:     EventStatusPublished,
		SeatMap:    json.RawMessage(`[["regular","vip"],["regular","regular"]]`),
		LegacyRows: 2,
		LegacyCols: 2,
		SeatTypes:  seatmap.DefaultSeatTypes(),
	}
}

func TestUpdateEventAcceptsPricesForUsedTypes(t *testing.T) {
	svc := NewService(&fakeRepository{event: gridEvent()})
	admin := uuid.New()

	resp, err := svc.UpdateEvent(uuid.New(), admin, UpdateEventRequest{
		TypePrices: map[string]float64{"regular": 15, "vip": 40},
	})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestUpdateEventRejectsPricesForUnusedTypes(t *testing.T) {
	svc := NewService(&fakeRepository{event: gridEvent()})
	admin := uuid.New()

	// The stored grid only places regular and vip seats.
	_, err := svc.UpdateEvent(uuid.New(), admin, UpdateEventRequest{
		TypePrices: map[string]float64{"premium": 30},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "premium")
	assert.Contains(t, err.Error(), "not used")
}

func TestUpdateEventAllowsAnyPricesWithoutLayout(t *testing.T) {
	event := gridEvent()
	event.SeatMap = nil
	event.LegacyRows = 0
	event.LegacyCols = 0
	svc := NewService(&fakeRepository{event: event})

	_, err := svc.UpdateEvent(uuid.New(), uuid.New(), UpdateEventRequest{
		TypePrices: map[string]float64{"balcony": 12},
	})
	require.NoError(t, err)
}
