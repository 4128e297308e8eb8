package notifications

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeatEvent(t *testing.T) {
	eventID := uuid.New()
	evt := NewSeatEvent(SeatEventBooked, eventID, []string{"A1", "A2"})

	assert.NotEqual(t, uuid.Nil, evt.ID)
	assert.Equal(t, SeatEventBooked, evt.Type)
	assert.Equal(t, eventID, evt.EventID)
	assert.Equal(t, []string{"A1", "A2"}, evt.SeatIDs)
	assert.False(t, evt.OccurredAt.IsZero())
}

func TestSeatEventToJSON(t *testing.T) {
	evt := NewSeatEvent(SeatEventReleased, uuid.New(), []string{"B7"})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded SeatEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, evt.ID, decoded.ID)
	assert.Equal(t, SeatEventReleased, decoded.Type)
	assert.Equal(t, []string{"B7"}, decoded.SeatIDs)
}

func TestSeatEventPartitionKey(t *testing.T) {
	eventID := uuid.New()

	booked := NewSeatEvent(SeatEventBooked, eventID, []string{"A1"})
	released := NewSeatEvent(SeatEventReleased, eventID, []string{"A1"})

	// Bookings and releases for the same event must land on the same
	// partition so consumers see them in order.
	assert.Equal(t, eventID.String(), booked.PartitionKey())
	assert.Equal(t, booked.PartitionKey(), released.PartitionKey())
}
