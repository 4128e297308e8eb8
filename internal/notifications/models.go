package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SeatEventType identifies the kind of ledger mutation being broadcast.
type SeatEventType string

const (
	SeatEventBooked   SeatEventType = "SEATS_BOOKED"
	SeatEventReleased SeatEventType = "SEATS_RELEASED"
)

// SeatEvent is the message published whenever the booked-seat ledger
// changes for an event. Downstream consumers use it to refresh live
// availability views and notify waiting customers.
type SeatEvent struct {
	ID         uuid.UUID     `json:"id"`
	Type       SeatEventType `json:"type"`
	EventID    uuid.UUID     `json:"event_id"`
	SeatIDs    []string      `json:"seat_ids"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func NewSeatEvent(eventType SeatEventType, eventID uuid.UUID, seatIDs []string) *SeatEvent {
	return &SeatEvent{
		ID:         uuid.New(),
		Type:       eventType,
		EventID:    eventID,
		SeatIDs:    seatIDs,
		OccurredAt: time.Now().UTC(),
	}
}

func (e *SeatEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all messages for one event to the same partition
// so consumers observe bookings and releases in order.
func (e *SeatEvent) PartitionKey() string {
	return e.EventID.String()
}
