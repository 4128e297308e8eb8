package ledger

import (
	"time"

	"github.com/google/uuid"
)

// BookedSeat is one row of the authoritative booked-seat ledger. The unique
// index over (event_id, seat_id) is the durable arbiter between concurrent
// bookers: whoever inserts first owns the seat.
type BookedSeat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_booked_seats_event_seat" json:"event_id"`
	SeatID    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_booked_seats_event_seat" json:"seat_id"`
	SeatType  string    `gorm:"type:varchar(50)" json:"seat_type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for BookedSeat
func (BookedSeat) TableName() string {
	return "booked_seats"
}
