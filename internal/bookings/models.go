package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking records one confirmed seat purchase. The seats themselves live in
// the booked-seat ledger; BookingSeat rows tie ledger entries back to the
// purchase that owns them.
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	TotalSeats  int        `gorm:"not null" json:"total_seats"`
	TotalPrice  float64    `gorm:"not null" json:"total_price"`
	Status      Status     `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	BookingRef  string     `gorm:"unique;not null" json:"booking_ref"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relationships
	Seats []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookingSeat is one seat of a booking, in canonical seat-id form.
type BookingSeat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	SeatID    string    `gorm:"type:varchar(100);not null" json:"seat_id"`
	SeatType  string    `gorm:"type:varchar(50);not null" json:"seat_type"`
	SeatLabel string    `gorm:"type:varchar(100)" json:"seat_label"`
	Section   string    `gorm:"type:varchar(255)" json:"section"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingSeat
func (BookingSeat) TableName() string {
	return "booking_seats"
}

// CreateBookingRequest carries the raw seat selection: a list of
// [seat_id, seat_type] pairs exactly as the picker produced them.
type CreateBookingRequest struct {
	EventID string     `json:"event_id" binding:"required,uuid"`
	Seats   [][]string `json:"seats" binding:"required"`
}

// BookingResponse is the confirmation payload.
type BookingResponse struct {
	BookingID  string           `json:"booking_id"`
	BookingRef string           `json:"booking_ref"`
	EventID    string           `json:"event_id"`
	Status     string           `json:"status"`
	TotalPrice float64          `json:"total_price"`
	TotalSeats int              `json:"total_seats"`
	Seats      []BookedSeatInfo `json:"seats"`
	CreatedAt  time.Time        `json:"created_at"`
}

// BookedSeatInfo describes one confirmed seat for responses.
type BookedSeatInfo struct {
	SeatID    string  `json:"seat_id"`
	SeatType  string  `json:"seat_type"`
	SeatLabel string  `json:"seat_label,omitempty"`
	Section   string  `json:"section,omitempty"`
	Price     float64 `json:"price"`
}

// ToResponse converts a stored booking into the response shape.
func (b *Booking) ToResponse() BookingResponse {
	seats := make([]BookedSeatInfo, 0, len(b.Seats))
	for _, seat := range b.Seats {
		seats = append(seats, BookedSeatInfo{
			SeatID:    seat.SeatID,
			SeatType:  seat.SeatType,
			SeatLabel: seat.SeatLabel,
			Section:   seat.Section,
			Price:     seat.Price,
		})
	}

	return BookingResponse{
		BookingID:  b.ID.String(),
		BookingRef: b.BookingRef,
		EventID:    b.EventID.String(),
		Status:     b.Status.String(),
		TotalPrice: b.TotalPrice,
		TotalSeats: b.TotalSeats,
		Seats:      seats,
		CreatedAt:  b.CreatedAt,
	}
}
