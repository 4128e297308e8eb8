package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"seatwise/internal/seatmap"
)

type Event struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string      `json:"name" gorm:"not null;size:255"`
	Description string      `json:"description" gorm:"type:text"`
	Venue       string      `json:"venue" gorm:"not null;size:255"`
	DateTime    time.Time   `json:"date_time" gorm:"not null"`
	Status      EventStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`

	// Seating layout. SeatMap holds either the structured custom document
	// or the legacy 2-D grid verbatim; LegacyRows/LegacyCols carry the grid
	// dimensions for pre-designer events and are zero otherwise.
	SeatMap    json.RawMessage    `json:"seat_map,omitempty" gorm:"type:jsonb"`
	LegacyRows int                `json:"legacy_rows" gorm:"default:0"`
	LegacyCols int                `json:"legacy_cols" gorm:"default:0"`
	SeatTypes  seatmap.SeatTypes  `json:"seat_types,omitempty" gorm:"type:jsonb;serializer:json"`
	TypePrices map[string]float64 `json:"type_prices,omitempty" gorm:"type:jsonb;serializer:json"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// StoredSeatMap classifies the persisted layout payload.
func (e *Event) StoredSeatMap() seatmap.RawSeatMap {
	return seatmap.DetectSeatMap(e.SeatMap)
}

// TotalSeats counts the bookable seats of whichever layout is stored.
func (e *Event) TotalSeats() int {
	stored := e.StoredSeatMap()
	switch stored.Kind {
	case seatmap.KindCustom:
		return seatmap.NormalizeCustomSeatMap(stored.Custom).TotalSeats()
	case seatmap.KindGrid:
		total := 0
		for _, row := range stored.Grid {
			total += len(row)
		}
		return total
	default:
		return 0
	}
}

type EventResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Venue       string             `json:"venue"`
	DateTime    time.Time          `json:"date_time"`
	Status      EventStatus        `json:"status"`
	TotalSeats  int                `json:"total_seats"`
	SeatTypes   seatmap.SeatTypes  `json:"seat_types"`
	TypePrices  map[string]float64 `json:"type_prices,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type CreateEventRequest struct {
	Name        string             `json:"name" binding:"required,min=3,max=255"`
	Description string             `json:"description" binding:"max=2000"`
	Venue       string             `json:"venue" binding:"required,min=3,max=255"`
	DateTime    time.Time          `json:"date_time" binding:"required"`
	TypePrices  map[string]float64 `json:"type_prices"`

	// Optional bootstrap grid for events that skip the designer.
	LegacyRows int `json:"legacy_rows" binding:"omitempty,min=1,max=200"`
	LegacyCols int `json:"legacy_cols" binding:"omitempty,min=1,max=200"`
}

type UpdateEventRequest struct {
	Name        *string            `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string            `json:"description" binding:"omitempty,max=2000"`
	Venue       *string            `json:"venue" binding:"omitempty,min=3,max=255"`
	DateTime    *time.Time         `json:"date_time"`
	Status      *string            `json:"status" binding:"omitempty,oneof=draft published cancelled completed"`
	TypePrices  map[string]float64 `json:"type_prices"`
}

type EventListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Venue    string `form:"venue"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published cancelled completed"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// EventOccupancy summarizes how an event's seating is selling.
type EventOccupancy struct {
	EventID     string             `json:"event_id"`
	EventName   string             `json:"event_name"`
	TotalSeats  int                `json:"total_seats"`
	BookedSeats int                `json:"booked_seats"`
	Utilization float64            `json:"utilization"`
	Revenue     float64            `json:"revenue"`
	SeatsByType map[string]int     `json:"seats_by_type"`
	TypePrices  map[string]float64 `json:"type_prices,omitempty"`
}

// Helper method to convert Event to EventResponse
func (e *Event) ToResponse() EventResponse {
	seatTypes := e.SeatTypes
	if stored := e.StoredSeatMap(); stored.Kind == seatmap.KindCustom {
		seatTypes = seatmap.NormalizeCustomSeatMap(stored.Custom).SeatTypes
	} else if len(seatTypes) == 0 {
		seatTypes = seatmap.DefaultSeatTypes()
	}

	return EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		Venue:       e.Venue,
		DateTime:    e.DateTime,
		Status:      e.Status,
		TotalSeats:  e.TotalSeats(),
		SeatTypes:   seatTypes,
		TypePrices:  e.TypePrices,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
