package events

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"seatwise/internal/seatmap"
)

// SeatMapStore adapts the event service to the seating layout's storage
// interface so the seatmap package stays free of event imports.
type SeatMapStore struct {
	service Service
}

func NewSeatMapStore(service Service) *SeatMapStore {
	return &SeatMapStore{service: service}
}

func (s *SeatMapStore) LoadSeatMap(ctx context.Context, eventID uuid.UUID) (seatmap.RawSeatMap, seatmap.SeatTypes, int, int, error) {
	event, err := s.service.GetEventEntity(eventID)
	if err != nil {
		return seatmap.RawSeatMap{}, nil, 0, 0, errors.New("event not found")
	}
	return event.StoredSeatMap(), event.SeatTypes, event.LegacyRows, event.LegacyCols, nil
}

func (s *SeatMapStore) StoreSeatMap(ctx context.Context, eventID uuid.UUID, adminID uuid.UUID, doc *seatmap.SeatMap) error {
	return s.service.SaveSeatMap(eventID, adminID, doc)
}
