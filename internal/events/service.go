package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seatwise/internal/seatmap"
	"seatwise/internal/shared/constants"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateEvent(userID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(id uuid.UUID) (*EventResponse, error)
	UpdateEvent(id uuid.UUID, adminID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(id uuid.UUID, adminID uuid.UUID) error
	GetAllEvents(query EventListQuery) (*PaginatedEvents, error)
	GetUpcomingEvents(limit int) ([]EventResponse, error)

	// Seating access for the seat-map and booking services.
	GetEventEntity(id uuid.UUID) (*Event, error)
	SaveSeatMap(id uuid.UUID, adminID uuid.UUID, doc *seatmap.SeatMap) error
	GetOccupancy(ctx context.Context, id uuid.UUID, bookedSeats []string) (*EventOccupancy, error)
	IsEventInFuture(id uuid.UUID) (bool, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(userID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if req.DateTime.Before(time.Now()) {
		return nil, errors.New("event date must be in the future")
	}
	if (req.LegacyRows > 0) != (req.LegacyCols > 0) {
		return nil, errors.New("legacy grid needs both row and column counts")
	}

	event := &Event{
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		DateTime:    req.DateTime,
		Status:      EventStatusDraft,
		SeatTypes:   seatmap.DefaultSeatTypes(),
		TypePrices:  req.TypePrices,
		CreatedBy:   userID,
	}

	// Bootstrap a uniform grid of default-type seats when dimensions are
	// given; the designer can replace it later.
	if req.LegacyRows > 0 && req.LegacyCols > 0 {
		grid := make(seatmap.LegacyGrid, req.LegacyRows)
		defaultType := event.SeatTypes.Default()
		for r := range grid {
			grid[r] = make([]string, req.LegacyCols)
			for c := range grid[r] {
				grid[r][c] = defaultType
			}
		}
		payload, err := json.Marshal(grid)
		if err != nil {
			return nil, fmt.Errorf("failed to encode seat grid: %w", err)
		}
		event.SeatMap = payload
		event.LegacyRows = req.LegacyRows
		event.LegacyCols = req.LegacyCols
	}

	if err := s.repo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	logger.GetDefault().LogEventCreated(context.Background(), event.ID.String(), userID.String())
	s.invalidateListCaches()

	response := event.ToResponse()
	return &response, nil
}

func (s *service) GetEventByID(id uuid.UUID) (*EventResponse, error) {
	if s.cacheService != nil {
		var cached EventResponse
		err := s.cacheService.GetOrSet(context.Background(),
			constants.BuildEventDetailKey(id.String()),
			constants.TTL_EVENT_DETAIL,
			func() (interface{}, error) {
				event, err := s.repo.GetByID(id)
				if err != nil {
					return nil, err
				}
				return event.ToResponse(), nil
			},
			&cached,
		)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		// Fall through to the repository on any cache failure.
	}

	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, err
	}

	response := event.ToResponse()
	return &response, nil
}

func (s *service) GetEventEntity(id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, err
	}
	return event, nil
}

func (s *service) UpdateEvent(id uuid.UUID, adminID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	updates := map[string]interface{}{
		"updated_by": adminID,
	}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.DateTime != nil {
		if req.DateTime.Before(time.Now()) {
			return nil, errors.New("event date must be in the future")
		}
		updates["date_time"] = *req.DateTime
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.TypePrices != nil {
		if err := s.validateTypePrices(id, req.TypePrices); err != nil {
			return nil, err
		}
		prices, err := json.Marshal(req.TypePrices)
		if err != nil {
			return nil, fmt.Errorf("failed to encode type prices: %w", err)
		}
		updates["type_prices"] = prices
	}

	event, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, err
	}

	s.invalidateEventCaches(id)

	response := event.ToResponse()
	return &response, nil
}

// validateTypePrices rejects price assignments for seat types the stored
// layout never uses. Events without a typed layout accept any assignment;
// the check kicks in once a map is in place.
func (s *service) validateTypePrices(id uuid.UUID, prices map[string]float64) error {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("event not found")
		}
		return err
	}

	used := seatmap.UsedSeatTypes(event.StoredSeatMap())
	if len(used) == 0 {
		return nil
	}

	for key := range prices {
		if !used[seatmap.SanitizeKey(key)] {
			return fmt.Errorf("seat type %q is not used by this event's seat map", key)
		}
	}
	return nil
}

func (s *service) DeleteEvent(id uuid.UUID, adminID uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("event not found")
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.invalidateEventCaches(id)
	return nil
}

func (s *service) GetAllEvents(query EventListQuery) (*PaginatedEvents, error) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	fetch := func() (interface{}, error) {
		eventsList, totalCount, err := s.repo.GetAll(query)
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}

		responses := make([]EventResponse, 0, len(eventsList))
		for i := range eventsList {
			responses = append(responses, eventsList[i].ToResponse())
		}

		return &PaginatedEvents{
			Events:     responses,
			TotalCount: totalCount,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
		}, nil
	}

	// Filtered queries are too varied to cache usefully; only plain
	// paginated listings go through the cache.
	cacheable := query.Search == "" && query.Venue == "" && query.DateFrom == "" && query.DateTo == ""

	if s.cacheService != nil && cacheable {
		var cached PaginatedEvents
		err := s.cacheService.GetOrSet(context.Background(),
			constants.BuildEventListKey(query.Page, query.Limit, query.Status),
			constants.TTL_EVENT_LIST,
			fetch,
			&cached,
		)
		if err == nil {
			return &cached, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, err
	}
	return result.(*PaginatedEvents), nil
}

func (s *service) GetUpcomingEvents(limit int) ([]EventResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	fetch := func() (interface{}, error) {
		eventsList, err := s.repo.GetUpcomingEvents(limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load upcoming events: %w", err)
		}

		responses := make([]EventResponse, 0, len(eventsList))
		for i := range eventsList {
			responses = append(responses, eventsList[i].ToResponse())
		}
		return responses, nil
	}

	if s.cacheService != nil {
		var cached []EventResponse
		err := s.cacheService.GetOrSet(context.Background(),
			fmt.Sprintf("%s:limit:%d", constants.CACHE_KEY_EVENTS_UPCOMING, limit),
			constants.TTL_EVENT_UPCOMING,
			fetch,
			&cached,
		)
		if err == nil {
			return cached, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, err
	}
	return result.([]EventResponse), nil
}

// SaveSeatMap persists a sanitized seat-map document as the event's layout.
// The document must come out of the submission sanitizer; nothing else may
// write this column.
func (s *service) SaveSeatMap(id uuid.UUID, adminID uuid.UUID, doc *seatmap.SeatMap) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("event not found")
		}
		return err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode seat map: %w", err)
	}
	seatTypes, err := json.Marshal(doc.SeatTypes)
	if err != nil {
		return fmt.Errorf("failed to encode seat types: %w", err)
	}

	if err := s.repo.UpdateSeatMap(id, payload, seatTypes, adminID); err != nil {
		return fmt.Errorf("failed to save seat map: %w", err)
	}

	s.invalidateEventCaches(id)
	return nil
}

// GetOccupancy combines the stored layout with the current booked set.
func (s *service) GetOccupancy(_ context.Context, id uuid.UUID, bookedSeats []string) (*EventOccupancy, error) {
	event, err := s.GetEventEntity(id)
	if err != nil {
		return nil, err
	}

	occupancy := &EventOccupancy{
		EventID:     event.ID.String(),
		EventName:   event.Name,
		TotalSeats:  event.TotalSeats(),
		BookedSeats: len(bookedSeats),
		SeatsByType: seatsByType(event),
		TypePrices:  event.TypePrices,
	}

	if occupancy.TotalSeats > 0 {
		occupancy.Utilization = float64(occupancy.BookedSeats) / float64(occupancy.TotalSeats) * 100
	}
	occupancy.Revenue = estimateRevenue(event, bookedSeats)

	return occupancy, nil
}

func (s *service) IsEventInFuture(id uuid.UUID) (bool, error) {
	event, err := s.GetEventEntity(id)
	if err != nil {
		return false, err
	}
	return event.DateTime.After(time.Now()), nil
}

// seatsByType counts bookable seats per seat-type id.
func seatsByType(event *Event) map[string]int {
	counts := make(map[string]int)
	stored := event.StoredSeatMap()

	switch stored.Kind {
	case seatmap.KindCustom:
		normalized := seatmap.NormalizeCustomSeatMap(stored.Custom)
		for _, section := range normalized.Sections {
			for _, row := range section.Rows {
				for _, seat := range row.Seats {
					counts[seat.Type]++
				}
			}
		}
	case seatmap.KindGrid:
		for _, row := range stored.Grid {
			for _, cell := range row {
				if key := seatmap.SanitizeKey(cell); key != "" {
					counts[key]++
				}
			}
		}
	}

	return counts
}

// estimateRevenue resolves each booked seat to its type price. Seats whose
// type has no price contribute nothing.
func estimateRevenue(event *Event, bookedSeats []string) float64 {
	if len(event.TypePrices) == 0 || len(bookedSeats) == 0 {
		return 0
	}

	stored := event.StoredSeatMap()
	var total float64

	switch stored.Kind {
	case seatmap.KindCustom:
		lookup := seatmap.BuildCustomSeatLookup(seatmap.NormalizeCustomSeatMap(stored.Custom))
		for _, seatID := range bookedSeats {
			if info, ok := lookup[seatID]; ok {
				total += event.TypePrices[info.Type]
			}
		}
	case seatmap.KindGrid:
		for _, seatID := range bookedSeats {
			parsed := seatmap.ParseSeatIdentifier(seatID)
			if parsed == nil {
				continue
			}
			if cell, ok := stored.Grid.At(parsed.Row, parsed.Column); ok {
				total += event.TypePrices[seatmap.SanitizeKey(cell)]
			}
		}
	}

	return total
}

func (s *service) invalidateEventCaches(id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	ctx := context.Background()
	_ = s.cacheService.Delete(ctx, constants.BuildEventDetailKey(id.String()))
	_ = s.cacheService.Delete(ctx, constants.BuildSeatMapViewKey(id.String()))
	s.invalidateListCaches()
}

func (s *service) invalidateListCaches() {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(context.Background(), constants.PATTERN_INVALIDATE_EVENT_ALL)
}
