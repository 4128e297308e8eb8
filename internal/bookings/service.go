package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"seatwise/internal/events"
	"seatwise/internal/ledger"
	"seatwise/internal/seatmap"
	"seatwise/internal/shared/constants"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"
)

// Service interface defines the contract for booking business logic
type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, userID uuid.UUID) error
	GetEventOccupancy(ctx context.Context, eventID uuid.UUID) (*events.EventOccupancy, error)
}

// EventDirectory is the slice of the event service the booking flow needs.
type EventDirectory interface {
	GetEventEntity(id uuid.UUID) (*events.Event, error)
	GetOccupancy(ctx context.Context, id uuid.UUID, bookedSeats []string) (*events.EventOccupancy, error)
	IsEventInFuture(id uuid.UUID) (bool, error)
}

type service struct {
	repo         Repository
	eventService EventDirectory
	ledger       ledger.Service
	log          *logger.Logger
	cacheService cache.Service
}

// NewService creates a new booking service instance
func NewService(repo Repository, eventService EventDirectory, ledgerService ledger.Service, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		eventService: eventService,
		ledger:       ledgerService,
		log:          log,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// CreateBooking validates a raw seat selection against the event's layout
// and the booked-seat ledger, commits the seats atomically, and records the
// purchase.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, seatmap.NewValidationError(seatmap.KindInvalidEvent, "the selected event could not be found")
	}

	event, err := s.eventService.GetEventEntity(eventID)
	if err != nil {
		return nil, seatmap.NewValidationError(seatmap.KindInvalidEvent, "the selected event could not be found")
	}
	if event.Status != events.EventStatusPublished {
		return nil, fmt.Errorf("event is not open for booking")
	}
	if event.DateTime.Before(time.Now()) {
		return nil, fmt.Errorf("event has already started")
	}

	booked, err := s.ledger.GetBookedSeats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked seats: %w", err)
	}

	sc := NewSelectionContext(eventID, event.StoredSeatMap(), event.LegacyRows, event.LegacyCols, event.SeatTypes, booked)
	accepted, err := PrepareSeatSelection(sc, req.Seats)
	if err != nil {
		return nil, err
	}

	// Commit is all-or-nothing: a concurrent booker losing the race here
	// surfaces as a SeatBooked failure even though validation passed.
	assignments := make([]ledger.SeatAssignment, 0, len(accepted))
	for _, entry := range accepted {
		assignments = append(assignments, ledger.SeatAssignment{SeatID: entry.SeatID, SeatType: entry.SeatType})
	}
	if err := s.ledger.CommitSeats(ctx, eventID, assignments); err != nil {
		return nil, err
	}

	bookingRef, err := generateBookingReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	booking := &Booking{
		UserID:     userID,
		EventID:    eventID,
		TotalSeats: len(accepted),
		Status:     StatusConfirmed,
		BookingRef: bookingRef,
	}

	for _, entry := range accepted {
		seat := BookingSeat{
			SeatID:   entry.SeatID,
			SeatType: entry.SeatType,
			Price:    event.TypePrices[entry.SeatType],
		}
		if info, ok := sc.Lookup[entry.SeatID]; ok {
			seat.SeatLabel = info.SeatLabel
			seat.Section = info.Section
		}
		booking.TotalPrice += seat.Price
		booking.Seats = append(booking.Seats, seat)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		// The seats are already in the ledger; release them so the failed
		// purchase does not strand inventory.
		seatIDs := make([]string, 0, len(accepted))
		for _, entry := range accepted {
			seatIDs = append(seatIDs, entry.SeatID)
		}
		if rerr := s.ledger.RemoveBookedSeats(ctx, eventID, seatIDs); rerr != nil {
			s.log.ErrorContext(ctx, "failed to release seats after booking create failure",
				"event_id", eventID.String(), "error", rerr.Error())
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), eventID.String(), userID.String())
	s.invalidateSeatCaches(ctx, eventID)
	s.invalidateUserCaches(ctx, userID)

	response := booking.ToResponse()
	return &response, nil
}

// GetBooking retrieves a booking by ID
func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, bookingID)
}

// GetUserBookings retrieves bookings for a specific user
func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	if s.cacheService != nil && limit > 0 && offset%limit == 0 {
		page := offset/limit + 1
		var cached []Booking
		err := s.cacheService.GetOrSet(ctx,
			constants.BuildUserBookingsKey(userID.String(), page, limit),
			constants.TTL_USER_BOOKINGS,
			func() (interface{}, error) { return s.repo.GetByUserID(ctx, userID, limit, offset) },
			&cached,
		)
		if err == nil {
			return cached, nil
		}
	}

	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

// CancelBooking cancels a booking and releases its seats back to the pool.
func (s *service) CancelBooking(ctx context.Context, bookingID uuid.UUID, userID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.UserID != userID {
		return errors.New("unauthorized: booking does not belong to user")
	}
	if !booking.Status.CanBeCancelled() {
		return errors.New("booking is already cancelled")
	}

	// Seats cannot be returned to the pool once the event has started.
	if upcoming, err := s.eventService.IsEventInFuture(booking.EventID); err == nil && !upcoming {
		return errors.New("event has already started")
	}

	if err := s.repo.Cancel(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	seatIDs := make([]string, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		seatIDs = append(seatIDs, seat.SeatID)
	}
	if err := s.ledger.RemoveBookedSeats(ctx, booking.EventID, seatIDs); err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}

	s.log.LogBookingCancelled(ctx, bookingID.String(), booking.EventID.String(), userID.String())
	s.invalidateSeatCaches(ctx, booking.EventID)
	s.invalidateUserCaches(ctx, userID)
	return nil
}

// GetEventOccupancy reports seating utilization for an event.
func (s *service) GetEventOccupancy(ctx context.Context, eventID uuid.UUID) (*events.EventOccupancy, error) {
	compute := func() (interface{}, error) {
		booked, err := s.ledger.GetBookedSeats(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to load booked seats: %w", err)
		}
		occupancy, err := s.eventService.GetOccupancy(ctx, eventID, booked)
		if err != nil {
			return nil, err
		}

		// The event side can only estimate revenue from type prices;
		// replace it with the confirmed booking totals when available.
		if records, err := s.repo.GetByEventID(ctx, eventID); err == nil {
			occupancy.Revenue = confirmedRevenue(records)
		}
		return occupancy, nil
	}

	if s.cacheService != nil {
		var occupancy events.EventOccupancy
		err := s.cacheService.GetOrSet(ctx,
			constants.BuildEventOccupancyKey(eventID.String()),
			constants.TTL_EVENT_OCCUPANCY,
			compute,
			&occupancy,
		)
		if err == nil {
			return &occupancy, nil
		}
	}

	raw, err := compute()
	if err != nil {
		return nil, err
	}
	return raw.(*events.EventOccupancy), nil
}

// invalidateSeatCaches drops the booked-set and occupancy views after a
// ledger mutation so the next read sees the change immediately.
func (s *service) invalidateSeatCaches(ctx context.Context, eventID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.CACHE_KEY_SEATMAP_BOOKED+eventID.String())
	_ = s.cacheService.Delete(ctx, constants.BuildEventOccupancyKey(eventID.String()))
}

// invalidateUserCaches drops every cached booking page for the user.
func (s *service) invalidateUserCaches(ctx context.Context, userID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.CACHE_KEY_USER_BOOKINGS+userID.String()+":*")
}

// confirmedRevenue sums the totals of bookings that still hold their seats.
func confirmedRevenue(records []Booking) float64 {
	var total float64
	for _, b := range records {
		if b.Status == StatusConfirmed {
			total += b.TotalPrice
		}
	}
	return total
}

// generateBookingReference generates a unique booking reference
func generateBookingReference() (string, error) {
	timestamp := time.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("SW-%s-%s", timestamp, string(randomPart)), nil
}
