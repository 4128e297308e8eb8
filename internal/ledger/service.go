package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seatwise/internal/seatmap"
	"seatwise/pkg/logger"
)

// reserveTTL bounds how long a Redis reservation marker outlives its commit
// attempt. The Postgres unique index is the durable arbiter; the marker only
// short-circuits the common race.
const reserveTTL = 30 * time.Second

// EventPublisher broadcasts ledger mutations (to avoid circular dependency
// with the notifications package).
type EventPublisher interface {
	PublishSeatsBooked(ctx context.Context, eventID uuid.UUID, seatIDs []string) error
	PublishSeatsReleased(ctx context.Context, eventID uuid.UUID, seatIDs []string) error
}

// SeatAssignment pairs a canonical seat id with its seat type for commit.
type SeatAssignment struct {
	SeatID   string `json:"seat_id"`
	SeatType string `json:"seat_type"`
}

// Service is the authoritative booked-seat set per event. All seat ids pass
// through legacy-id canonicalization on the way in and out.
type Service interface {
	GetBookedSeats(ctx context.Context, eventID uuid.UUID) ([]string, error)
	AddBookedSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) error
	RemoveBookedSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) error

	// CommitSeats is the all-or-nothing booking path: every seat is written
	// or none is, and a lost race surfaces as a SeatBooked failure.
	CommitSeats(ctx context.Context, eventID uuid.UUID, seats []SeatAssignment) error
}

type service struct {
	repo      Repository
	reserver  *AtomicReserver
	publisher EventPublisher
	log       *logger.Logger
}

// NewService creates a new ledger service instance. The reserver and
// publisher are optional; without them the service degrades to plain
// database arbitration with no event fan-out.
func NewService(repo Repository, reserver *AtomicReserver, publisher EventPublisher, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:      repo,
		reserver:  reserver,
		publisher: publisher,
		log:       log,
	}
}

// canonicalizeSeatIDs converts legacy seat ids and deduplicates while
// preserving first-seen order.
func canonicalizeSeatIDs(seatIDs []string) []string {
	out := make([]string, 0, len(seatIDs))
	seen := make(map[string]bool, len(seatIDs))

	for _, id := range seatIDs {
		canonical := seatmap.ConvertLegacySeatID(id)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}

	return out
}

// GetBookedSeats returns the canonicalized, deduplicated booked-seat set.
func (s *service) GetBookedSeats(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	rows, err := s.repo.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.SeatID)
	}
	return canonicalizeSeatIDs(ids), nil
}

// AddBookedSeats unions the seats into the event's ledger. Adding an
// already-booked seat is a no-op.
func (s *service) AddBookedSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) error {
	canonical := canonicalizeSeatIDs(seatIDs)
	if len(canonical) == 0 {
		return nil
	}

	rows := make([]BookedSeat, 0, len(canonical))
	for _, id := range canonical {
		rows = append(rows, BookedSeat{EventID: eventID, SeatID: id})
	}

	added, err := s.repo.InsertIgnoreConflicts(ctx, rows)
	if err != nil {
		return err
	}

	if added > 0 {
		s.publishBooked(ctx, eventID, canonical)
	}
	return nil
}

// RemoveBookedSeats filters the seats out of the event's ledger. Removing a
// seat that is not booked is a no-op.
func (s *service) RemoveBookedSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) error {
	canonical := canonicalizeSeatIDs(seatIDs)
	if len(canonical) == 0 {
		return nil
	}

	removed, err := s.repo.DeleteByEventAndSeats(ctx, eventID, canonical)
	if err != nil {
		return err
	}

	if s.reserver != nil {
		if _, err := s.reserver.Release(ctx, eventID.String(), canonical); err != nil {
			s.log.WarnContext(ctx, "failed to release reservation markers",
				"event_id", eventID.String(), "error", err.Error())
		}
	}

	if removed > 0 {
		s.publishReleased(ctx, eventID, canonical)
	}
	return nil
}

// CommitSeats reserves the seats in Redis, then inserts them transactionally.
// Either layer losing the race yields a SeatBooked failure and leaves the
// ledger untouched.
func (s *service) CommitSeats(ctx context.Context, eventID uuid.UUID, seats []SeatAssignment) error {
	ids := make([]string, 0, len(seats))
	byID := make(map[string]SeatAssignment, len(seats))
	for _, seat := range seats {
		canonical := seatmap.ConvertLegacySeatID(seat.SeatID)
		if canonical == "" {
			continue
		}
		if _, dup := byID[canonical]; dup {
			continue
		}
		byID[canonical] = seat
		ids = append(ids, canonical)
	}
	if len(ids) == 0 {
		return seatmap.NewValidationError(seatmap.KindEmptySelection, "please choose at least one seat before booking")
	}

	if s.reserver != nil {
		if err := s.reserver.Reserve(ctx, eventID.String(), ids, reserveTTL); err != nil {
			if reserved, ok := err.(*ErrSeatReserved); ok {
				return seatmap.NewValidationError(seatmap.KindSeatBooked,
					fmt.Sprintf("seat %s has already been booked, please choose a different seat", reserved.SeatID))
			}
			// Redis being down must not block bookings; the unique index
			// still arbitrates.
			s.log.WarnContext(ctx, "atomic reserve unavailable, falling back to database arbitration",
				"event_id", eventID.String(), "error", err.Error())
		}
	}

	rows := make([]BookedSeat, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, BookedSeat{EventID: eventID, SeatID: id, SeatType: byID[id].SeatType})
	}

	committed, err := s.repo.InsertAllOrNothing(ctx, rows)
	if err != nil || !committed {
		if s.reserver != nil {
			if _, rerr := s.reserver.Release(ctx, eventID.String(), ids); rerr != nil {
				s.log.WarnContext(ctx, "failed to release reservation markers after aborted commit",
					"event_id", eventID.String(), "error", rerr.Error())
			}
		}
		if err != nil {
			return err
		}
		return seatmap.NewValidationError(seatmap.KindSeatBooked,
			"one or more selected seats have already been booked, please choose different seats")
	}

	s.publishBooked(ctx, eventID, ids)
	return nil
}

func (s *service) publishBooked(ctx context.Context, eventID uuid.UUID, seatIDs []string) {
	s.log.LogSeatsBooked(ctx, eventID.String(), seatIDs)
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSeatsBooked(ctx, eventID, seatIDs); err != nil {
		s.log.WarnContext(ctx, "failed to publish seats booked event",
			"event_id", eventID.String(), "error", err.Error())
	}
}

func (s *service) publishReleased(ctx context.Context, eventID uuid.UUID, seatIDs []string) {
	s.log.LogSeatsReleased(ctx, eventID.String(), seatIDs)
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSeatsReleased(ctx, eventID, seatIDs); err != nil {
		s.log.WarnContext(ctx, "failed to publish seats released event",
			"event_id", eventID.String(), "error", err.Error())
	}
}
