package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/internal/events"
	"seatwise/internal/ledger"
	"seatwise/pkg/logger"
)

// fakeBookingRepo holds bookings in memory, keyed by booking id.
type fakeBookingRepo struct {
	bookings  map[uuid.UUID]*Booking
	cancelled []uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) GetByEventID(_ context.Context, eventID uuid.UUID) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.EventID == eventID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

// fakeEventDirectory reports a fixed event with a controllable start time.
type fakeEventDirectory struct {
	upcoming bool
}

func (f *fakeEventDirectory) GetEventEntity(id uuid.UUID) (*events.Event, error) {
	return &events.Event{ID: id, Status: events.EventStatusPublished}, nil
}

func (f *fakeEventDirectory) GetOccupancy(_ context.Context, id uuid.UUID, bookedSeats []string) (*events.EventOccupancy, error) {
	return &events.EventOccupancy{
		EventID:     id.String(),
		BookedSeats: len(bookedSeats),
		Revenue:     999, // price-table estimate, should be overridden
	}, nil
}

func (f *fakeEventDirectory) IsEventInFuture(id uuid.UUID) (bool, error) {
	return f.upcoming, nil
}

// fakeLedger records released seats.
type fakeLedger struct {
	released [][]string
}

func (f *fakeLedger) GetBookedSeats(_ context.Context, _ uuid.UUID) ([]string, error) {
	return []string{"A1", "A2"}, nil
}

func (f *fakeLedger) AddBookedSeats(_ context.Context, _ uuid.UUID, _ []string) error {
	return nil
}

func (f *fakeLedger) RemoveBookedSeats(_ context.Context, _ uuid.UUID, seatIDs []string) error {
	f.released = append(f.released, seatIDs)
	return nil
}

func (f *fakeLedger) CommitSeats(_ context.Context, _ uuid.UUID, _ []ledger.SeatAssignment) error {
	return nil
}

func seedBooking(repo *fakeBookingRepo, userID, eventID uuid.UUID, status Status, price float64) *Booking {
	booking := &Booking{
		ID:         uuid.New(),
		UserID:     userID,
		EventID:    eventID,
		Status:     status,
		TotalPrice: price,
		TotalSeats: 1,
		Seats:      []BookingSeat{{SeatID: "A1", SeatType: "regular", Price: price}},
		CreatedAt:  time.Now(),
	}
	repo.bookings[booking.ID] = booking
	return booking
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	repo := newFakeBookingRepo()
	directory := &fakeEventDirectory{upcoming: true}
	ldg := &fakeLedger{}
	svc := NewService(repo, directory, ldg, logger.New())

	userID := uuid.New()
	booking := seedBooking(repo, userID, uuid.New(), StatusConfirmed, 50)

	require.NoError(t, svc.CancelBooking(context.Background(), booking.ID, userID))
	assert.Equal(t, []uuid.UUID{booking.ID}, repo.cancelled)
	require.Len(t, ldg.released, 1)
	assert.Equal(t, []string{"A1"}, ldg.released[0])
}

func TestCancelBookingRefusedAfterEventStart(t *testing.T) {
	repo := newFakeBookingRepo()
	directory := &fakeEventDirectory{upcoming: false}
	ldg := &fakeLedger{}
	svc := NewService(repo, directory, ldg, logger.New())

	userID := uuid.New()
	booking := seedBooking(repo, userID, uuid.New(), StatusConfirmed, 50)

	err := svc.CancelBooking(context.Background(), booking.ID, userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already started")
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, ldg.released)
}

func TestGetEventOccupancyUsesConfirmedBookingTotals(t *testing.T) {
	repo := newFakeBookingRepo()
	directory := &fakeEventDirectory{upcoming: true}
	svc := NewService(repo, directory, &fakeLedger{}, logger.New())

	eventID := uuid.New()
	seedBooking(repo, uuid.New(), eventID, StatusConfirmed, 40)
	seedBooking(repo, uuid.New(), eventID, StatusConfirmed, 60)
	seedBooking(repo, uuid.New(), eventID, StatusCancelled, 25)

	occupancy, err := svc.GetEventOccupancy(context.Background(), eventID)
	require.NoError(t, err)

	// Cancelled bookings stop counting; the price-table estimate from the
	// event side is replaced by what was actually sold.
	assert.Equal(t, 100.0, occupancy.Revenue)
	assert.Equal(t, 2, occupancy.BookedSeats)
}
