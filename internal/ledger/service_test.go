package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/internal/seatmap"
	"seatwise/pkg/logger"
)

// fakeRepository backs the service with an in-memory (event, seat) set that
// enforces the same uniqueness the database index does.
type fakeRepository struct {
	rows map[uuid.UUID]map[string]BookedSeat
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[uuid.UUID]map[string]BookedSeat)}
}

func (f *fakeRepository) GetByEvent(_ context.Context, eventID uuid.UUID) ([]BookedSeat, error) {
	var out []BookedSeat
	for _, row := range f.rows[eventID] {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeRepository) InsertIgnoreConflicts(_ context.Context, seats []BookedSeat) (int64, error) {
	var inserted int64
	for _, seat := range seats {
		if f.rows[seat.EventID] == nil {
			f.rows[seat.EventID] = make(map[string]BookedSeat)
		}
		if _, taken := f.rows[seat.EventID][seat.SeatID]; taken {
			continue
		}
		f.rows[seat.EventID][seat.SeatID] = seat
		inserted++
	}
	return inserted, nil
}

func (f *fakeRepository) InsertAllOrNothing(_ context.Context, seats []BookedSeat) (bool, error) {
	for _, seat := range seats {
		if _, taken := f.rows[seat.EventID][seat.SeatID]; taken {
			return false, nil
		}
	}
	for _, seat := range seats {
		if f.rows[seat.EventID] == nil {
			f.rows[seat.EventID] = make(map[string]BookedSeat)
		}
		f.rows[seat.EventID][seat.SeatID] = seat
	}
	return true, nil
}

func (f *fakeRepository) DeleteByEventAndSeats(_ context.Context, eventID uuid.UUID, seatIDs []string) (int64, error) {
	var deleted int64
	for _, id := range seatIDs {
		if _, ok := f.rows[eventID][id]; ok {
			delete(f.rows[eventID], id)
			deleted++
		}
	}
	return deleted, nil
}

type recordingPublisher struct {
	booked   [][]string
	released [][]string
}

func (p *recordingPublisher) PublishSeatsBooked(_ context.Context, _ uuid.UUID, seatIDs []string) error {
	p.booked = append(p.booked, seatIDs)
	return nil
}

func (p *recordingPublisher) PublishSeatsReleased(_ context.Context, _ uuid.UUID, seatIDs []string) error {
	p.released = append(p.released, seatIDs)
	return nil
}

func newTestService() (Service, *fakeRepository, *recordingPublisher) {
	repo := newFakeRepository()
	pub := &recordingPublisher{}
	return NewService(repo, nil, pub, logger.New()), repo, pub
}

func TestAddBookedSeatsIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	eventID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddBookedSeats(ctx, eventID, []string{"A1"}))
	require.NoError(t, svc.AddBookedSeats(ctx, eventID, []string{"A1"}))

	booked, err := svc.GetBookedSeats(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, booked)
}

func TestAddBookedSeatsCanonicalizesLegacyIDs(t *testing.T) {
	svc, _, _ := newTestService()
	eventID := uuid.New()
	ctx := context.Background()

	// R1S1 and A1 are the same seat in two generations of notation.
	require.NoError(t, svc.AddBookedSeats(ctx, eventID, []string{"R1S1", "A1", "r2s3"}))

	booked, err := svc.GetBookedSeats(ctx, eventID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1", "B3"}, booked)
}

func TestRemoveBookedSeatsIsIdempotent(t *testing.T) {
	svc, _, pub := newTestService()
	eventID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddBookedSeats(ctx, eventID, []string{"A1", "A2"}))
	require.NoError(t, svc.RemoveBookedSeats(ctx, eventID, []string{"A1"}))
	require.NoError(t, svc.RemoveBookedSeats(ctx, eventID, []string{"A1", "ZZ9"}))

	booked, err := svc.GetBookedSeats(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, booked)
	require.Len(t, pub.released, 1, "a removal with no effect publishes nothing")
}

func TestCommitSeatsAllOrNothing(t *testing.T) {
	svc, repo, pub := newTestService()
	eventID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddBookedSeats(ctx, eventID, []string{"A2"}))

	err := svc.CommitSeats(ctx, eventID, []SeatAssignment{
		{SeatID: "A1", SeatType: "regular"},
		{SeatID: "A2", SeatType: "regular"},
	})

	verr, ok := seatmap.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, seatmap.KindSeatBooked, verr.Kind)
	_, a1Written := repo.rows[eventID]["A1"]
	assert.False(t, a1Written, "partial commits must not persist")
	require.Len(t, pub.booked, 1, "only the initial add published")
}

func TestCommitSeatsSuccessPublishes(t *testing.T) {
	svc, _, pub := newTestService()
	eventID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.CommitSeats(ctx, eventID, []SeatAssignment{
		{SeatID: "a1", SeatType: "regular"},
		{SeatID: "a1", SeatType: "regular"},
		{SeatID: "b2", SeatType: "vip"},
	}))

	booked, err := svc.GetBookedSeats(ctx, eventID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1", "B2"}, booked)
	require.Len(t, pub.booked, 1)
	assert.ElementsMatch(t, []string{"A1", "B2"}, pub.booked[0])
}

func TestCommitSeatsRejectsEmptyAssignment(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.CommitSeats(context.Background(), uuid.New(), nil)

	verr, ok := seatmap.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, seatmap.KindEmptySelection, verr.Kind)
}
