package bookings

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/internal/seatmap"
)

func customMapContext(t *testing.T, booked []string) *SelectionContext {
	t.Helper()

	stored := seatmap.RawSeatMap{Kind: seatmap.KindCustom, Custom: &seatmap.SeatMap{
		Layout: seatmap.LayoutCustom,
		Sections: []seatmap.Section{{
			ID:   "main",
			Name: "Main Floor",
			Rows: []seatmap.Row{
				{Label: "A", Seats: []seatmap.Seat{
					{Code: "a1", Type: "regular", SeatLabel: "1"},
					{Code: "a2", Type: "vip", SeatLabel: "2"},
					{Code: "a3", Type: "regular", SeatLabel: "3"},
				}},
				{Label: "B", Seats: []seatmap.Seat{
					{Code: "b1", Type: "regular", SeatLabel: "1"},
					{Code: "b2", Type: "regular", SeatLabel: "2"},
					{Code: "b3", Type: "regular", SeatLabel: "3"},
				}},
			},
		}},
		SeatTypes: seatmap.SeatTypes{{ID: "regular", Label: "Regular"}, {ID: "vip", Label: "VIP"}},
	}}

	return NewSelectionContext(uuid.New(), stored, 0, 0, nil, booked)
}

func legacyGridContext(booked []string) *SelectionContext {
	stored := seatmap.RawSeatMap{Kind: seatmap.KindGrid, Grid: seatmap.LegacyGrid{
		{"regular", "vip", "regular"},
		{"regular", "regular", "regular"},
	}}
	return NewSelectionContext(uuid.New(), stored, 2, 3, nil, booked)
}

func assertKind(t *testing.T, err error, kind seatmap.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	verr, ok := seatmap.AsValidationError(err)
	require.True(t, ok, "expected a tagged validation error, got %v", err)
	assert.Equal(t, kind, verr.Kind)
}

func TestPrepareSeatSelectionAcceptsValidSelection(t *testing.T) {
	sc := customMapContext(t, nil)

	accepted, err := PrepareSeatSelection(sc, [][]string{{"a1", "regular"}, {"a2", "vip"}})

	require.NoError(t, err)
	require.Len(t, accepted, 2)
	assert.Equal(t, SelectionEntry{SeatID: "a1", SeatType: "regular"}, accepted[0])
	assert.Equal(t, SelectionEntry{SeatID: "a2", SeatType: "vip"}, accepted[1])
}

func TestPrepareSeatSelectionRejectsBookedSeat(t *testing.T) {
	sc := customMapContext(t, []string{"a1"})

	_, err := PrepareSeatSelection(sc, [][]string{{"a1", "regular"}})

	assertKind(t, err, seatmap.KindSeatBooked)
	assert.True(t, strings.Contains(err.Error(), "a1"), "message names the contested seat")
}

func TestPrepareSeatSelectionStructuralFailures(t *testing.T) {
	t.Run("unresolvable event", func(t *testing.T) {
		sc := customMapContext(t, nil)
		sc.EventID = uuid.Nil
		_, err := PrepareSeatSelection(sc, [][]string{{"a1", "regular"}})
		assertKind(t, err, seatmap.KindInvalidEvent)
	})

	t.Run("custom map without seats", func(t *testing.T) {
		stored := seatmap.RawSeatMap{Kind: seatmap.KindCustom, Custom: &seatmap.SeatMap{Layout: seatmap.LayoutCustom}}
		sc := NewSelectionContext(uuid.New(), stored, 0, 0, nil, nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"a1", "regular"}})
		assertKind(t, err, seatmap.KindNoSeats)
	})

	t.Run("legacy grid without dimensions", func(t *testing.T) {
		sc := NewSelectionContext(uuid.New(), seatmap.RawSeatMap{Kind: seatmap.KindNone}, 0, 0, nil, nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"A1", "regular"}})
		assertKind(t, err, seatmap.KindNoSeats)
	})

	t.Run("empty selection", func(t *testing.T) {
		sc := customMapContext(t, nil)
		_, err := PrepareSeatSelection(sc, nil)
		assertKind(t, err, seatmap.KindEmptySelection)
	})

	t.Run("malformed entry", func(t *testing.T) {
		sc := customMapContext(t, nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"a1"}})
		assertKind(t, err, seatmap.KindInvalidSelection)
	})
}

func TestPrepareSeatSelectionEntryFailures(t *testing.T) {
	t.Run("unknown seat type", func(t *testing.T) {
		sc := customMapContext(t, nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"a1", "balcony"}})
		assertKind(t, err, seatmap.KindInvalidType)
	})

	t.Run("unknown seat code", func(t *testing.T) {
		sc := customMapContext(t, nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"z9", "regular"}})
		assertKind(t, err, seatmap.KindInvalidID)
	})

	t.Run("type mismatch against stored seat", func(t *testing.T) {
		// "vip" is a valid type elsewhere in the map, but a2 is the vip seat.
		sc := customMapContext(t, nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"a1", "vip"}})
		assertKind(t, err, seatmap.KindTypeMismatch)
	})
}

func TestPrepareSeatSelectionDeduplicatesWithinOneCall(t *testing.T) {
	sc := customMapContext(t, nil)

	accepted, err := PrepareSeatSelection(sc, [][]string{
		{"a1", "regular"},
		{"a1", "regular"},
		{"b2", "regular"},
	})

	require.NoError(t, err)
	require.Len(t, accepted, 2)
	assert.Equal(t, "a1", accepted[0].SeatID)
	assert.Equal(t, "b2", accepted[1].SeatID)
}

func TestPrepareSeatSelectionLegacyGrid(t *testing.T) {
	t.Run("valid selection with legacy ids", func(t *testing.T) {
		sc := legacyGridContext(nil)

		accepted, err := PrepareSeatSelection(sc, [][]string{{"R1S1", "regular"}, {"R1S2", "vip"}})

		require.NoError(t, err)
		require.Len(t, accepted, 2)
		assert.Equal(t, "A1", accepted[0].SeatID, "legacy ids are canonicalized")
		assert.Equal(t, "A2", accepted[1].SeatID)
	})

	t.Run("unparsable identifier", func(t *testing.T) {
		sc := legacyGridContext(nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"notaseat!", "regular"}})
		assertKind(t, err, seatmap.KindInvalidID)
	})

	t.Run("out of bounds", func(t *testing.T) {
		sc := legacyGridContext(nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"C1", "regular"}})
		assertKind(t, err, seatmap.KindOutOfBounds)
	})

	t.Run("grid type mismatch", func(t *testing.T) {
		sc := legacyGridContext(nil)
		_, err := PrepareSeatSelection(sc, [][]string{{"A2", "regular"}})
		assertKind(t, err, seatmap.KindTypeMismatch)
	})

	t.Run("booked seat stored in legacy form", func(t *testing.T) {
		sc := legacyGridContext([]string{"R1S1"})
		_, err := PrepareSeatSelection(sc, [][]string{{"A1", "regular"}})
		assertKind(t, err, seatmap.KindSeatBooked)
	})
}

func TestPrepareSeatSelectionDoesNotMutateBookedSet(t *testing.T) {
	booked := []string{"b1"}
	sc := customMapContext(t, booked)

	_, err := PrepareSeatSelection(sc, [][]string{{"a1", "regular"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, sc.Booked)
}
