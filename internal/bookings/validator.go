package bookings

import (
	"fmt"

	"github.com/google/uuid"

	"seatwise/internal/seatmap"
)

// SelectionEntry is one validated (seat id, seat type) pair, safe to hand to
// the ledger for committing.
type SelectionEntry struct {
	SeatID   string `json:"seat_id"`
	SeatType string `json:"seat_type"`
}

// SelectionContext carries everything PrepareSeatSelection reads: the
// event's seating layout in whichever shape it is stored, the known seat
// types, and a snapshot of the booked-seat set. Building the context does
// the normalization once so validation itself stays pure.
type SelectionContext struct {
	EventID   uuid.UUID
	Custom    *seatmap.SeatMap
	Lookup    map[string]seatmap.SeatInfo
	Grid      seatmap.LegacyGrid
	GridRows  int
	GridCols  int
	SeatTypes seatmap.SeatTypes
	Booked    []string
}

// NewSelectionContext normalizes the stored layout into a validation
// context. For custom maps the seat types come from the map itself; for
// legacy grids the caller passes the event's stored types (defaults apply
// when empty).
func NewSelectionContext(eventID uuid.UUID, stored seatmap.RawSeatMap, gridRows, gridCols int, eventTypes seatmap.SeatTypes, booked []string) *SelectionContext {
	sc := &SelectionContext{
		EventID:  eventID,
		GridRows: gridRows,
		GridCols: gridCols,
		Booked:   booked,
	}

	switch stored.Kind {
	case seatmap.KindCustom:
		normalized := seatmap.NormalizeCustomSeatMap(stored.Custom)
		sc.Custom = normalized
		sc.Lookup = seatmap.BuildCustomSeatLookup(normalized)
		sc.SeatTypes = normalized.SeatTypes
	case seatmap.KindGrid:
		sc.Grid = stored.Grid
		sc.SeatTypes = seatmap.NormalizeSeatTypes(eventTypes)
	default:
		sc.SeatTypes = seatmap.NormalizeSeatTypes(eventTypes)
	}

	return sc
}

// IsCustom reports whether the context was built from a custom map.
func (sc *SelectionContext) IsCustom() bool {
	return sc.Custom != nil
}

// PrepareSeatSelection turns a raw client selection into a validated,
// deduplicated list or rejects it with a tagged reason. It never mutates
// the booked-seat set; committing happens elsewhere, after payment.
func PrepareSeatSelection(sc *SelectionContext, selected [][]string) ([]SelectionEntry, error) {
	if sc == nil || sc.EventID == uuid.Nil {
		return nil, seatmap.NewValidationError(seatmap.KindInvalidEvent, "the selected event could not be found")
	}

	if sc.IsCustom() {
		if len(sc.Lookup) == 0 {
			return nil, seatmap.NewValidationError(seatmap.KindNoSeats, "seats are not available for this event")
		}
	} else if sc.GridRows <= 0 || sc.GridCols <= 0 || sc.Grid == nil {
		return nil, seatmap.NewValidationError(seatmap.KindNoSeats, "seats are not available for this event")
	}

	if len(selected) == 0 {
		return nil, seatmap.NewValidationError(seatmap.KindEmptySelection, "please choose at least one seat before booking")
	}

	booked := make(map[string]bool, len(sc.Booked))
	for _, id := range sc.Booked {
		booked[seatmap.ConvertLegacySeatID(id)] = true
	}

	var accepted []SelectionEntry
	seen := make(map[string]bool, len(selected))

	for _, entry := range selected {
		if len(entry) < 2 {
			return nil, seatmap.NewValidationError(seatmap.KindInvalidSelection, "invalid seat selection provided")
		}

		seatType := seatmap.SanitizeKey(entry[1])

		var seatID string
		if sc.IsCustom() {
			seatID = seatmap.Slugify(entry[0])
		} else {
			seatID = seatmap.ConvertLegacySeatID(entry[0])
		}

		if !sc.SeatTypes.Has(seatType) {
			return nil, seatmap.NewValidationError(seatmap.KindInvalidType, "one or more selected seats do not exist")
		}

		var storedType string
		if sc.IsCustom() {
			info, ok := sc.Lookup[seatID]
			if seatID == "" || !ok {
				return nil, seatmap.NewValidationError(seatmap.KindInvalidID, "one or more selected seats do not exist")
			}
			storedType = seatmap.SanitizeKey(info.Type)
		} else {
			parsed := seatmap.ParseSeatIdentifier(seatID)
			if parsed == nil {
				return nil, seatmap.NewValidationError(seatmap.KindInvalidID, "invalid seat selection provided")
			}
			cell, ok := sc.Grid.At(parsed.Row, parsed.Column)
			if !ok {
				return nil, seatmap.NewValidationError(seatmap.KindOutOfBounds, "one or more selected seats do not exist")
			}
			storedType = seatmap.SanitizeKey(cell)
		}

		if storedType != seatType {
			return nil, seatmap.NewValidationError(seatmap.KindTypeMismatch, "one or more selected seats do not exist")
		}

		if booked[seatID] {
			return nil, seatmap.NewValidationError(seatmap.KindSeatBooked,
				fmt.Sprintf("seat %s has already been booked, please choose a different seat", seatID))
		}

		if seen[seatID] {
			continue
		}

		accepted = append(accepted, SelectionEntry{SeatID: seatID, SeatType: seatType})
		seen[seatID] = true
	}

	if len(accepted) == 0 {
		return nil, seatmap.NewValidationError(seatmap.KindEmptySelection, "please choose at least one seat before booking")
	}

	return accepted, nil
}
