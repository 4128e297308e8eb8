package seatmap

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"seatwise/internal/shared/constants"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"
)

// EventStore is the slice of the events layer this service needs: loading
// and storing an event's layout without importing the events package.
type EventStore interface {
	LoadSeatMap(ctx context.Context, eventID uuid.UUID) (stored RawSeatMap, eventTypes SeatTypes, legacyRows, legacyCols int, err error)
	StoreSeatMap(ctx context.Context, eventID, adminID uuid.UUID, doc *SeatMap) error
}

// LedgerReader exposes the booked-seat set for the viewer payload.
type LedgerReader interface {
	GetBookedSeats(ctx context.Context, eventID uuid.UUID) ([]string, error)
}

// View is the seat-picker payload: the layout in canonical form plus the
// current booked set.
type View struct {
	Layout     string     `json:"layout"`
	Custom     *SeatMap   `json:"custom,omitempty"`
	Grid       LegacyGrid `json:"grid,omitempty"`
	GridRows   int        `json:"grid_rows,omitempty"`
	GridCols   int        `json:"grid_cols,omitempty"`
	SeatTypes  SeatTypes  `json:"seat_types"`
	Booked     []string   `json:"booked"`
	TotalSeats int        `json:"total_seats"`
}

// Service owns seat-map reads and the single write path (the sanitizer).
type Service interface {
	SetCacheService(cacheService cache.Service)

	GetView(ctx context.Context, eventID uuid.UUID) (*View, error)
	SaveSubmission(ctx context.Context, eventID, adminID uuid.UUID, payload *Submission) (*SeatMap, error)
	ConvertLegacyGrid(ctx context.Context, eventID, adminID uuid.UUID) (*SeatMap, error)
}

type service struct {
	store        EventStore
	ledger       LedgerReader
	log          *logger.Logger
	cacheService cache.Service
}

// NewService creates a new seat map service instance
func NewService(store EventStore, ledger LedgerReader, log *logger.Logger) Service {
	return &service{store: store, ledger: ledger, log: log}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// GetView composes two cached pieces: the layout, which only changes on a
// designer save, and the booked-seat set, which changes on every booking
// and therefore lives under a much shorter TTL.
func (s *service) GetView(ctx context.Context, eventID uuid.UUID) (*View, error) {
	if s.cacheService != nil {
		var view View
		err := s.cacheService.GetOrSet(ctx,
			constants.BuildSeatMapViewKey(eventID.String()),
			constants.TTL_SEATMAP_VIEW,
			func() (interface{}, error) { return s.buildLayoutView(ctx, eventID) },
			&view,
		)
		if err == nil {
			booked, berr := s.loadBookedSeats(ctx, eventID)
			if berr != nil {
				return nil, berr
			}
			view.Booked = booked
			return &view, nil
		}
		// Validation failures must keep their kind; everything else falls
		// through to the uncached path.
		if verr, ok := AsValidationError(err); ok {
			return nil, verr
		}
	}

	view, err := s.buildLayoutView(ctx, eventID)
	if err != nil {
		return nil, err
	}
	booked, err := s.loadBookedSeats(ctx, eventID)
	if err != nil {
		return nil, err
	}
	view.Booked = booked
	return view, nil
}

// loadBookedSeats reads the booked set through the realtime cache tier.
func (s *service) loadBookedSeats(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	fetch := func() (interface{}, error) {
		booked, err := s.ledger.GetBookedSeats(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if booked == nil {
			booked = []string{}
		}
		return booked, nil
	}

	if s.cacheService != nil {
		var booked []string
		err := s.cacheService.GetOrSet(ctx,
			constants.CACHE_KEY_SEATMAP_BOOKED+eventID.String(),
			constants.TTL_SEATMAP_BOOKED,
			fetch,
			&booked,
		)
		if err == nil {
			if booked == nil {
				booked = []string{}
			}
			return booked, nil
		}
	}

	raw, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to load booked seats: %w", err)
	}
	return raw.([]string), nil
}

// buildLayoutView assembles the layout portion of the view; the booked set
// is filled in by the caller.
func (s *service) buildLayoutView(ctx context.Context, eventID uuid.UUID) (*View, error) {
	stored, eventTypes, legacyRows, legacyCols, err := s.store.LoadSeatMap(ctx, eventID)
	if err != nil {
		return nil, err
	}

	booked := []string{}

	switch stored.Kind {
	case KindCustom:
		normalized := NormalizeCustomSeatMap(stored.Custom)
		if normalized.TotalSeats() == 0 {
			return nil, NewValidationError(KindNoSeats, "seats are not available for this event")
		}
		return &View{
			Layout:     LayoutCustom,
			Custom:     normalized,
			SeatTypes:  normalized.SeatTypes,
			Booked:     booked,
			TotalSeats: normalized.TotalSeats(),
		}, nil
	case KindGrid:
		if legacyRows <= 0 || legacyCols <= 0 {
			return nil, NewValidationError(KindNoSeats, "seats are not available for this event")
		}
		total := 0
		for _, row := range stored.Grid {
			total += len(row)
		}
		return &View{
			Layout:     "grid",
			Grid:       stored.Grid,
			GridRows:   legacyRows,
			GridCols:   legacyCols,
			SeatTypes:  NormalizeSeatTypes(eventTypes),
			Booked:     booked,
			TotalSeats: total,
		}, nil
	default:
		return nil, NewValidationError(KindNoSeats, "seats are not available for this event")
	}
}

func (s *service) SaveSubmission(ctx context.Context, eventID, adminID uuid.UUID, payload *Submission) (*SeatMap, error) {
	doc, err := SanitizeSubmission(payload)
	if err != nil {
		return nil, err
	}

	if err := s.store.StoreSeatMap(ctx, eventID, adminID, doc); err != nil {
		return nil, fmt.Errorf("failed to store seat map: %w", err)
	}
	s.invalidateViewCache(ctx, eventID)

	s.log.InfoContext(ctx, "seat map saved",
		"event_id", eventID.String(),
		"sections", len(doc.Sections),
		"seats", doc.TotalSeats(),
	)

	return doc, nil
}

// ConvertLegacyGrid migrates a grid-based event onto the designer layout and
// persists the result.
func (s *service) ConvertLegacyGrid(ctx context.Context, eventID, adminID uuid.UUID) (*SeatMap, error) {
	stored, _, _, _, err := s.store.LoadSeatMap(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if stored.Kind == KindCustom {
		return NormalizeCustomSeatMap(stored.Custom), nil
	}
	if stored.Kind != KindGrid {
		return nil, NewValidationError(KindNoSeats, "seats are not available for this event")
	}

	doc := NormalizeCustomSeatMap(ConvertGridToCustomMap(stored.Grid))
	if doc.TotalSeats() == 0 {
		return nil, NewValidationError(KindEmptyMap, "add at least one section with seats before saving")
	}

	if err := s.store.StoreSeatMap(ctx, eventID, adminID, doc); err != nil {
		return nil, fmt.Errorf("failed to store converted seat map: %w", err)
	}
	s.invalidateViewCache(ctx, eventID)

	s.log.InfoContext(ctx, "legacy grid converted to custom layout",
		"event_id", eventID.String(),
		"seats", doc.TotalSeats(),
	)

	return doc, nil
}

func (s *service) invalidateViewCache(ctx context.Context, eventID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.BuildSeatMapViewKey(eventID.String()))
}
