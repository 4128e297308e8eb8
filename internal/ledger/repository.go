package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the persistence contract for the booked-seat ledger
type Repository interface {
	GetByEvent(ctx context.Context, eventID uuid.UUID) ([]BookedSeat, error)
	InsertIgnoreConflicts(ctx context.Context, seats []BookedSeat) (int64, error)
	InsertAllOrNothing(ctx context.Context, seats []BookedSeat) (bool, error)
	DeleteByEventAndSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new ledger repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByEvent returns every ledger row for an event, oldest first.
func (r *repository) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]BookedSeat, error) {
	var seats []BookedSeat
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&seats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load booked seats: %w", err)
	}
	return seats, nil
}

// InsertIgnoreConflicts inserts rows, silently skipping seats already in the
// ledger, and reports how many rows were actually written. Used by the
// idempotent union path.
func (r *repository) InsertIgnoreConflicts(ctx context.Context, seats []BookedSeat) (int64, error) {
	if len(seats) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seats)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert booked seats: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// InsertAllOrNothing inserts the rows inside one transaction and rolls back
// unless every row landed. A false return means at least one seat was taken
// by a concurrent booker; nothing is persisted in that case.
func (r *repository) InsertAllOrNothing(ctx context.Context, seats []BookedSeat) (bool, error) {
	if len(seats) == 0 {
		return true, nil
	}

	committed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seats)
		if result.Error != nil {
			return fmt.Errorf("failed to insert booked seats: %w", result.Error)
		}
		if result.RowsAffected != int64(len(seats)) {
			return gorm.ErrDuplicatedKey
		}
		committed = true
		return nil
	})

	if err == gorm.ErrDuplicatedKey {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return committed, nil
}

// DeleteByEventAndSeats removes the given seats from an event's ledger and
// reports how many rows existed. Removing absent seats is a no-op.
func (r *repository) DeleteByEventAndSeats(ctx context.Context, eventID uuid.UUID, seatIDs []string) (int64, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("event_id = ? AND seat_id IN ?", eventID, seatIDs).
		Delete(&BookedSeat{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete booked seats: %w", result.Error)
	}
	return result.RowsAffected, nil
}
