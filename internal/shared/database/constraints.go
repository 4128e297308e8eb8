package database

import (
	"gorm.io/gorm"
)

// constraintStatements is the supplementary DDL run after AutoMigrate on
// every boot, so each statement must be rerunnable against an already
// migrated database. The UNIQUE (event_id, seat_id) arbiter against double
// booking is not created here: AutoMigrate builds it from the booked-seat
// model's uniqueIndex tag.
var constraintStatements = []string{
	// Booked-set lookups by event
	`CREATE INDEX IF NOT EXISTS idx_booked_seats_event ON booked_seats (event_id)`,

	// Booking-history queries by user
	`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id, created_at DESC)`,
}

// MigrateConstraints applies the supporting indexes the models don't declare.
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
