package database

import (
	"seatwise/internal/bookings"
	"seatwise/internal/events"
	"seatwise/internal/ledger"
	"seatwise/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() defaults on the models need this extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&ledger.BookedSeat{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
