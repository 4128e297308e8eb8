package database

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatwise/internal/ledger"
)

func TestConstraintStatementsAreRerunnable(t *testing.T) {
	require.NotEmpty(t, constraintStatements)

	for _, stmt := range constraintStatements {
		// Every statement runs on every boot, so it must be a no-op the
		// second time around.
		assert.True(t, strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS"),
			"statement must be rerunnable: %s", stmt)

		// Postgres has no ADD CONSTRAINT IF NOT EXISTS form; a bare ALTER
		// here would fail the first boot with a syntax error or the second
		// with a duplicate constraint.
		assert.NotContains(t, stmt, "ADD CONSTRAINT")
		assert.NotContains(t, stmt, "ALTER TABLE")
	}
}

func TestBookedSeatUniqueIndexComesFromModel(t *testing.T) {
	// The (event_id, seat_id) double-booking arbiter is created by
	// AutoMigrate from the model tags, not by MigrateConstraints.
	typ := reflect.TypeOf(ledger.BookedSeat{})

	for _, name := range []string{"EventID", "SeatID"} {
		field, ok := typ.FieldByName(name)
		require.True(t, ok, "missing field %s", name)
		assert.Contains(t, field.Tag.Get("gorm"), "uniqueIndex:idx_booked_seats_event_seat")
	}
}
