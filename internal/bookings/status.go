package bookings

// Status tracks the lifecycle of a booking. Only CONFIRMED bookings hold
// seats in the ledger; cancelling releases them back to the pool.
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

// CanBeCancelled reports whether a booking in this status still holds
// seats that can be released.
func (s Status) CanBeCancelled() bool {
	return s == StatusConfirmed
}
