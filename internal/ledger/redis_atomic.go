package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AtomicReserver runs the Redis-side check-and-reserve that closes the gap
// between "selection validated" and "ledger row inserted". A reservation
// marker hard-expires, so a crashed commit never wedges a seat.
type AtomicReserver struct {
	redis *redis.Client
}

// NewAtomicReserver creates a new atomic reserver handler
func NewAtomicReserver(redisClient *redis.Client) *AtomicReserver {
	return &AtomicReserver{redis: redisClient}
}

// Lua script for atomic seat reservation - prevents two bookers passing
// validation for the same seat between check and commit
const luaAtomicReserve = `
-- KEYS[1] = event_id
-- ARGV[1] = ttl_seconds
-- ARGV[2..N] = seat_ids

local event_id = KEYS[1]
local ttl = tonumber(ARGV[1])

-- Check that no requested seat has a live reservation marker
for i = 2, #ARGV do
    local seat_key = "seatwise:reserve:" .. event_id .. ":" .. ARGV[i]

    if redis.call("EXISTS", seat_key) == 1 then
        return {0, ARGV[i]}
    end
end

-- All free, mark them atomically
for i = 2, #ARGV do
    local seat_key = "seatwise:reserve:" .. event_id .. ":" .. ARGV[i]
    redis.call("SETEX", seat_key, ttl, "reserved")
end

return {1, "success"}
`

// Lua script for atomic reservation release
const luaAtomicRelease = `
-- KEYS[1] = event_id
-- ARGV[1..N] = seat_ids

local event_id = KEYS[1]
local released = 0

for i = 1, #ARGV do
    local seat_key = "seatwise:reserve:" .. event_id .. ":" .. ARGV[i]
    released = released + redis.call("DEL", seat_key)
end

return {1, released}
`

// ErrSeatReserved reports a reservation conflict and carries the first
// contested seat id.
type ErrSeatReserved struct {
	SeatID string
}

func (e *ErrSeatReserved) Error() string {
	return fmt.Sprintf("seat already reserved: %s", e.SeatID)
}

// Reserve atomically marks the seats for an event. It fails with
// ErrSeatReserved when any seat already carries a live marker, leaving no
// markers behind.
func (a *AtomicReserver) Reserve(ctx context.Context, eventID string, seatIDs []string, ttl time.Duration) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	if len(seatIDs) == 0 {
		return nil
	}

	keys := []string{eventID}
	args := []interface{}{int(ttl.Seconds())}
	for _, seatID := range seatIDs {
		args = append(args, seatID)
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicReserve, keys, args...).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = a.redis.Eval(ctx, luaAtomicReserve, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic reserve: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		if conflictSeat, ok := resultArray[1].(string); ok {
			return &ErrSeatReserved{SeatID: conflictSeat}
		}
		return fmt.Errorf("failed to reserve seats")
	}

	return nil
}

// Release atomically drops the reservation markers for the seats and
// reports how many existed.
func (a *AtomicReserver) Release(ctx context.Context, eventID string, seatIDs []string) (int, error) {
	if a.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}
	if len(seatIDs) == 0 {
		return 0, nil
	}

	args := make([]interface{}, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		args = append(args, seatID)
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicRelease, []string{eventID}, args...).Result()
	if err != nil {
		result, err = a.redis.Eval(ctx, luaAtomicRelease, []string{eventID}, args...).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute atomic release: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return 0, fmt.Errorf("unexpected result format from Lua script")
	}

	released, ok := resultArray[1].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid released count in Lua script result")
	}

	return int(released), nil
}

// PreloadScripts loads Lua scripts into Redis for better performance
func (a *AtomicReserver) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := a.redis.ScriptLoad(ctx, luaAtomicReserve).Result(); err != nil {
		return fmt.Errorf("failed to load reserve script: %w", err)
	}
	if _, err := a.redis.ScriptLoad(ctx, luaAtomicRelease).Result(); err != nil {
		return fmt.Errorf("failed to load release script: %w", err)
	}

	return nil
}
