package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Seatwise application
// Pattern: seatwise:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for event listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for upcoming events
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for occupancy reports
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for seat-map availability
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live booked-seat counts
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "seatwise"
)

// ================== EVENTS MODULE ==================

// Event Cache Keys
const (
	// Event listings and searches
	CACHE_KEY_EVENTS_LIST     = CACHE_PREFIX + ":events:list"     // + :page:X:limit:Y:status:Z
	CACHE_KEY_EVENTS_UPCOMING = CACHE_PREFIX + ":events:upcoming" // + :limit:X

	// Individual event details
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

// Event Cache TTLs
const (
	TTL_EVENT_LIST     = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_EVENT_UPCOMING = TTL_SEMI_STATIC_QUICK  // 15 minutes
	TTL_EVENT_DETAIL   = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== SEAT MAP MODULE ==================

// Seat Map Cache Keys
const (
	CACHE_KEY_SEATMAP_VIEW   = CACHE_PREFIX + ":seatmap:view:event:"   // + event-id
	CACHE_KEY_SEATMAP_BOOKED = CACHE_PREFIX + ":seatmap:booked:event:" // + event-id
)

// Seat Map Cache TTLs
const (
	TTL_SEATMAP_VIEW   = TTL_DYNAMIC_SHORT  // 5 minutes
	TTL_SEATMAP_BOOKED = TTL_REALTIME_SHORT // 30 seconds
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_USER_BOOKINGS   = CACHE_PREFIX + ":bookings:user:uuid:"       // + user-id:page:X:limit:Y
	CACHE_KEY_EVENT_OCCUPANCY = CACHE_PREFIX + ":bookings:occupancy:event:" // + event-id
)

// Booking Cache TTLs
const (
	TTL_USER_BOOKINGS   = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_EVENT_OCCUPANCY = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis pattern deletes)
const (
	// Event listing and detail invalidation
	PATTERN_INVALIDATE_EVENT_ALL = CACHE_PREFIX + ":events:*"
)

// ================== HELPER FUNCTIONS ==================

// BuildEventListKey constructs paged listing keys
// Example: BuildEventListKey(1, 10, "PUBLISHED") -> "seatwise:events:list:page:1:limit:10:status:PUBLISHED"
func BuildEventListKey(page, limit int, status string) string {
	if status != "" {
		return CACHE_KEY_EVENTS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit) + ":status:" + status
	}
	return CACHE_KEY_EVENTS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildSeatMapViewKey(eventID string) string {
	return CACHE_KEY_SEATMAP_VIEW + eventID
}

func BuildUserBookingsKey(userID string, page, limit int) string {
	return CACHE_KEY_USER_BOOKINGS + userID + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildEventOccupancyKey(eventID string) string {
	return CACHE_KEY_EVENT_OCCUPANCY + eventID
}
