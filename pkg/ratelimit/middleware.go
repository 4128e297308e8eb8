package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"seatwise/internal/shared/utils/response"
	"seatwise/pkg/logger"
)

// Middleware enforces the per-IP sliding window on every request. A Redis
// failure rejects the request with a 500 instead of admitting it unchecked.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientIP(c)
		limitType := limitTypeForPath(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), ip, limitType)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Rate limit check failed", nil, nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), ip, c.FullPath())
			response.RespondJSON(c, "error", http.StatusTooManyRequests, "Rate limit exceeded", nil, gin.H{
				"limit":      result.Limit,
				"reset_time": result.ResetTime,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// limitTypeForPath maps a route to its budget class. Seat-map saves share
// the booking budget because both mutate seat inventory.
func limitTypeForPath(path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth
	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin
	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth
	case strings.Contains(path, "/booking"), strings.Contains(path, "/seatmap"):
		return RateLimitTypeBooking
	case strings.Contains(path, "/events"):
		return RateLimitTypePublic
	default:
		return RateLimitTypeDefault
	}
}

// clientIP prefers proxy headers over RemoteAddr, validating each candidate
// so a spoofed header cannot smuggle in a non-IP key.
func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); net.ParseIP(realIP) != nil {
		return realIP
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
