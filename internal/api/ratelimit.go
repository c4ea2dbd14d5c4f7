package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"time"

	"github.com/kitboardapp/kitboard-server/internal/ratelimit"
)

// NewRateLimiter creates a keyed limiter from a per-interval rate.
// For example 30 per minute becomes 0.5 requests per second.
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *ratelimit.KeyedLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// WriteRateLimitMiddleware rate limits mutating requests by client IP.
// Reads pass through untouched. Returns 429 when the limit is exceeded.
func WriteRateLimitMiddleware(limiter *ratelimit.KeyedLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			key := getClientIP(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				writeTooManyRequests(w, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeTooManyRequests(w http.ResponseWriter, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)

	envelope := errorEnvelope{
		V:     1,
		Error: "Too many requests. Please try again later.",
	}
	if err := json.MarshalWrite(w, envelope); err != nil {
		logger.Error("Failed to encode rate limit response", "error", err)
	}
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in the chain.
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
