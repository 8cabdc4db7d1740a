package constants

import (
	"net/http"
	"time"
)

// Transport level retry policy for the synchronous profile. The async profile never retries.
const (
	DefaultMaxRetries = 3

	// backoff before retry n is factor * 2^(n-1); the first retry goes out immediately
	DefaultRetryBackoffFactor = 1 * time.Second
	DefaultMaxRetryBackoff    = 120 * time.Second
)

// DefaultRetryStatusCodes are the transient statuses we retry on
var DefaultRetryStatusCodes = []int{
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}
