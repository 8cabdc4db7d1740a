package constants

const (
	ContentTypeJSON   = "application/json"
	ContentTypeHeader = "Content-Type"

	HeaderIdempotencyKey = "idempotency-key"
	HeaderUserAgent      = "User-Agent"
	HeaderRetryAfter     = "Retry-After"
)
