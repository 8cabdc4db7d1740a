package domain

import "github.com/google/uuid"

// NewIdempotencyKey returns a random key suitable for the idempotency-key header
func NewIdempotencyKey() string {
	return uuid.NewString()
}
