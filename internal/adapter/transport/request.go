package transport

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/thushan/restate-client/internal/core/constants"
	"github.com/thushan/restate-client/internal/version"
)

// NewRequest builds an ingress request. Bodies are always JSON, the idempotency
// key header is only set when one was given.
func NewRequest(ctx context.Context, method, url string, body []byte, idempotencyKey string) (*http.Request, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, http.NoBody)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	}
	req.Header.Set(constants.HeaderUserAgent, version.UserAgent())
	if idempotencyKey != "" {
		req.Header.Set(constants.HeaderIdempotencyKey, idempotencyKey)
	}
	return req, nil
}

// IsSuccess is any 2xx
func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
