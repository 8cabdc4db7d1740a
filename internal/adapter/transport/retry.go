package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/thushan/restate-client/internal/config"
	"github.com/thushan/restate-client/internal/core/constants"
	"github.com/thushan/restate-client/internal/logger"
	"github.com/thushan/restate-client/internal/util"
)

// drained bodies larger than this are just closed
const maxDrainBytes = 64 << 10

// RetryPolicy is the bounded transport retry applied to the synchronous profile
type RetryPolicy struct {
	statusCodes   map[int]struct{}
	MaxRetries    int
	BackoffFactor time.Duration
	MaxBackoff    time.Duration
}

func NewRetryPolicy(c config.RetryConfig) RetryPolicy {
	codes := make(map[int]struct{}, len(c.StatusCodes))
	for _, code := range c.StatusCodes {
		codes[code] = struct{}{}
	}
	return RetryPolicy{
		MaxRetries:    c.MaxRetries,
		BackoffFactor: c.BackoffFactor,
		MaxBackoff:    c.MaxBackoff,
		statusCodes:   codes,
	}
}

func (p RetryPolicy) retriesStatus(code int) bool {
	_, ok := p.statusCodes[code]
	return ok
}

// retryTransport re-issues requests that failed with a transient status or a
// connection error. Bad statuses are only retried for idempotent methods, a
// POST that reached the server is never sent twice. Failures to establish the
// connection are retried for every method since nothing was sent.
type retryTransport struct {
	next   http.RoundTripper
	logger *logger.StyledLogger
	sleep  func(ctx context.Context, d time.Duration) error
	now    func() time.Time
	policy RetryPolicy
}

func newRetryTransport(next http.RoundTripper, policy RetryPolicy, log *logger.StyledLogger) *retryTransport {
	return &retryTransport{
		next:   next,
		policy: policy,
		logger: log,
		sleep:  sleepContext,
		now:    time.Now,
	}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	for retry := 0; ; retry++ {
		attempt, err := rewindRequest(req, retry)
		if err != nil {
			return nil, err
		}

		resp, err := t.next.RoundTrip(attempt)
		if retry >= t.policy.MaxRetries {
			return resp, err
		}

		wait, retryable := t.shouldRetry(req, resp, err)
		if !retryable {
			return resp, err
		}

		backoff := util.CalculateRetryBackoff(retry+1, t.policy.BackoffFactor, t.policy.MaxBackoff)
		if wait > backoff {
			backoff = wait
		}

		status := 0
		if resp != nil {
			status = resp.StatusCode
			discardBody(resp)
		}
		t.logger.Debug("Retrying request",
			"method", req.Method,
			"url", req.URL.String(),
			"retry", retry+1,
			"max_retries", t.policy.MaxRetries,
			"status", status,
			"error", err,
			"backoff", backoff.String())

		if err := t.sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}
}

func (t *retryTransport) CloseIdleConnections() {
	closeIdle(t.next)
}

// shouldRetry decides on one attempt, the duration is a server requested wait (Retry-After)
func (t *retryTransport) shouldRetry(req *http.Request, resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		if req.Context().Err() != nil {
			return 0, false
		}
		if isConnectError(err) {
			return 0, canRewind(req)
		}
		return 0, isIdempotent(req.Method) && canRewind(req)
	}

	if !t.policy.retriesStatus(resp.StatusCode) || !isIdempotent(req.Method) || !canRewind(req) {
		return 0, false
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusRequestEntityTooLarge:
		if wait, ok := util.ParseRetryAfter(resp.Header.Get(constants.HeaderRetryAfter), t.now()); ok {
			return wait, true
		}
	}
	return 0, true
}

// rewindRequest hands out a fresh body for every attempt after the first
func rewindRequest(req *http.Request, retry int) (*http.Request, error) {
	if retry == 0 || req.Body == nil || req.Body == http.NoBody {
		return req, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, nil
}

func canRewind(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func isConnectError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}

func discardBody(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, resp.Body, maxDrainBytes)
	_ = resp.Body.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
