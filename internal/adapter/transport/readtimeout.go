package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// ErrReadTimeout is returned by a sync response body when a single read
// stalls for longer than the configured read timeout
var ErrReadTimeout = errors.New("read timeout")

// readTimeoutTransport bounds every read of a response body, the header wait
// is already bounded by ResponseHeaderTimeout
type readTimeoutTransport struct {
	next    http.RoundTripper
	timeout time.Duration
}

func (t *readTimeoutTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.Body == nil || resp.Body == http.NoBody {
		return resp, err
	}
	resp.Body = newIdleTimeoutBody(resp.Body, t.timeout)
	return resp, nil
}

func (t *readTimeoutTransport) CloseIdleConnections() {
	closeIdle(t.next)
}

// idleTimeoutBody closes the underlying body when a Read blocks past the
// timeout, which unblocks the Read. The clock only runs while a Read is
// outstanding, time the caller spends between reads does not count.
type idleTimeoutBody struct {
	body    io.ReadCloser
	timer   *time.Timer
	timeout time.Duration
	expired atomic.Bool
}

func newIdleTimeoutBody(body io.ReadCloser, timeout time.Duration) *idleTimeoutBody {
	b := &idleTimeoutBody{body: body, timeout: timeout}
	// armed per Read
	b.timer = time.AfterFunc(timeout, b.expire)
	b.timer.Stop()
	return b
}

func (b *idleTimeoutBody) Read(p []byte) (int, error) {
	if b.expired.Load() {
		return 0, b.timeoutErr()
	}

	b.timer.Reset(b.timeout)

	n, err := b.body.Read(p)
	b.timer.Stop()

	if err != nil && b.expired.Load() {
		return n, b.timeoutErr()
	}
	return n, err
}

func (b *idleTimeoutBody) Close() error {
	b.timer.Stop()
	return b.body.Close()
}

func (b *idleTimeoutBody) expire() {
	b.expired.Store(true)
	_ = b.body.Close()
}

func (b *idleTimeoutBody) timeoutErr() error {
	return fmt.Errorf("%w: no data for %s", ErrReadTimeout, b.timeout)
}
