package transport

import (
	"net/http"

	"github.com/thushan/restate-client/internal/logger"
)

// loggingTransport records keep-alive activity per request, the probes
// themselves are sent by the OS on idle pooled connections.
type loggingTransport struct {
	next   http.RoundTripper
	logger *logger.StyledLogger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.DetailWithURL(req.Context(), "Keep-alive: sending request to", req.URL.String(),
		"method", req.Method,
		"keep_alive", "active")
	return t.next.RoundTrip(req)
}

func (t *loggingTransport) CloseIdleConnections() {
	closeIdle(t.next)
}

func closeIdle(rt http.RoundTripper) {
	if c, ok := rt.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}
