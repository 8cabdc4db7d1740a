package restate

import (
	"context"

	"github.com/thushan/restate-client/internal/adapter/dispatch"
)

// Service calls handlers of one service (or virtual object) by name. The
// target URL is computed per call so a Service can be shared across goroutines.
type Service struct {
	dispatcher *dispatch.Service
	stats      *callStats
}

// Invoke POSTs payload to {base}/{service}/[{key}/]{handler}, or GETs it when
// payload is nil or empty. Anything but a 200 fails with a *StatusError.
func (s *Service) Invoke(ctx context.Context, handler string, payload Payload, key string) (*Result, error) {
	return s.stats.trackResult(s.dispatcher.Invoke(ctx, handler, payload, key))
}

// Handler binds a handler name
func (s *Service) Handler(name string) HandlerFunc {
	return func(ctx context.Context, payload Payload, key string) (*Result, error) {
		return s.Invoke(ctx, name, payload, key)
	}
}

func (s *Service) URL(handler, key string) string {
	return s.dispatcher.URL(handler, key)
}
