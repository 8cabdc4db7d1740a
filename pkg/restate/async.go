package restate

import (
	"context"

	"github.com/thushan/restate-client/internal/adapter/transport"
)

// AsyncClient runs every operation on its own goroutine and hands back a Call.
// It uses the async session profile: a capped pool, no transport retries and a
// total timeout per request. Empty response bodies decode to an empty map.
type AsyncClient struct {
	core *Client
}

// AsyncService is the Call returning flavour of Service
type AsyncService struct {
	svc *Service
}

// AsyncHandlerFunc is a bound handler of an AsyncService
type AsyncHandlerFunc func(ctx context.Context, payload Payload, key string) *Call[*Result]

func NewAsync(cfg *Config, opts ...Option) (*AsyncClient, error) {
	core, err := newClient(cfg, transport.ProfileAsync, opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{core: core}, nil
}

func (a *AsyncClient) Config() *Config {
	return a.core.Config()
}

func (a *AsyncClient) OutputStatusPolicy() OutputStatusPolicy {
	return a.core.OutputStatusPolicy()
}

func (a *AsyncClient) Service(name string) *AsyncService {
	return &AsyncService{svc: a.core.Service(name)}
}

func (a *AsyncClient) Send(ctx context.Context, service, handler, key string, payload Payload, opts ...SendOption) *Call[struct{}] {
	return start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.core.Send(ctx, service, handler, key, payload, opts...)
	})
}

func (a *AsyncClient) ServiceSend(ctx context.Context, service, handler string, payload Payload, opts ...SendOption) *Call[struct{}] {
	return start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.core.ServiceSend(ctx, service, handler, payload, opts...)
	})
}

func (a *AsyncClient) ObjectSend(ctx context.Context, service, handler, key string, payload Payload, opts ...SendOption) *Call[struct{}] {
	return start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.core.ObjectSend(ctx, service, handler, key, payload, opts...)
	})
}

func (a *AsyncClient) Attach(ctx context.Context, service, handler, idempotencyKey, key string) *Call[*Result] {
	return start(ctx, func(ctx context.Context) (*Result, error) {
		return a.core.Attach(ctx, service, handler, idempotencyKey, key)
	})
}

func (a *AsyncClient) ServiceAttach(ctx context.Context, service, handler, idempotencyKey string) *Call[*Result] {
	return start(ctx, func(ctx context.Context) (*Result, error) {
		return a.core.ServiceAttach(ctx, service, handler, idempotencyKey)
	})
}

func (a *AsyncClient) ObjectAttach(ctx context.Context, service, handler, key, idempotencyKey string) *Call[*Result] {
	return start(ctx, func(ctx context.Context) (*Result, error) {
		return a.core.ObjectAttach(ctx, service, handler, key, idempotencyKey)
	})
}

func (a *AsyncClient) Output(ctx context.Context, service, handler, idempotencyKey, key string) *Call[*Result] {
	return start(ctx, func(ctx context.Context) (*Result, error) {
		return a.core.Output(ctx, service, handler, idempotencyKey, key)
	})
}

func (a *AsyncClient) ServiceOutput(ctx context.Context, service, handler, idempotencyKey string) *Call[*Result] {
	return start(ctx, func(ctx context.Context) (*Result, error) {
		return a.core.ServiceOutput(ctx, service, handler, idempotencyKey)
	})
}

func (a *AsyncClient) ObjectOutput(ctx context.Context, service, handler, key, idempotencyKey string) *Call[*Result] {
	return start(ctx, func(ctx context.Context) (*Result, error) {
		return a.core.ObjectOutput(ctx, service, handler, key, idempotencyKey)
	})
}

func (a *AsyncClient) DeleteInvocation(ctx context.Context, invocationID string) *Call[*Result] {
	return start(ctx, func(ctx context.Context) (*Result, error) {
		return a.core.DeleteInvocation(ctx, invocationID)
	})
}

func (a *AsyncClient) Stats() Stats {
	return a.core.Stats()
}

func (a *AsyncClient) Close() {
	a.core.Close()
}

func (s *AsyncService) Invoke(ctx context.Context, handler string, payload Payload, key string) *Call[*Result] {
	return start(ctx, func(ctx context.Context) (*Result, error) {
		return s.svc.Invoke(ctx, handler, payload, key)
	})
}

func (s *AsyncService) Handler(name string) AsyncHandlerFunc {
	return func(ctx context.Context, payload Payload, key string) *Call[*Result] {
		return s.Invoke(ctx, name, payload, key)
	}
}

func (s *AsyncService) URL(handler, key string) string {
	return s.svc.URL(handler, key)
}
