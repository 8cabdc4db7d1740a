package ports

import (
	"context"

	"github.com/thushan/restate-client/internal/core/domain"
)

// InvocationService is the invocation-control surface of the ingress
type InvocationService interface {
	Send(ctx context.Context, target domain.Target, payload domain.Payload, opts domain.SendOptions) error
	Attach(ctx context.Context, target domain.Target, idempotencyKey string) (*domain.Result, error)
	Output(ctx context.Context, target domain.Target, idempotencyKey string) (*domain.Result, error)
	Delete(ctx context.Context, invocationID string) (*domain.Result, error)
}

// HandlerDispatcher calls a named handler below a base URL
type HandlerDispatcher interface {
	Invoke(ctx context.Context, handler string, payload domain.Payload, key string) (*domain.Result, error)
}
