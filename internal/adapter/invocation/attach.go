package invocation

import (
	"context"
	"net/http"

	"github.com/thushan/restate-client/internal/adapter/transport"
	"github.com/thushan/restate-client/internal/core/domain"
)

// Attach waits on a running invocation identified by its idempotency key
func (c *Client) Attach(ctx context.Context, target domain.Target, idempotencyKey string) (*domain.Result, error) {
	return c.fetch(ctx, OpAttach, target, false, idempotencyKey, true)
}

func (c *Client) ServiceAttach(ctx context.Context, service, handler, idempotencyKey string) (*domain.Result, error) {
	return c.Attach(ctx, domain.ServiceTarget(service, handler), idempotencyKey)
}

func (c *Client) ObjectAttach(ctx context.Context, service, handler, key, idempotencyKey string) (*domain.Result, error) {
	return c.fetch(ctx, OpAttach, domain.ObjectTarget(service, key, handler), true, idempotencyKey, true)
}

// Output fetches the result of a completed invocation. Whether a non-2xx
// fails or is decoded like any other body is down to Policy.OutputStatusCheck.
func (c *Client) Output(ctx context.Context, target domain.Target, idempotencyKey string) (*domain.Result, error) {
	return c.fetch(ctx, OpOutput, target, false, idempotencyKey, c.policy.OutputStatusCheck)
}

func (c *Client) ServiceOutput(ctx context.Context, service, handler, idempotencyKey string) (*domain.Result, error) {
	return c.Output(ctx, domain.ServiceTarget(service, handler), idempotencyKey)
}

func (c *Client) ObjectOutput(ctx context.Context, service, handler, key, idempotencyKey string) (*domain.Result, error) {
	return c.fetch(ctx, OpOutput, domain.ObjectTarget(service, key, handler), true, idempotencyKey, c.policy.OutputStatusCheck)
}

func (c *Client) fetch(ctx context.Context, op string, target domain.Target, requireKey bool, idempotencyKey string, checkStatus bool) (*domain.Result, error) {
	if err := target.Validate(requireKey); err != nil {
		return nil, err
	}
	if err := validateIdempotencyKey(idempotencyKey); err != nil {
		return nil, err
	}

	client, err := c.session(op)
	if err != nil {
		return nil, err
	}

	url := c.InvocationURL(target, idempotencyKey, op)
	log := c.logger.With("op", op, "idempotency_key", idempotencyKey)

	resp, err := c.do(ctx, client, http.MethodGet, url, nil, idempotencyKey)
	if err != nil {
		log.ErrorWithURL("Failed to reach invocation of "+describe(target)+" at", url, "error", err)
		return nil, domain.NewTerminalError(op, err)
	}

	if checkStatus && !transport.IsSuccess(resp.StatusCode) {
		statusErr := c.statusError(resp, url)
		log.ErrorWithURL("Failed to "+op+" "+describe(target)+" at", url, "error", statusErr)
		return nil, domain.NewTerminalError(op, statusErr)
	}

	result, _, err := c.codec.Decode(resp, c.policy.EmptyBodyAsMap)
	if err != nil {
		log.ErrorWithURL("Failed to read "+op+" of "+describe(target)+" at", url, "error", err)
		return nil, domain.NewTerminalError(op, err)
	}
	return result, nil
}
