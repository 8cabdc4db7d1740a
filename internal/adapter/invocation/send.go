package invocation

import (
	"context"
	"net/http"

	"github.com/thushan/restate-client/internal/adapter/transport"
	"github.com/thushan/restate-client/internal/core/domain"
)

// Send fires the handler without waiting for its result. The target key picks
// the flavour. Every failure past validation is terminal and carries the
// upstream error text, nothing is retried here beyond the transport policy.
func (c *Client) Send(ctx context.Context, target domain.Target, payload domain.Payload, opts domain.SendOptions) error {
	if err := target.Validate(false); err != nil {
		return err
	}

	client, err := c.session(OpSend)
	if err != nil {
		return err
	}

	url := c.SendURL(target, opts)

	body, err := c.codec.EncodePayload(payload)
	if err != nil {
		c.logger.ErrorWithURL("Failed to send payload to", url, "error", err)
		return domain.NewTerminalError(OpSend, err)
	}

	resp, err := c.do(ctx, client, http.MethodPost, url, body, opts.IdempotencyKey)
	if err != nil {
		c.logger.ErrorWithURL("Failed to send payload to", url, "error", err)
		return domain.NewTerminalError(OpSend, err)
	}

	if !transport.IsSuccess(resp.StatusCode) {
		statusErr := c.statusError(resp, url)
		c.logger.ErrorWithURL("Failed to send payload to", url, "error", statusErr)
		return domain.NewTerminalError(OpSend, statusErr)
	}

	// nothing to decode, release the connection back to the pool
	if _, err := c.codec.ReadBody(resp); err != nil {
		c.logger.Debug("Failed to drain send response", "error", err)
	}

	c.logger.DebugWithURL("Sent payload successfully to", url,
		"target", target.String(),
		"delayed", opts.Delay > 0,
		"idempotent", opts.IdempotencyKey != "")
	return nil
}

func (c *Client) ServiceSend(ctx context.Context, service, handler string, payload domain.Payload, opts domain.SendOptions) error {
	return c.Send(ctx, domain.ServiceTarget(service, handler), payload, opts)
}

func (c *Client) ObjectSend(ctx context.Context, service, handler, key string, payload domain.Payload, opts domain.SendOptions) error {
	target := domain.ObjectTarget(service, key, handler)
	if err := target.Validate(true); err != nil {
		return err
	}
	return c.Send(ctx, target, payload, opts)
}
