package invocation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/thushan/restate-client/internal/adapter/transport"
	"github.com/thushan/restate-client/internal/core/domain"
)

// Delete removes an invocation. An invocation that is already gone (404) is
// not an error: the result is nil and a warning is logged.
func (c *Client) Delete(ctx context.Context, invocationID string) (*domain.Result, error) {
	if invocationID == "" {
		return nil, domain.NewValidationError("Invocation id")
	}

	client, err := c.session(OpDelete)
	if err != nil {
		return nil, err
	}

	url := c.DeleteURL(invocationID)

	resp, err := c.do(ctx, client, http.MethodDelete, url, nil, "")
	if err != nil {
		return nil, c.deleteFailed(invocationID, url, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		_, _ = c.codec.ReadBody(resp)
		c.logger.WarnWithURL(fmt.Sprintf("Invocation %s not found at", invocationID), url)
		return nil, nil
	}

	if !transport.IsSuccess(resp.StatusCode) {
		return nil, c.deleteFailed(invocationID, url, c.statusError(resp, url))
	}

	result, _, err := c.codec.Decode(resp, c.policy.EmptyDeleteAsMap)
	if err != nil {
		return nil, c.deleteFailed(invocationID, url, err)
	}
	return result, nil
}

func (c *Client) deleteFailed(invocationID, url string, err error) error {
	c.logger.ErrorWithURL(fmt.Sprintf("Failed to delete invocation %s at", invocationID), url, "error", err)
	return domain.NewTerminalErrorf(OpDelete, err, "failed to delete invocation %s: %v", invocationID, err)
}
