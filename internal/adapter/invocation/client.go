package invocation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/thushan/restate-client/internal/adapter/codec"
	"github.com/thushan/restate-client/internal/adapter/transport"
	"github.com/thushan/restate-client/internal/core/constants"
	"github.com/thushan/restate-client/internal/core/domain"
	"github.com/thushan/restate-client/internal/core/ports"
	"github.com/thushan/restate-client/internal/logger"
	"github.com/thushan/restate-client/internal/util"
)

const (
	OpSend   = constants.PathSend
	OpAttach = constants.PathAttach
	OpOutput = constants.PathOutput
	OpDelete = "delete"
)

// Policy holds the behaviour differences between the client flavours
type Policy struct {
	// EmptyBodyAsMap decodes an empty attach/output body to {}
	EmptyBodyAsMap bool

	// EmptyDeleteAsMap decodes an empty delete body to {}. The flavours disagree
	// here: the sync client maps it, the async client keeps the text.
	EmptyDeleteAsMap bool

	// OutputStatusCheck fails output on non-2xx, otherwise the body is decoded
	// whatever the status
	OutputStatusCheck bool
}

// Client drives the invocation-control endpoints of the ingress. Every call is
// a single stateless exchange, the only shared state is the session.
type Client struct {
	sessions ports.SessionProvider
	codec    *codec.Codec
	logger   *logger.StyledLogger
	baseURL  string
	policy   Policy
}

var _ ports.InvocationService = (*Client)(nil)

func New(baseURL string, sessions ports.SessionProvider, c *codec.Codec, log *logger.StyledLogger, policy Policy) *Client {
	return &Client{
		baseURL:  util.NormaliseBaseURL(baseURL),
		sessions: sessions,
		codec:    c,
		logger:   log,
		policy:   policy,
	}
}

func (c *Client) Policy() Policy {
	return c.policy
}

// SendURL is {base}/{service}/[{key}/]{handler}/send[?delay=Ns]
func (c *Client) SendURL(target domain.Target, opts domain.SendOptions) string {
	url := util.JoinURL(c.baseURL, target.SendSegments()...)
	return util.WithQuery(url, constants.QueryDelay, domain.DelayQuery(opts.Delay))
}

// InvocationURL is {base}/restate/invocation/{service}/[{key}/]{handler}/{idempotencyKey}/{op}
func (c *Client) InvocationURL(target domain.Target, idempotencyKey, op string) string {
	return util.JoinURL(c.baseURL, target.InvocationSegments(idempotencyKey, op)...)
}

// DeleteURL is {base}/invocation/{id}
func (c *Client) DeleteURL(invocationID string) string {
	return util.JoinURL(c.baseURL, constants.PathInvocation, invocationID)
}

// session hands out the pooled client, a build failure becomes the fixed
// session-unavailable terminal error
func (c *Client) session(op string) (*http.Client, error) {
	client, err := c.sessions.Session()
	if err != nil {
		c.logger.Error("Failed to create session", "op", op, "error", err)
		return nil, domain.NewSessionUnavailableError(op)
	}
	return client, nil
}

func (c *Client) do(ctx context.Context, client *http.Client, method, url string, body []byte, idempotencyKey string) (*http.Response, error) {
	req, err := transport.NewRequest(ctx, method, url, body, idempotencyKey)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.NewTransportError(method, url, err)
	}
	return resp, nil
}

// statusError drains the body of a failed response into a StatusError
func (c *Client) statusError(resp *http.Response, url string) error {
	body, err := c.codec.ReadBody(resp)
	if err != nil {
		body = nil
	}
	return domain.NewStatusError(url, resp.StatusCode, resp.Status, string(body))
}

func validateIdempotencyKey(idempotencyKey string) error {
	if idempotencyKey == "" {
		return domain.NewValidationError("Idempotency key")
	}
	return nil
}

func describe(target domain.Target) string {
	return fmt.Sprintf("%s %s", target.Kind(), target.Service)
}
