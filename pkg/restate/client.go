package restate

import (
	"context"
	"sync"

	"github.com/thushan/restate-client/internal/adapter/codec"
	"github.com/thushan/restate-client/internal/adapter/dispatch"
	"github.com/thushan/restate-client/internal/adapter/invocation"
	"github.com/thushan/restate-client/internal/adapter/session"
	"github.com/thushan/restate-client/internal/adapter/transport"
	"github.com/thushan/restate-client/internal/config"
	"github.com/thushan/restate-client/internal/core/domain"
	"github.com/thushan/restate-client/internal/logger"
	"github.com/thushan/restate-client/internal/util"
)

// Client is the blocking ingress client. It is safe for concurrent use, the
// only state it shares between calls is its pooled session.
type Client struct {
	cfg         *config.Config
	logger      *logger.StyledLogger
	sessions    *session.Manager
	codec       *codec.Codec
	invocations *invocation.Client
	stats       *callStats
	cleanup     func()
	closeOnce   sync.Once
	profile     transport.Profile
	policy      OutputStatusPolicy
}

// New builds a client from a copy of cfg (nil means DefaultConfig). Unset
// settings take their defaults, so a Config with only BaseURL works. The session
// is built straight away unless lazy sessions were requested, a failure there
// is logged and retried on first use.
func New(cfg *Config, opts ...Option) (*Client, error) {
	return newClient(cfg, transport.ProfileSync, opts...)
}

func newClient(cfg *Config, profile transport.Profile, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = cfg.Clone()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	log, cleanup, err := o.styledLogger(cfg)
	if err != nil {
		return nil, err
	}
	log = log.With("client", profile.String())

	c := &Client{
		cfg:      cfg,
		logger:   log,
		profile:  profile,
		policy:   o.outputStatusPolicy(cfg),
		sessions: session.NewManager(cfg, profile, log),
		codec:    codec.New(log),
		stats:    newCallStats(),
		cleanup:  cleanup,
	}
	c.invocations = invocation.New(cfg.BaseURL, c.sessions, c.codec, log, invocation.Policy{
		EmptyBodyAsMap:    profile == transport.ProfileAsync,
		EmptyDeleteAsMap:  profile == transport.ProfileSync,
		OutputStatusCheck: c.policy == OutputStrict,
	})

	if !o.lazySession && !cfg.LazySessionRequested() {
		c.sessions.Warm()
	}
	return c, nil
}

// Config returns a copy of the configuration the client was built with
func (c *Client) Config() *Config {
	return c.cfg.Clone()
}

func (c *Client) OutputStatusPolicy() OutputStatusPolicy {
	return c.policy
}

// Service returns a dispatcher for handlers of the named service (or object)
func (c *Client) Service(name string) *Service {
	return &Service{
		dispatcher: dispatch.New(util.JoinURL(c.cfg.BaseURL, name), c.sessions, c.codec, c.logger,
			dispatch.WithEmptyBodyAsMap(c.profile == transport.ProfileSync)),
		stats: c.stats,
	}
}

// Send fires a handler without waiting for the result, a non-empty key
// addresses a virtual object
func (c *Client) Send(ctx context.Context, service, handler, key string, payload Payload, opts ...SendOption) error {
	return c.stats.track(c.invocations.Send(ctx, domain.Target{Service: service, Handler: handler, Key: key}, payload, sendOptions(opts)))
}

func (c *Client) ServiceSend(ctx context.Context, service, handler string, payload Payload, opts ...SendOption) error {
	return c.stats.track(c.invocations.ServiceSend(ctx, service, handler, payload, sendOptions(opts)))
}

func (c *Client) ObjectSend(ctx context.Context, service, handler, key string, payload Payload, opts ...SendOption) error {
	return c.stats.track(c.invocations.ObjectSend(ctx, service, handler, key, payload, sendOptions(opts)))
}

// Attach waits on the invocation started with idempotencyKey, a non-empty key
// addresses a virtual object
func (c *Client) Attach(ctx context.Context, service, handler, idempotencyKey, key string) (*Result, error) {
	return c.stats.trackResult(c.invocations.Attach(ctx, domain.Target{Service: service, Handler: handler, Key: key}, idempotencyKey))
}

func (c *Client) ServiceAttach(ctx context.Context, service, handler, idempotencyKey string) (*Result, error) {
	return c.stats.trackResult(c.invocations.ServiceAttach(ctx, service, handler, idempotencyKey))
}

func (c *Client) ObjectAttach(ctx context.Context, service, handler, key, idempotencyKey string) (*Result, error) {
	return c.stats.trackResult(c.invocations.ObjectAttach(ctx, service, handler, key, idempotencyKey))
}

// Output fetches the result of the invocation started with idempotencyKey, a
// non-empty key addresses a virtual object
func (c *Client) Output(ctx context.Context, service, handler, idempotencyKey, key string) (*Result, error) {
	return c.stats.trackResult(c.invocations.Output(ctx, domain.Target{Service: service, Handler: handler, Key: key}, idempotencyKey))
}

func (c *Client) ServiceOutput(ctx context.Context, service, handler, idempotencyKey string) (*Result, error) {
	return c.stats.trackResult(c.invocations.ServiceOutput(ctx, service, handler, idempotencyKey))
}

func (c *Client) ObjectOutput(ctx context.Context, service, handler, key, idempotencyKey string) (*Result, error) {
	return c.stats.trackResult(c.invocations.ObjectOutput(ctx, service, handler, key, idempotencyKey))
}

// DeleteInvocation removes an invocation, one that is already gone returns (nil, nil)
func (c *Client) DeleteInvocation(ctx context.Context, invocationID string) (*Result, error) {
	return c.stats.trackResult(c.invocations.Delete(ctx, invocationID))
}

// Stats reports the calls made through this client
func (c *Client) Stats() Stats {
	return c.stats.snapshot()
}

// Close drops the pooled session and flushes file logging. Calls made after
// Close build a new session.
func (c *Client) Close() {
	c.sessions.Close()
	c.closeOnce.Do(func() {
		if c.cleanup != nil {
			c.cleanup()
		}
	})
}
