package dispatch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/thushan/restate-client/internal/adapter/codec"
	"github.com/thushan/restate-client/internal/adapter/transport"
	"github.com/thushan/restate-client/internal/core/domain"
	"github.com/thushan/restate-client/internal/core/ports"
	"github.com/thushan/restate-client/internal/logger"
	"github.com/thushan/restate-client/internal/util"
)

const opInvoke = "invoke"

// HandlerFunc calls one bound remote handler, key may be empty for services
type HandlerFunc func(ctx context.Context, payload domain.Payload, key string) (*domain.Result, error)

// Service calls handlers below one base URL (usually {ingress}/{service}).
// It holds no per-call state so a single Service can be shared freely.
type Service struct {
	sessions   ports.SessionProvider
	codec      *codec.Codec
	logger     *logger.StyledLogger
	baseURL    string
	emptyAsMap bool
}

var _ ports.HandlerDispatcher = (*Service)(nil)

type Option func(*Service)

// WithEmptyBodyAsMap decodes an empty response body to an empty mapping
func WithEmptyBodyAsMap(enabled bool) Option {
	return func(s *Service) {
		s.emptyAsMap = enabled
	}
}

func New(baseURL string, sessions ports.SessionProvider, c *codec.Codec, log *logger.StyledLogger, opts ...Option) *Service {
	s := &Service{
		baseURL:  util.NormaliseBaseURL(baseURL),
		sessions: sessions,
		codec:    c,
		logger:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) BaseURL() string {
	return s.baseURL
}

// Handler binds a handler name once so call sites read like methods
func (s *Service) Handler(name string) HandlerFunc {
	return func(ctx context.Context, payload domain.Payload, key string) (*domain.Result, error) {
		return s.Invoke(ctx, name, payload, key)
	}
}

// URL is base/[key/]handler
func (s *Service) URL(handler, key string) string {
	if key != "" {
		return util.JoinURL(s.baseURL, key, handler)
	}
	return util.JoinURL(s.baseURL, handler)
}

// Invoke POSTs the payload as JSON to base/[key/]handler, or GETs it when there
// is nothing to send. Anything but a 200 fails with a StatusError.
func (s *Service) Invoke(ctx context.Context, handler string, payload domain.Payload, key string) (*domain.Result, error) {
	if handler == "" {
		return nil, domain.NewValidationError("Handler")
	}

	target := s.URL(handler, key)

	body, err := s.encode(payload)
	if err != nil {
		return nil, err
	}

	method := http.MethodGet
	if body != nil {
		method = http.MethodPost
	}

	client, err := s.sessions.Session()
	if err != nil {
		s.logger.ErrorWithURL("Failed to create session for", target, "error", err)
		return nil, domain.NewSessionUnavailableError(opInvoke)
	}

	req, err := transport.NewRequest(ctx, method, target, body, "")
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		s.logger.ErrorWithURL("Request failed", target, "method", method, "error", err)
		return nil, domain.NewTransportError(method, target, err)
	}

	result, raw, err := s.codec.Decode(resp, s.emptyAsMap)
	if err != nil {
		return nil, domain.NewTransportError(method, target, err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error(fmt.Sprintf("Response: %s", codec.Snippet(raw)),
			"url", target,
			"status", resp.StatusCode)
		return nil, domain.NewStatusError(target, resp.StatusCode, resp.Status, string(raw))
	}

	return result, nil
}

// encode returns nil for a missing or empty payload, that selects GET
func (s *Service) encode(payload domain.Payload) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	m, err := payload.JSONMap()
	if err != nil {
		return nil, fmt.Errorf("failed to convert payload: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return s.codec.EncodeMap(m)
}
