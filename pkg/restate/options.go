package restate

import (
	"log/slog"
	"time"

	"github.com/thushan/restate-client/internal/config"
	"github.com/thushan/restate-client/internal/core/domain"
	"github.com/thushan/restate-client/internal/logger"
	"github.com/thushan/restate-client/theme"
)

// OutputStatusPolicy decides what output does with a non-2xx response
type OutputStatusPolicy int

const (
	// OutputTolerant decodes the body whatever the status
	OutputTolerant OutputStatusPolicy = iota
	// OutputStrict fails with a terminal error on non-2xx
	OutputStrict
)

func (p OutputStatusPolicy) String() string {
	if p == OutputStrict {
		return "strict"
	}
	return "tolerant"
}

type options struct {
	logger       *slog.Logger
	outputPolicy *OutputStatusPolicy
	lazySession  bool
}

type Option func(*options)

// WithLogger routes client logs to an existing logger instead of building one
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithOutputStatusPolicy overrides invocation.output_status_check
func WithOutputStatusPolicy(p OutputStatusPolicy) Option {
	return func(o *options) {
		o.outputPolicy = &p
	}
}

// WithLazySession skips building the session at construction
func WithLazySession() Option {
	return func(o *options) {
		o.lazySession = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) outputStatusPolicy(cfg *config.Config) OutputStatusPolicy {
	if o.outputPolicy != nil {
		return *o.outputPolicy
	}
	if cfg.Invocation.OutputStatusCheck {
		return OutputStrict
	}
	return OutputTolerant
}

func (o *options) styledLogger(cfg *config.Config) (*logger.StyledLogger, func(), error) {
	if o.logger != nil {
		return logger.NewStyledLogger(o.logger, theme.GetTheme(cfg.Logging.Theme)), func() {}, nil
	}

	_, styled, cleanup, err := logger.NewWithTheme(&logger.Config{
		Level:      cfg.LogLevel(),
		LogDir:     cfg.Logging.LogDir,
		Theme:      cfg.Logging.Theme,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		FileOutput: cfg.Logging.FileOutput,
	})
	if err != nil {
		return nil, nil, err
	}
	return styled, cleanup, nil
}

type SendOption func(*domain.SendOptions)

// WithDelay asks the ingress to hold the invocation, whole seconds only
func WithDelay(d time.Duration) SendOption {
	return func(o *domain.SendOptions) {
		o.Delay = d
	}
}

func WithIdempotencyKey(key string) SendOption {
	return func(o *domain.SendOptions) {
		o.IdempotencyKey = key
	}
}

func sendOptions(opts []SendOption) domain.SendOptions {
	var so domain.SendOptions
	for _, opt := range opts {
		opt(&so)
	}
	return so
}
