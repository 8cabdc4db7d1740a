package restate

import (
	"github.com/thushan/restate-client/internal/adapter/dispatch"
	"github.com/thushan/restate-client/internal/config"
	"github.com/thushan/restate-client/internal/core/domain"
)

type (
	Config          = config.Config
	Result          = domain.Result
	Payload         = domain.Payload
	Map             = domain.Map
	Target          = domain.Target
	TerminalError   = domain.TerminalError
	ValidationError = domain.ValidationError
	StatusError     = domain.StatusError
	TransportError  = domain.TransportError
	HandlerFunc     = dispatch.HandlerFunc
)

var (
	ErrTerminal           = domain.ErrTerminal
	ErrMissingArgument    = domain.ErrMissingArgument
	ErrSessionUnavailable = domain.ErrSessionUnavailable
	ErrResponseTooLarge   = domain.ErrResponseTooLarge
)

// DefaultConfig has the fixed connection, pool and retry defaults and no base URL
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads a YAML file (optional) and RESTATE_CLIENT_* variables
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// JSON wraps any json-serialisable value as a Payload
func JSON(v any) Payload {
	return domain.JSON(v)
}

func NewIdempotencyKey() string {
	return domain.NewIdempotencyKey()
}

func IsTerminal(err error) bool {
	return domain.IsTerminal(err)
}

func IsValidation(err error) bool {
	return domain.IsValidation(err)
}

func IsNotFound(err error) bool {
	return domain.IsNotFound(err)
}
