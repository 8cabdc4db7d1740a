package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/thushan/restate-client/internal/core/constants"
	"github.com/thushan/restate-client/internal/core/domain"
)

const (
	DefaultConfigName = "restate-client"
	DefaultLogLevel   = "info"
	DefaultLogDir     = "./logs"
)

// DefaultConfig returns a configuration with the fixed client defaults
func DefaultConfig() *Config {
	return &Config{
		Connection: ConnectionConfig{
			ConnectTimeout:    constants.DefaultConnectTimeout,
			KeepAliveInterval: constants.DefaultKeepAliveInterval,
			KeepAliveTimeout:  constants.DefaultKeepAliveTimeout,
			KeepAliveProbes:   constants.DefaultKeepAliveProbes,
			ReadTimeout:       constants.DefaultReadTimeout,
		},
		Pool: PoolConfig{
			Connections: constants.DefaultPoolConnections,
			MaxSize:     constants.DefaultPoolMaxSize,
		},
		Retry: RetryConfig{
			MaxRetries:    constants.DefaultMaxRetries,
			BackoffFactor: constants.DefaultRetryBackoffFactor,
			MaxBackoff:    constants.DefaultMaxRetryBackoff,
			StatusCodes:   append([]int(nil), constants.DefaultRetryStatusCodes...),
		},
		Async: AsyncConfig{
			MaxConns:        constants.DefaultAsyncMaxConns,
			MaxConnsPerHost: constants.DefaultAsyncMaxConnsPerHost,
			TotalTimeout:    constants.DefaultAsyncTotalTimeout,
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			LogDir:     DefaultLogDir,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
		},
	}
}

// Load reads configuration from an optional file and RESTATE_CLIENT_* environment variables.
// An empty path searches for restate-client.yaml in . and ./config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			if configFile := os.Getenv(constants.EnvConfigFile); configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
				}
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that are absent from the file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("lazy_session", cfg.LazySession)

	v.SetDefault("connection.connect_timeout", cfg.Connection.ConnectTimeout)
	v.SetDefault("connection.keep_alive_interval", cfg.Connection.KeepAliveInterval)
	v.SetDefault("connection.keep_alive_timeout", cfg.Connection.KeepAliveTimeout)
	v.SetDefault("connection.keep_alive_probes", cfg.Connection.KeepAliveProbes)
	v.SetDefault("connection.read_timeout", cfg.Connection.ReadTimeout)

	v.SetDefault("pool.connections", cfg.Pool.Connections)
	v.SetDefault("pool.max_size", cfg.Pool.MaxSize)

	v.SetDefault("retry.max_retries", cfg.Retry.MaxRetries)
	v.SetDefault("retry.backoff_factor", cfg.Retry.BackoffFactor)
	v.SetDefault("retry.max_backoff", cfg.Retry.MaxBackoff)
	v.SetDefault("retry.status_codes", cfg.Retry.StatusCodes)

	v.SetDefault("async.max_conns", cfg.Async.MaxConns)
	v.SetDefault("async.max_conns_per_host", cfg.Async.MaxConnsPerHost)
	v.SetDefault("async.total_timeout", cfg.Async.TotalTimeout)

	v.SetDefault("invocation.output_status_check", cfg.Invocation.OutputStatusCheck)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.theme", cfg.Logging.Theme)
	v.SetDefault("logging.log_dir", cfg.Logging.LogDir)
	v.SetDefault("logging.max_size", cfg.Logging.MaxSize)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age", cfg.Logging.MaxAge)
	v.SetDefault("logging.file_output", cfg.Logging.FileOutput)
}

// ApplyDefaults fills every unset (zero) setting from DefaultConfig, so a
// Config carrying only a BaseURL is usable. Retry is all or nothing: a zero
// RetryConfig takes the defaults, otherwise MaxRetries 0 means no retries and
// only MaxBackoff and StatusCodes are filled in.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()

	conn := &c.Connection
	conn.ConnectTimeout = orDefault(conn.ConnectTimeout, d.Connection.ConnectTimeout)
	conn.KeepAliveInterval = orDefault(conn.KeepAliveInterval, d.Connection.KeepAliveInterval)
	conn.KeepAliveTimeout = orDefault(conn.KeepAliveTimeout, d.Connection.KeepAliveTimeout)
	conn.KeepAliveProbes = orDefault(conn.KeepAliveProbes, d.Connection.KeepAliveProbes)
	conn.ReadTimeout = orDefault(conn.ReadTimeout, d.Connection.ReadTimeout)

	c.Pool.Connections = orDefault(c.Pool.Connections, d.Pool.Connections)
	c.Pool.MaxSize = orDefault(c.Pool.MaxSize, d.Pool.MaxSize)

	if c.Retry.MaxRetries == 0 && c.Retry.BackoffFactor == 0 && c.Retry.MaxBackoff == 0 && c.Retry.StatusCodes == nil {
		c.Retry = d.Retry
	} else {
		c.Retry.MaxBackoff = orDefault(c.Retry.MaxBackoff, d.Retry.MaxBackoff)
		if c.Retry.StatusCodes == nil {
			c.Retry.StatusCodes = d.Retry.StatusCodes
		}
	}

	c.Async.MaxConns = orDefault(c.Async.MaxConns, d.Async.MaxConns)
	c.Async.MaxConnsPerHost = orDefault(c.Async.MaxConnsPerHost, d.Async.MaxConnsPerHost)
	c.Async.TotalTimeout = orDefault(c.Async.TotalTimeout, d.Async.TotalTimeout)

	c.Logging.Level = orDefault(c.Logging.Level, d.Logging.Level)
	c.Logging.LogDir = orDefault(c.Logging.LogDir, d.Logging.LogDir)
	c.Logging.MaxSize = orDefault(c.Logging.MaxSize, d.Logging.MaxSize)
	c.Logging.MaxBackups = orDefault(c.Logging.MaxBackups, d.Logging.MaxBackups)
	c.Logging.MaxAge = orDefault(c.Logging.MaxAge, d.Logging.MaxAge)
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Validate rejects settings the transport cannot be built from. Zero values
// are rejected too, call ApplyDefaults first to fill them in.
func (c *Config) Validate() error {
	switch {
	case c.Connection.ConnectTimeout <= 0:
		return domain.NewConfigValidationError("connection.connect_timeout", c.Connection.ConnectTimeout, "must be positive")
	case c.Connection.KeepAliveInterval <= 0:
		return domain.NewConfigValidationError("connection.keep_alive_interval", c.Connection.KeepAliveInterval, "must be positive")
	case c.Connection.KeepAliveTimeout <= 0:
		return domain.NewConfigValidationError("connection.keep_alive_timeout", c.Connection.KeepAliveTimeout, "must be positive")
	case c.Connection.KeepAliveProbes <= 0:
		return domain.NewConfigValidationError("connection.keep_alive_probes", c.Connection.KeepAliveProbes, "must be positive")
	case c.Connection.ReadTimeout < c.Connection.ConnectTimeout:
		return domain.NewConfigValidationError("connection.read_timeout", c.Connection.ReadTimeout, "must not be shorter than the connect timeout")
	case c.Pool.Connections <= 0:
		return domain.NewConfigValidationError("pool.connections", c.Pool.Connections, "must be positive")
	case c.Pool.MaxSize <= 0:
		return domain.NewConfigValidationError("pool.max_size", c.Pool.MaxSize, "must be positive")
	case c.Retry.MaxRetries < 0:
		return domain.NewConfigValidationError("retry.max_retries", c.Retry.MaxRetries, "must not be negative")
	case c.Retry.BackoffFactor < 0:
		return domain.NewConfigValidationError("retry.backoff_factor", c.Retry.BackoffFactor, "must not be negative")
	case c.Async.MaxConns <= 0:
		return domain.NewConfigValidationError("async.max_conns", c.Async.MaxConns, "must be positive")
	case c.Async.MaxConnsPerHost <= 0:
		return domain.NewConfigValidationError("async.max_conns_per_host", c.Async.MaxConnsPerHost, "must be positive")
	case c.Async.TotalTimeout <= 0:
		return domain.NewConfigValidationError("async.total_timeout", c.Async.TotalTimeout, "must be positive")
	}
	return nil
}

// Clone returns a deep copy so the caller's value can't change a live client
func (c *Config) Clone() *Config {
	clone := *c
	clone.Retry.StatusCodes = append([]int(nil), c.Retry.StatusCodes...)
	return &clone
}

// LazySessionRequested reports whether eager session construction should be skipped
func (c *Config) LazySessionRequested() bool {
	if c.LazySession {
		return true
	}
	switch strings.ToLower(os.Getenv(constants.EnvLazySession)) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

// LogLevel resolves the effective level, debug wins
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	if c.Logging.Level == "" {
		return DefaultLogLevel
	}
	return c.Logging.Level
}
