package config

import (
	"time"
)

// Config holds everything a client needs, it is copied on client construction
// and never changed afterwards.
type Config struct {
	Logging     LoggingConfig    `yaml:"logging" mapstructure:"logging"`
	BaseURL     string           `yaml:"base_url" mapstructure:"base_url"`
	Retry       RetryConfig      `yaml:"retry" mapstructure:"retry"`
	Connection  ConnectionConfig `yaml:"connection" mapstructure:"connection"`
	Pool        PoolConfig       `yaml:"pool" mapstructure:"pool"`
	Async       AsyncConfig      `yaml:"async" mapstructure:"async"`
	Invocation  InvocationConfig `yaml:"invocation" mapstructure:"invocation"`
	Debug       bool             `yaml:"debug" mapstructure:"debug"`
	LazySession bool             `yaml:"lazy_session" mapstructure:"lazy_session"`
}

// ConnectionConfig holds dial and TCP keep-alive settings
type ConnectionConfig struct {
	ConnectTimeout    time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
	KeepAliveInterval time.Duration `yaml:"keep_alive_interval" mapstructure:"keep_alive_interval"`
	KeepAliveTimeout  time.Duration `yaml:"keep_alive_timeout" mapstructure:"keep_alive_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	KeepAliveProbes   int           `yaml:"keep_alive_probes" mapstructure:"keep_alive_probes"`
}

// PoolConfig sizes the synchronous connection pool
type PoolConfig struct {
	Connections int `yaml:"connections" mapstructure:"connections"`
	MaxSize     int `yaml:"max_size" mapstructure:"max_size"`
}

// MaxIdleConns is the total idle connections kept across all host pools
func (p PoolConfig) MaxIdleConns() int {
	return p.Connections * p.MaxSize
}

// RetryConfig is the synchronous transport retry policy
type RetryConfig struct {
	StatusCodes   []int         `yaml:"status_codes" mapstructure:"status_codes"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
	BackoffFactor time.Duration `yaml:"backoff_factor" mapstructure:"backoff_factor"`
	MaxBackoff    time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
}

// AsyncConfig sizes the async profile pool
type AsyncConfig struct {
	MaxConns        int           `yaml:"max_conns" mapstructure:"max_conns"`
	MaxConnsPerHost int           `yaml:"max_conns_per_host" mapstructure:"max_conns_per_host"`
	TotalTimeout    time.Duration `yaml:"total_timeout" mapstructure:"total_timeout"`
}

// InvocationConfig holds behaviour switches of the invocation-control operations
type InvocationConfig struct {
	// OutputStatusCheck fails output calls on non-2xx instead of decoding the body
	OutputStatusCheck bool `yaml:"output_status_check" mapstructure:"output_status_check"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Theme      string `yaml:"theme" mapstructure:"theme"`
	LogDir     string `yaml:"log_dir" mapstructure:"log_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	FileOutput bool   `yaml:"file_output" mapstructure:"file_output"`
}
