package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/thushan/restate-client/internal/config"
	"github.com/thushan/restate-client/internal/core/constants"
	"github.com/thushan/restate-client/internal/logger"
	"github.com/thushan/restate-client/internal/util"
)

// Profile picks the pool layout and retry behaviour of a client
type Profile int

const (
	// ProfileSync: pooled, retries transient failures, long per-read timeout
	ProfileSync Profile = iota
	// ProfileAsync: capped total and per-host connections, no retries, total timeout
	ProfileAsync
)

const DefaultSyncIdleConnTimeout = 90 * time.Second

func (p Profile) String() string {
	switch p {
	case ProfileSync:
		return "sync"
	case ProfileAsync:
		return "async"
	default:
		return fmt.Sprintf("profile(%d)", int(p))
	}
}

// NewHTTPClient builds the pooled client for a profile. It fails when the
// configuration can't address an ingress, callers fold that into a terminal failure.
func NewHTTPClient(cfg *config.Config, profile Profile, log *logger.StyledLogger) (*http.Client, error) {
	if err := util.ValidateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialContext(newKeepAliveDialer(cfg.Connection)),
		TLSHandshakeTimeout: constants.DefaultTLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}

	client := &http.Client{}
	var rt http.RoundTripper = base

	switch profile {
	case ProfileSync:
		base.MaxIdleConns = cfg.Pool.MaxIdleConns()
		base.MaxIdleConnsPerHost = cfg.Pool.MaxSize
		base.IdleConnTimeout = DefaultSyncIdleConnTimeout
		base.ResponseHeaderTimeout = cfg.Connection.ReadTimeout
		rt = &readTimeoutTransport{next: rt, timeout: cfg.Connection.ReadTimeout}

		if cfg.Retry.MaxRetries > 0 {
			rt = newRetryTransport(rt, NewRetryPolicy(cfg.Retry), log)
		}
	case ProfileAsync:
		base.MaxIdleConns = cfg.Async.MaxConns
		base.MaxConnsPerHost = cfg.Async.MaxConnsPerHost
		base.MaxIdleConnsPerHost = cfg.Async.MaxConnsPerHost
		base.IdleConnTimeout = cfg.Connection.KeepAliveTimeout

		client.Timeout = cfg.Async.TotalTimeout
	default:
		return nil, fmt.Errorf("unknown transport profile %s", profile)
	}

	client.Transport = &loggingTransport{next: rt, logger: log}

	logKeepAlive(log, profile, cfg.Connection)
	return client, nil
}

// BaseTransport unwraps the pooled *http.Transport underneath a client built here
func BaseTransport(client *http.Client) *http.Transport {
	rt := client.Transport
	for {
		switch t := rt.(type) {
		case *http.Transport:
			return t
		case *loggingTransport:
			rt = t.next
		case *retryTransport:
			rt = t.next
		case *readTimeoutTransport:
			rt = t.next
		default:
			return nil
		}
	}
}
