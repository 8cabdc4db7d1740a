package transport

import (
	"context"
	"net"

	"github.com/thushan/restate-client/internal/config"
	"github.com/thushan/restate-client/internal/logger"
)

const DefaultSetNoDelay = true

// newKeepAliveDialer enables OS level TCP keep-alive: probes start after
// KeepAliveTimeout of idleness, repeat every KeepAliveInterval and the
// connection is dropped after KeepAliveProbes unanswered probes.
func newKeepAliveDialer(c config.ConnectionConfig) *net.Dialer {
	return &net.Dialer{
		Timeout: c.ConnectTimeout,
		KeepAliveConfig: net.KeepAliveConfig{
			Enable:   true,
			Idle:     c.KeepAliveTimeout,
			Interval: c.KeepAliveInterval,
			Count:    c.KeepAliveProbes,
		},
	}
}

func dialContext(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			// best effort, errors ignored on purpose
			_ = tcpConn.SetNoDelay(DefaultSetNoDelay)
		}
		return conn, nil
	}
}

func logKeepAlive(log *logger.StyledLogger, profile Profile, c config.ConnectionConfig) {
	log.Debug("TCP keep-alive configured",
		"profile", profile.String(),
		"idle", c.KeepAliveTimeout.String(),
		"interval", c.KeepAliveInterval.String(),
		"probes", c.KeepAliveProbes,
		"connect_timeout", c.ConnectTimeout.String())
}
