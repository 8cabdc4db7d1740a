package session

import (
	"net/http"
	"sync"

	"github.com/thushan/restate-client/internal/adapter/transport"
	"github.com/thushan/restate-client/internal/config"
	"github.com/thushan/restate-client/internal/core/ports"
	"github.com/thushan/restate-client/internal/logger"
)

// Builder creates the pooled client, swapped out in tests
type Builder func(cfg *config.Config, profile transport.Profile, log *logger.StyledLogger) (*http.Client, error)

// Manager owns one pooled HTTP client for one client instance. The client is
// built lazily (or eagerly via Warm) and rebuilt when absent or when the
// previous build failed. Replacement is serialised so concurrent callers never
// build duplicate pools.
type Manager struct {
	client  *http.Client
	lastErr error
	cfg     *config.Config
	logger  *logger.StyledLogger
	build   Builder
	mu      sync.Mutex
	profile transport.Profile
	builds  int
}

var _ ports.SessionProvider = (*Manager)(nil)

func NewManager(cfg *config.Config, profile transport.Profile, log *logger.StyledLogger) *Manager {
	return NewManagerWithBuilder(cfg, profile, log, transport.NewHTTPClient)
}

func NewManagerWithBuilder(cfg *config.Config, profile transport.Profile, log *logger.StyledLogger, build Builder) *Manager {
	return &Manager{
		cfg:     cfg,
		profile: profile,
		logger:  log,
		build:   build,
	}
}

// Warm builds the session up front, a failure is logged and retried on first use
func (m *Manager) Warm() {
	if _, err := m.Session(); err != nil {
		m.logger.Warn("Failed to create session, will be initialised later",
			"profile", m.profile.String(),
			"error", err)
	}
}

func (m *Manager) Session() (*http.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}
	return m.rebuildLocked()
}

func (m *Manager) Refresh() (*http.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		m.client.CloseIdleConnections()
		m.client = nil
	}
	return m.rebuildLocked()
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		m.client.CloseIdleConnections()
		m.client = nil
	}
}

// LastError is the error of the most recent failed build, nil after a success
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Builds counts successful constructions
func (m *Manager) Builds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds
}

func (m *Manager) rebuildLocked() (*http.Client, error) {
	client, err := m.build(m.cfg, m.profile, m.logger)
	if err != nil {
		m.lastErr = err
		return nil, err
	}
	m.client = client
	m.lastErr = nil
	m.builds++
	return client, nil
}
