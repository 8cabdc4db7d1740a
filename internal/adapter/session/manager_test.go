package session

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/restate-client/internal/adapter/transport"
	"github.com/thushan/restate-client/internal/config"
	"github.com/thushan/restate-client/internal/logger"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.BaseURL = "http://localhost:8080"
	return cfg
}

func TestManager_LazyAndReused(t *testing.T) {
	m := NewManager(testConfig(), transport.ProfileSync, logger.NewDiscard())
	assert.Equal(t, 0, m.Builds())

	first, err := m.Session()
	require.NoError(t, err)
	second, err := m.Session()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Builds())
}

func TestManager_Refresh(t *testing.T) {
	m := NewManager(testConfig(), transport.ProfileAsync, logger.NewDiscard())

	first, err := m.Session()
	require.NoError(t, err)
	refreshed, err := m.Refresh()
	require.NoError(t, err)

	assert.NotSame(t, first, refreshed)
	assert.Equal(t, 2, m.Builds())
}

func TestManager_CloseRebuildsOnNextUse(t *testing.T) {
	m := NewManager(testConfig(), transport.ProfileSync, logger.NewDiscard())
	first, err := m.Session()
	require.NoError(t, err)

	m.Close()

	next, err := m.Session()
	require.NoError(t, err)
	assert.NotSame(t, first, next)
}

func TestManager_RetriesAfterFailedBuild(t *testing.T) {
	attempts := 0
	build := func(cfg *config.Config, profile transport.Profile, log *logger.StyledLogger) (*http.Client, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("boom")
		}
		return &http.Client{}, nil
	}

	m := NewManagerWithBuilder(testConfig(), transport.ProfileSync, logger.NewDiscard(), build)
	m.Warm()
	assert.EqualError(t, m.LastError(), "boom")

	client, err := m.Session()
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NoError(t, m.LastError())
	assert.Equal(t, 2, attempts)
}

func TestManager_InvalidBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.BaseURL = "not a url"

	m := NewManager(cfg, transport.ProfileSync, logger.NewDiscard())
	_, err := m.Session()
	assert.Error(t, err)
	assert.Equal(t, 0, m.Builds())
}

func TestManager_ConcurrentSessionBuildsOnce(t *testing.T) {
	m := NewManager(testConfig(), transport.ProfileAsync, logger.NewDiscard())

	var wg sync.WaitGroup
	clients := make([]*http.Client, 16)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.Session()
			assert.NoError(t, err)
			clients[i] = c
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, m.Builds())
	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}
}
