package restate

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/thushan/restate-client/internal/config"
)

// process wide clients, one per client kind and configuration
var shared = struct {
	sync  *xsync.Map[string, *Client]
	async *xsync.Map[string, *AsyncClient]
}{
	sync:  xsync.NewMap[string, *Client](),
	async: xsync.NewMap[string, *AsyncClient](),
}

// Shared returns the process wide Client for cfg, building it on first use.
// Options only apply to that first construction.
func Shared(cfg *Config, opts ...Option) (*Client, error) {
	var err error
	client, _ := shared.sync.LoadOrCompute(fingerprint(cfg), func() (*Client, bool) {
		c, buildErr := New(cfg, opts...)
		if buildErr != nil {
			err = buildErr
			return nil, true
		}
		return c, false
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// SharedAsync is Shared for the AsyncClient
func SharedAsync(cfg *Config, opts ...Option) (*AsyncClient, error) {
	var err error
	client, _ := shared.async.LoadOrCompute(fingerprint(cfg), func() (*AsyncClient, bool) {
		c, buildErr := NewAsync(cfg, opts...)
		if buildErr != nil {
			err = buildErr
			return nil, true
		}
		return c, false
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CloseShared closes and forgets every shared client, the next Shared call builds afresh
func CloseShared() {
	shared.sync.Range(func(key string, c *Client) bool {
		shared.sync.Delete(key)
		c.Close()
		return true
	})
	shared.async.Range(func(key string, c *AsyncClient) bool {
		shared.async.Delete(key)
		c.Close()
		return true
	})
}

// fingerprint keys on the defaulted config, so a sparse Config and its
// spelled out equivalent share a client
func fingerprint(cfg *Config) string {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	resolved := cfg.Clone()
	resolved.ApplyDefaults()
	return fmt.Sprintf("%#v", *resolved)
}
