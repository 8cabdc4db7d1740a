package constants

import "time"

// Connection keep-alive configuration
const (
	DefaultConnectTimeout    = 3 * time.Second
	DefaultKeepAliveInterval = 5 * time.Second // between probes
	DefaultKeepAliveTimeout  = 5 * time.Second // idle time before the first probe
	DefaultKeepAliveProbes   = 2               // failed probes before the OS drops the connection

	// long enough not to interfere with normal handler latency
	DefaultReadTimeout = 60 * time.Second

	DefaultTLSHandshakeTimeout = 10 * time.Second
)

// Pool sizing for the synchronous profile
const (
	DefaultPoolConnections = 10 // host pools kept around
	DefaultPoolMaxSize     = 20 // idle connections kept per host
)

// Pool sizing for the async profile
const (
	DefaultAsyncMaxConns        = 100
	DefaultAsyncMaxConnsPerHost = 30
	DefaultAsyncTotalTimeout    = 60 * time.Second
)

// MaxResponseSize bounds how much of a response body we buffer
const MaxResponseSize = 32 * 1024 * 1024
