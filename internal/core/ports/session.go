package ports

import "net/http"

// SessionProvider owns a pooled HTTP client and hands it out per call
type SessionProvider interface {
	// Session returns the live client, building it when absent or when a previous build failed
	Session() (*http.Client, error)

	// Refresh discards the current client and builds a new one
	Refresh() (*http.Client, error)

	// Close releases idle pooled connections, the next Session call rebuilds
	Close()
}
