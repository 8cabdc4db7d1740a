package restate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hit struct {
	header http.Header
	method string
	path   string
	query  string
	body   string
}

type fakeIngress struct {
	server *httptest.Server
	hits   []hit
	mu     sync.Mutex
}

func newFakeIngress(t *testing.T, handler http.HandlerFunc) *fakeIngress {
	t.Helper()
	f := &fakeIngress{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.hits = append(f.hits, hit{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			query:  r.URL.RawQuery,
			header: r.Header.Clone(),
			body:   string(body),
		})
		f.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeIngress) recorded() []hit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]hit(nil), f.hits...)
}

func (f *fakeIngress) config() *Config {
	cfg := DefaultConfig()
	cfg.BaseURL = f.server.URL
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func reply(status int, contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newTestClient(t *testing.T, cfg *Config, opts ...Option) *Client {
	t.Helper()
	client, err := New(cfg, append([]Option{WithLogger(discardLogger())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestClient_GenericSendToService(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusAccepted, "application/json", `{"invocationId":"inv_1"}`))
	client := newTestClient(t, ingress.config())

	err := client.Send(context.Background(), "orders", "create", "", Map{"id": 1})
	require.NoError(t, err)

	hits := ingress.recorded()
	require.Len(t, hits, 1)
	assert.Equal(t, http.MethodPost, hits[0].method)
	assert.Equal(t, "/orders/create/send", hits[0].path)
	assert.JSONEq(t, `{"id": 1}`, hits[0].body)
	assert.Empty(t, hits[0].header.Values("idempotency-key"))
	assert.Equal(t, "restate-client/v0.1.0", hits[0].header.Get("User-Agent"))
}

func TestClient_ObjectSendWithOptions(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusAccepted, "", ""))
	client := newTestClient(t, ingress.config())

	key := NewIdempotencyKey()
	err := client.ObjectSend(context.Background(), "cart", "checkout", "user-42", Map{"total": 10},
		WithDelay(10*time.Second), WithIdempotencyKey(key))
	require.NoError(t, err)

	hits := ingress.recorded()
	require.Len(t, hits, 1)
	assert.Equal(t, "/cart/user-42/checkout/send", hits[0].path)
	assert.Equal(t, "delay=10s", hits[0].query)
	assert.Equal(t, key, hits[0].header.Get("idempotency-key"))
}

func TestClient_GenericOutputForObject(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusOK, "application/json", `{"total": 42}`))
	client := newTestClient(t, ingress.config())

	result, err := client.Output(context.Background(), "cart", "getTotal", "idem-123", "user-42")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"total": float64(42)}, result.Value)

	hits := ingress.recorded()
	require.Len(t, hits, 1)
	assert.Equal(t, http.MethodGet, hits[0].method)
	assert.Equal(t, "/restate/invocation/cart/user-42/getTotal/idem-123/output", hits[0].path)
}

func TestClient_AttachValidation(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusOK, "application/json", `{}`))
	client := newTestClient(t, ingress.config())

	_, err := client.ServiceAttach(context.Background(), "greeter", "greet", "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Idempotency key", validationErr.Field)

	_, err = client.ObjectAttach(context.Background(), "cart", "getTotal", "", "idem-1")
	assert.True(t, IsValidation(err))

	assert.Empty(t, ingress.recorded())
	assert.Equal(t, int64(2), client.Stats().Rejected)
}

func TestClient_DeleteInvocation(t *testing.T) {
	ingress := newFakeIngress(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/invocation/inv_gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})
	client := newTestClient(t, ingress.config())

	result, err := client.DeleteInvocation(context.Background(), "inv_gone")
	assert.NoError(t, err)
	assert.Nil(t, result)

	_, err = client.DeleteInvocation(context.Background(), "inv_bad")
	require.Error(t, err)
	assert.True(t, IsTerminal(err))
	assert.Contains(t, err.Error(), "inv_bad")

	var terminal *TerminalError
	require.ErrorAs(t, err, &terminal)
	assert.Equal(t, "delete", terminal.Op)
}

func TestClient_DeleteEmptyBodyIsMap(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusAccepted, "", ""))
	client := newTestClient(t, ingress.config())

	result, err := client.DeleteInvocation(context.Background(), "inv_1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, result.Value)
}

func TestClient_ServiceDispatch(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusOK, "application/json", `{"ok":true}`))
	client := newTestClient(t, ingress.config())

	orders := client.Service("orders")
	assert.Equal(t, ingress.server.URL+"/orders/user-1/status", orders.URL("status", "user-1"))

	result, err := orders.Handler("create")(context.Background(), Map{"id": 1}, "")
	require.NoError(t, err)
	assert.True(t, result.Get("ok").Bool())

	_, err = orders.Invoke(context.Background(), "status", nil, "user-1")
	require.NoError(t, err)

	hits := ingress.recorded()
	require.Len(t, hits, 2)
	assert.Equal(t, http.MethodPost, hits[0].method)
	assert.Equal(t, "/orders/create", hits[0].path)
	assert.Equal(t, http.MethodGet, hits[1].method)
	assert.Equal(t, "/orders/user-1/status", hits[1].path)
}

func TestClient_ServiceDispatchEmptyBodyIsMap(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusOK, "", ""))
	client := newTestClient(t, ingress.config())

	result, err := client.Service("orders").Invoke(context.Background(), "ping", nil, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, result.Value)
}

func TestClient_ServiceDispatchErrorsAreNotTerminal(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusBadRequest, "application/json", `{"message":"bad order"}`))
	client := newTestClient(t, ingress.config())

	_, err := client.Service("orders").Invoke(context.Background(), "create", Map{"id": 1}, "")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.False(t, IsTerminal(err))

	unreachable := DefaultConfig()
	unreachable.BaseURL = "http://127.0.0.1:1"
	unreachable.Retry.MaxRetries = 0
	offline := newTestClient(t, unreachable, WithLazySession())

	_, err = offline.Service("orders").Invoke(context.Background(), "create", Map{"id": 1}, "")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.False(t, IsTerminal(err))
}

func TestClient_RetriesTransientStatusOnGet(t *testing.T) {
	var calls int32
	ingress := newFakeIngress(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"done":true}`)
	})
	client := newTestClient(t, ingress.config())

	result, err := client.ServiceAttach(context.Background(), "greeter", "greet", "idem-1")
	require.NoError(t, err)
	assert.True(t, result.Get("done").Bool())
	assert.Len(t, ingress.recorded(), 2)
}

func TestClient_NeverResendsPost(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusServiceUnavailable, "text/plain", "busy"))
	client := newTestClient(t, ingress.config())

	err := client.ServiceSend(context.Background(), "orders", "create", Map{"id": 1})
	require.Error(t, err)
	assert.True(t, IsTerminal(err))
	assert.Len(t, ingress.recorded(), 1)
}

func TestClient_SessionUnavailable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "ftp://not-an-ingress"
	client := newTestClient(t, cfg)

	err := client.ServiceSend(context.Background(), "orders", "create", Map{"id": 1})
	require.Error(t, err)
	assert.True(t, IsTerminal(err))
	assert.ErrorIs(t, err, ErrSessionUnavailable)
	assert.Equal(t, "failed to create session", err.Error())

	stats := client.Stats()
	assert.Equal(t, int64(1), stats.Calls)
	assert.Equal(t, int64(1), stats.Failures)
	assert.Equal(t, int64(1), stats.Unavailable)
}

func TestClient_OutputStatusPolicy(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusInternalServerError, "application/json", `{"message":"still running"}`))

	cfg := ingress.config()
	cfg.Retry.MaxRetries = 0

	tolerant := newTestClient(t, cfg, WithLazySession())
	assert.Equal(t, OutputTolerant, tolerant.OutputStatusPolicy())
	result, err := tolerant.ServiceOutput(context.Background(), "greeter", "greet", "idem-1")
	require.NoError(t, err)
	assert.Equal(t, "still running", result.Get("message").String())

	strict := newTestClient(t, cfg, WithOutputStatusPolicy(OutputStrict))
	_, err = strict.ServiceOutput(context.Background(), "greeter", "greet", "idem-1")
	assert.True(t, IsTerminal(err))

	cfg.Invocation.OutputStatusCheck = true
	fromConfig := newTestClient(t, cfg)
	assert.Equal(t, OutputStrict, fromConfig.OutputStatusPolicy())
}

func TestClient_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection.ConnectTimeout = -time.Second

	_, err := New(cfg, WithLogger(discardLogger()))
	assert.Error(t, err)
}

func TestClient_BaseURLOnlyConfig(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusAccepted, "application/json", `{"invocationId":"inv_1"}`))

	client, err := New(&Config{BaseURL: ingress.server.URL}, WithLogger(discardLogger()), WithLazySession())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.ServiceSend(context.Background(), "orders", "create", Map{"id": 1}))
	assert.Len(t, ingress.recorded(), 1)

	resolved := client.Config()
	assert.Equal(t, 3*time.Second, resolved.Connection.ConnectTimeout)
	assert.Equal(t, 5*time.Second, resolved.Connection.KeepAliveInterval)
	assert.Equal(t, 5*time.Second, resolved.Connection.KeepAliveTimeout)
	assert.Equal(t, 3, resolved.Retry.MaxRetries)

	async, err := NewAsync(&Config{BaseURL: ingress.server.URL}, WithLogger(discardLogger()), WithLazySession())
	require.NoError(t, err)
	t.Cleanup(async.Close)
	_, err = async.ServiceSend(context.Background(), "orders", "create", Map{"id": 2}).Result()
	require.NoError(t, err)
	assert.Len(t, ingress.recorded(), 2)
}

func TestClient_ConfigIsCopied(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusAccepted, "", ""))
	cfg := ingress.config()
	client := newTestClient(t, cfg)

	cfg.BaseURL = "http://elsewhere.invalid"

	require.NoError(t, client.ServiceSend(context.Background(), "orders", "create", Map{"id": 1}))
	assert.Len(t, ingress.recorded(), 1)
	assert.Equal(t, ingress.server.URL, client.Config().BaseURL)
}

func TestClient_UsableAfterClose(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusAccepted, "", ""))
	client := newTestClient(t, ingress.config())

	require.NoError(t, client.ServiceSend(context.Background(), "orders", "create", Map{"id": 1}))
	client.Close()
	require.NoError(t, client.ServiceSend(context.Background(), "orders", "create", Map{"id": 2}))
	assert.Len(t, ingress.recorded(), 2)
}

type orderRequest struct {
	Status string `json:"status"`
	ID     int    `json:"id"`
}

func TestClient_SendStructPayload(t *testing.T) {
	ingress := newFakeIngress(t, reply(http.StatusAccepted, "", ""))
	client := newTestClient(t, ingress.config())

	require.NoError(t, client.ServiceSend(context.Background(), "orders", "create", JSON(orderRequest{ID: 5, Status: "new"})))

	hits := ingress.recorded()
	require.Len(t, hits, 1)
	assert.JSONEq(t, `{"id":5,"status":"new"}`, hits[0].body)
}
