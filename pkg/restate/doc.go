// Package restate is an HTTP client for the Restate ingress.
//
// A Client (or AsyncClient) owns one pooled keep-alive session and exposes the
// invocation-control operations of the ingress:
//
//	client, err := restate.New(&restate.Config{BaseURL: "http://localhost:8080"})
//	err = client.ServiceSend(ctx, "orders", "create", restate.Map{"id": 1})
//	out, err := client.ObjectOutput(ctx, "cart", "getTotal", "user-42", "idem-123")
//
// Handlers are called by name through a Service:
//
//	cart := client.Service("cart")
//	getTotal := cart.Handler("getTotal")
//	total, err := getTotal(ctx, nil, "user-42")
//
// Missing arguments fail with a *ValidationError before anything is sent. Past
// that, the invocation-control operations (send, attach, output and delete)
// fail with a *TerminalError, see IsTerminal. Service.Invoke and its handlers
// instead return a *StatusError for a non-2xx reply and a *TransportError when
// the request never completed, only a session that cannot be built is terminal
// there.
// Shared and SharedAsync hand out one client per configuration for the life of
// the process, CloseShared tears them down.
package restate
