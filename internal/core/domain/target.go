package domain

import (
	"fmt"
	"time"

	"github.com/thushan/restate-client/internal/core/constants"
)

// Target addresses a remote handler. An empty Key addresses a service,
// a non-empty Key addresses a virtual object instance.
type Target struct {
	Service string
	Handler string
	Key     string
}

func ServiceTarget(service, handler string) Target {
	return Target{Service: service, Handler: handler}
}

func ObjectTarget(service, key, handler string) Target {
	return Target{Service: service, Key: key, Handler: handler}
}

func (t Target) IsObject() bool {
	return t.Key != ""
}

func (t Target) Kind() string {
	if t.IsObject() {
		return "virtual object"
	}
	return "service"
}

func (t Target) String() string {
	if t.IsObject() {
		return fmt.Sprintf("%s/%s/%s", t.Service, t.Key, t.Handler)
	}
	return fmt.Sprintf("%s/%s", t.Service, t.Handler)
}

// Validate checks the fields needed to address the target, objects also need a key.
func (t Target) Validate(requireKey bool) error {
	if t.Service == "" {
		return NewValidationError("Service name")
	}
	if t.Handler == "" {
		return NewValidationError("Handler")
	}
	if requireKey && t.Key == "" {
		return NewValidationError("Key")
	}
	return nil
}

// Segments returns service, [key], handler
func (t Target) Segments() []string {
	if t.IsObject() {
		return []string{t.Service, t.Key, t.Handler}
	}
	return []string{t.Service, t.Handler}
}

// SendSegments is {service}/[{key}/]{handler}/send
func (t Target) SendSegments() []string {
	return append(t.Segments(), constants.PathSend)
}

// InvocationSegments is restate/invocation/{service}/[{key}/]{handler}/{idempotencyKey}/{op}
func (t Target) InvocationSegments(idempotencyKey, op string) []string {
	segments := make([]string, 0, 7)
	segments = append(segments, constants.PathRestate, constants.PathInvocation)
	segments = append(segments, t.Segments()...)
	return append(segments, idempotencyKey, op)
}

// DelayQuery renders the delay query value, empty when no delay applies.
// The ingress only understands whole seconds.
func DelayQuery(delay time.Duration) string {
	seconds := int64(delay / time.Second)
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%ds", seconds)
}

// SendOptions tune a fire-and-forget send
type SendOptions struct {
	IdempotencyKey string
	Delay          time.Duration
}
