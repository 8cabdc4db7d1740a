package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTerminal marks failures the caller should not retry at this layer
	ErrTerminal = errors.New("terminal failure")

	// ErrMissingArgument is returned before anything goes over the wire
	ErrMissingArgument = errors.New("missing required argument")

	// ErrSessionUnavailable is returned when the HTTP session could not be built
	ErrSessionUnavailable = errors.New("failed to create session")

	// ErrResponseTooLarge is returned when a response body exceeds the read limit
	ErrResponseTooLarge = errors.New("response body too large")
)

// TerminalError is the uniform failure every invocation-control operation reports.
// Message carries the upstream error text, Err the cause (when there is one).
type TerminalError struct {
	Err     error
	Op      string
	Message string
}

func (e *TerminalError) Error() string {
	return e.Message
}

func (e *TerminalError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTerminal}
	}
	return []error{ErrTerminal, e.Err}
}

type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingArgument
}

// StatusError is a non-2xx response from the ingress
type StatusError struct {
	URL        string
	Status     string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	kind := "Server"
	if e.StatusCode < 500 {
		kind = "Client"
	}
	text := http.StatusText(e.StatusCode)
	if text == "" {
		text = e.Status
	}
	return fmt.Sprintf("%d %s Error: %s for url: %s", e.StatusCode, kind, text, e.URL)
}

// TransportError is a failure to exchange the request at all (dial, reset, timeout)
type TransportError struct {
	Err    error
	Method string
	URL    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type ConfigValidationError struct {
	Value  interface{}
	Field  string
	Reason string
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s=%v: %s", e.Field, e.Value, e.Reason)
}

func NewTerminalError(op string, err error) *TerminalError {
	return &TerminalError{
		Op:      op,
		Message: err.Error(),
		Err:     err,
	}
}

func NewTerminalErrorf(op string, err error, format string, args ...any) *TerminalError {
	return &TerminalError{
		Op:      op,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// NewSessionUnavailableError folds a session construction failure into the
// terminal category with a fixed message, the cause is kept for errors.Is only.
func NewSessionUnavailableError(op string) *TerminalError {
	return &TerminalError{
		Op:      op,
		Message: ErrSessionUnavailable.Error(),
		Err:     ErrSessionUnavailable,
	}
}

func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}

func NewStatusError(url string, statusCode int, status string, body string) *StatusError {
	return &StatusError{
		URL:        url,
		StatusCode: statusCode,
		Status:     status,
		Body:       body,
	}
}

func NewTransportError(method, url string, err error) *TransportError {
	return &TransportError{
		Method: method,
		URL:    url,
		Err:    err,
	}
}

func NewConfigValidationError(field string, value interface{}, reason string) *ConfigValidationError {
	return &ConfigValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

func IsTerminal(err error) bool {
	return errors.Is(err, ErrTerminal)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingArgument)
}

// IsNotFound reports whether err carries a 404 from the ingress
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
