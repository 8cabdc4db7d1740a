package domain

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/thushan/restate-client/internal/core/constants"
)

// Result is a decoded ingress response.
//
// Value holds the decoded JSON document when the response declared JSON and
// parsed cleanly, the body text otherwise. An empty body decodes to an empty
// map when the caller asked for that, or to an empty string.
type Result struct {
	Value       any
	ContentType string
	Body        []byte
	StatusCode  int
	json        bool
}

func NewJSONResult(statusCode int, contentType string, body []byte, value any) *Result {
	return &Result{
		StatusCode:  statusCode,
		ContentType: contentType,
		Body:        body,
		Value:       value,
		json:        true,
	}
}

func NewTextResult(statusCode int, contentType string, body []byte) *Result {
	return &Result{
		StatusCode:  statusCode,
		ContentType: contentType,
		Body:        body,
		Value:       string(body),
	}
}

// NewEmptyMapResult is used for empty non-JSON bodies when the flavour maps them to {}
func NewEmptyMapResult(statusCode int, contentType string) *Result {
	return &Result{
		StatusCode:  statusCode,
		ContentType: contentType,
		Value:       map[string]any{},
	}
}

// IsJSON reports whether Value came from a JSON document
func (r *Result) IsJSON() bool {
	return r != nil && r.json
}

func (r *Result) IsEmpty() bool {
	return r == nil || len(r.Body) == 0
}

func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// Map returns Value as a mapping when it is one
func (r *Result) Map() (map[string]any, bool) {
	if r == nil {
		return nil, false
	}
	m, ok := r.Value.(map[string]any)
	return m, ok
}

// Decode unmarshals the raw body into v
func (r *Result) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(r.Body, v)
}

// Get looks up a gjson path in the body without decoding it all
func (r *Result) Get(path string) gjson.Result {
	if r == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Body, path)
}

// IsJSONContentType matches application/json with or without parameters
func IsJSONContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), constants.ContentTypeJSON)
}
