package codec

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/docker/go-units"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/thushan/restate-client/internal/core/constants"
	"github.com/thushan/restate-client/internal/core/domain"
	"github.com/thushan/restate-client/internal/logger"
	"github.com/thushan/restate-client/pkg/pool"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	initialBufferSize  = 4 << 10
	maxRetainedBuffer  = 1 << 20
	maxLoggedBodyBytes = 2 << 10
)

// Codec encodes request payloads and decodes ingress responses
type Codec struct {
	logger  *logger.StyledLogger
	buffers *pool.Pool[*bytes.Buffer]
	maxBody int64
}

type Option func(*Codec)

// WithMaxBodySize overrides the response read limit, non-positive values are ignored
func WithMaxBodySize(limit int64) Option {
	return func(c *Codec) {
		if limit > 0 {
			c.maxBody = limit
		}
	}
}

func New(log *logger.StyledLogger, opts ...Option) *Codec {
	c := &Codec{
		logger:  log,
		buffers: pool.NewBufferPool(initialBufferSize, maxRetainedBuffer),
		maxBody: constants.MaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EncodePayload renders the JSON body, a nil payload or mapping yields no body
func (c *Codec) EncodePayload(payload domain.Payload) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	m, err := payload.JSONMap()
	if err != nil {
		return nil, fmt.Errorf("failed to convert payload: %w", err)
	}
	return c.EncodeMap(m)
}

// EncodeMap renders an already converted mapping, nil yields no body
func (c *Codec) EncodeMap(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return body, nil
}

// ReadBody drains and closes the response body. A body past the read limit
// is an error wrapping domain.ErrResponseTooLarge, never a truncated result.
func (c *Codec) ReadBody(resp *http.Response) ([]byte, error) {
	defer func(Body io.ReadCloser) {
		// dont care about errors
		_ = Body.Close()
	}(resp.Body)

	buf := c.buffers.Get()
	defer c.buffers.Put(buf)

	// one byte past the limit tells a full body apart from a cut one
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, c.maxBody+1)); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(buf.Len()) > c.maxBody {
		return nil, fmt.Errorf("%w: exceeds %s", domain.ErrResponseTooLarge, units.BytesSize(float64(c.maxBody)))
	}

	// the buffer goes back to the pool, hand out a copy
	return bytes.Clone(buf.Bytes()), nil
}

// Decode reads the response and decodes it, see DecodeBody
func (c *Codec) Decode(resp *http.Response, emptyAsMap bool) (*domain.Result, []byte, error) {
	body, err := c.ReadBody(resp)
	if err != nil {
		return nil, nil, err
	}
	contentType := resp.Header.Get(constants.ContentTypeHeader)
	result := DecodeBody(resp.StatusCode, contentType, body, emptyAsMap)

	c.logger.Debug("Decoded response",
		"status", resp.StatusCode,
		"content_type", contentType,
		"json", result.IsJSON(),
		"size", units.HumanSize(float64(len(body))))
	return result, body, nil
}

// DecodeBody decodes JSON when the content type declares it and the document
// parses, otherwise falls back to the raw text. Malformed JSON never fails.
// Empty bodies become an empty mapping when emptyAsMap is set.
func DecodeBody(statusCode int, contentType string, body []byte, emptyAsMap bool) *domain.Result {
	if len(body) == 0 {
		if emptyAsMap {
			return domain.NewEmptyMapResult(statusCode, contentType)
		}
		return domain.NewTextResult(statusCode, contentType, body)
	}

	if domain.IsJSONContentType(contentType) && gjson.ValidBytes(body) {
		var value any
		if err := json.Unmarshal(body, &value); err == nil {
			return domain.NewJSONResult(statusCode, contentType, body, value)
		}
	}

	return domain.NewTextResult(statusCode, contentType, body)
}

// Snippet trims a body for log output
func Snippet(body []byte) string {
	if len(body) > maxLoggedBodyBytes {
		return string(body[:maxLoggedBodyBytes]) + "..."
	}
	return string(body)
}
