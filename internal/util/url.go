package util

import (
	"fmt"
	"net/url"
	"strings"
)

// NormaliseBaseURL trims trailing slashes so segments can be appended with a single '/'
func NormaliseBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

// JoinURL appends escaped path segments to base: base/seg1/seg2...
func JoinURL(base string, segments ...string) string {
	var b strings.Builder
	b.Grow(len(base) + 16*len(segments))
	b.WriteString(NormaliseBaseURL(base))
	for _, segment := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(segment))
	}
	return b.String()
}

// WithQuery appends key=value, value is not escaped so "10s" stays readable
func WithQuery(rawURL, key, value string) string {
	if value == "" {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + key + "=" + value
}

// ValidateBaseURL checks we can address an ingress with it
func ValidateBaseURL(baseURL string) error {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid base url %q: missing host", baseURL)
	}
	return nil
}
