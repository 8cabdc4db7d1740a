package util

import "testing"

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		segments []string
		expected string
	}{
		{
			name:     "service send",
			base:     "http://localhost:8080",
			segments: []string{"orders", "create", "send"},
			expected: "http://localhost:8080/orders/create/send",
		},
		{
			name:     "base with trailing slash",
			base:     "http://localhost:8080/",
			segments: []string{"orders", "create"},
			expected: "http://localhost:8080/orders/create",
		},
		{
			name:     "base with path prefix",
			base:     "http://gateway/restate",
			segments: []string{"cart", "user-42", "getTotal"},
			expected: "http://gateway/restate/cart/user-42/getTotal",
		},
		{
			name:     "segment with slash is escaped",
			base:     "http://localhost:8080",
			segments: []string{"cart", "a/b", "get"},
			expected: "http://localhost:8080/cart/a%2Fb/get",
		},
		{
			name:     "no segments",
			base:     "http://localhost:8080/",
			expected: "http://localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinURL(tt.base, tt.segments...); got != tt.expected {
				t.Errorf("JoinURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
			}
		})
	}
}

func TestWithQuery(t *testing.T) {
	if got := WithQuery("http://h/s/send", "delay", "10s"); got != "http://h/s/send?delay=10s" {
		t.Errorf("unexpected url %q", got)
	}
	if got := WithQuery("http://h/s/send?x=1", "delay", "10s"); got != "http://h/s/send?x=1&delay=10s" {
		t.Errorf("unexpected url %q", got)
	}
	if got := WithQuery("http://h/s/send", "delay", ""); got != "http://h/s/send" {
		t.Errorf("empty value should not add a query, got %q", got)
	}
}

func TestValidateBaseURL(t *testing.T) {
	valid := []string{"http://localhost:8080", "https://restate.example.com/ingress"}
	for _, u := range valid {
		if err := ValidateBaseURL(u); err != nil {
			t.Errorf("expected %q to be valid, got %v", u, err)
		}
	}

	invalid := []string{"", "localhost:8080", "ftp://host", "http://", "://bad"}
	for _, u := range invalid {
		if err := ValidateBaseURL(u); err == nil {
			t.Errorf("expected %q to be rejected", u)
		}
	}
}
