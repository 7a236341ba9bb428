package requestutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	if got := NewRequestID(); !requestIDPattern.MatchString(got) {
		t.Fatalf("expected generated request id to be valid, got %q", got)
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected fallback request id when RNG fails")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{query: "", want: 7},
		{query: "?day=12", want: 12},
		{query: "?day=%2012%20", want: 12},
		{query: "?day=twelve", wantErr: true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/games"+tt.query, nil)
		got, err := QueryInt(req, "day", 7)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tt.query)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("%q: got %d, %v; want %d", tt.query, got, err, tt.want)
		}
	}
}

func TestQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leaders?playoffs=true", nil)
	if got, err := QueryBool(req, "playoffs", false); err != nil || !got {
		t.Fatalf("expected true, got %v %v", got, err)
	}
	req = httptest.NewRequest(http.MethodGet, "/leaders", nil)
	if got, err := QueryBool(req, "playoffs", false); err != nil || got {
		t.Fatalf("expected default false, got %v %v", got, err)
	}
	req = httptest.NewRequest(http.MethodGet, "/leaders?playoffs=maybe", nil)
	if _, err := QueryBool(req, "playoffs", false); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
}
