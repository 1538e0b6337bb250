package middleware

import (
	"net/http/httptest"
	"testing"
)

func TestClientIPGeneric_DirectRemote(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "203.0.113.5:54321"
	if ip := clientIPGeneric(req, nil); ip != "203.0.113.5" {
		t.Fatalf("expected direct remote IP, got %s", ip)
	}
}

func TestClientIPGeneric_TrustedProxyXFF(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "198.51.100.10:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.10")
	if ip := clientIPGeneric(req, []string{"198.51.100.10"}); ip != "203.0.113.7" {
		t.Fatalf("expected X-Forwarded-For first value, got %s", ip)
	}
}

func TestClientIPGeneric_UntrustedProxyIgnoresXFF(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "198.51.100.11:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.8, 198.51.100.11")
	if ip := clientIPGeneric(req, []string{"198.51.100.10"}); ip != "198.51.100.11" {
		t.Fatalf("expected remote IP when proxy untrusted, got %s", ip)
	}
}

func TestRouteCategory(t *testing.T) {
	cases := map[string]string{
		"/v3/login":               "auth",
		"/v3/register":            "auth",
		"/v3/refresh":             "auth",
		"/v3/admin/schemes":       "admin",
		"/v3/admin/upload/image":  "admin",
		"/v3/users/chits":         "api",
		"/v3/users/notifications": "api",
	}
	for path, want := range cases {
		if got := routeCategory(path); got != want {
			t.Errorf("routeCategory(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestPenaltySecondsEscalates(t *testing.T) {
	want := map[int]int{1: 60, 2: 300, 3: 900, 4: 1800, 9: 1800}
	for level, sec := range want {
		if got := penaltySeconds(level); got != sec {
			t.Errorf("penaltySeconds(%d) = %d, want %d", level, got, sec)
		}
	}
}
