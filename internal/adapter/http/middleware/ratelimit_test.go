package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serveLimited(rl *RateLimiter, remoteAddr string) int {
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, nil)

	if code := serveLimited(rl, "9.9.9.9:1000"); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := serveLimited(rl, "9.9.9.9:1000"); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be blocked, got %d", code)
	}
}

func TestRateLimiter_TracksClientsSeparately(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, nil)

	if code := serveLimited(rl, "9.9.9.9:1000"); code != http.StatusOK {
		t.Fatalf("expected first client to pass, got %d", code)
	}
	if code := serveLimited(rl, "8.8.8.8:1000"); code != http.StatusOK {
		t.Fatalf("expected second client to pass, got %d", code)
	}
}

func TestRateLimiter_CleanupResetsBudgets(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, nil)

	serveLimited(rl, "9.9.9.9:1000")
	if code := serveLimited(rl, "9.9.9.9:1000"); code != http.StatusTooManyRequests {
		t.Fatalf("expected exhausted budget, got %d", code)
	}

	rl.CleanupLimiters()

	if code := serveLimited(rl, "9.9.9.9:1000"); code != http.StatusOK {
		t.Fatalf("expected fresh budget after cleanup, got %d", code)
	}
}

func TestRateLimiter_StartCleanupStopsOnCancel(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	rl.StartCleanup(ctx, time.Millisecond)
	cancel()
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded header wins", "1.1.1.1", "2.2.2.2", "3.3.3.3:1000", "1.1.1.1"},
		{"real ip next", "", "2.2.2.2", "3.3.3.3:1000", "2.2.2.2"},
		{"remote addr fallback", "", "", "3.3.3.3:1000", "3.3.3.3:1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := getIP(req); got != tt.want {
				t.Fatalf("getIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
