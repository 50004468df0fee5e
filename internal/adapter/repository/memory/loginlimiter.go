package memory

import (
	"context"
	"sync"
	"time"
)

// LoginLimiter is an in-process fixed window attempt counter, used when
// no Redis instance is configured.
type LoginLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*attemptWindow
}

type attemptWindow struct {
	count     int
	expiresAt time.Time
}

// NewLoginLimiter creates a LoginLimiter allowing limit attempts per
// window.
func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*attemptWindow),
	}
}

// Allow records an attempt for key and reports whether it is within the
// current window's budget.
func (l *LoginLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		w = &attemptWindow{expiresAt: now.Add(l.window)}
		l.windows[key] = w
	}

	w.count++

	return w.count <= l.limit, nil
}

// Reset clears the attempt counter for key.
func (l *LoginLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.windows, key)

	return nil
}
