package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/carecompass/backend/internal/domain/providers"
)

const (
	feedbackRateLimit  = 30
	feedbackRateWindow = time.Hour
)

// feedbackLimiter caps feedback submissions per client IP. It counts in the
// shared cache when one is configured and in process memory otherwise.
type feedbackLimiter struct {
	cache providers.CacheProvider
	local *localRateLimiter
	limit int
	win   time.Duration
}

func newFeedbackLimiter(cache providers.CacheProvider) *feedbackLimiter {
	return &feedbackLimiter{
		cache: cache,
		local: newLocalRateLimiter(),
		limit: feedbackRateLimit,
		win:   feedbackRateWindow,
	}
}

type rateLimitState struct {
	Count int `json:"count"`
}

func (l *feedbackLimiter) allow(ctx context.Context, r *http.Request) (bool, time.Duration) {
	key := "feedback:rate:" + clientIP(r)
	if l.cache == nil {
		return l.local.allow(key, l.limit, l.win)
	}

	state := rateLimitState{}
	if data, err := l.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}
	if state.Count >= l.limit {
		return false, l.win
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = l.cache.Set(ctx, key, data, int(l.win.Seconds()))
	return true, l.win
}

type localRateLimiter struct {
	mu        sync.Mutex
	states    map[string]*localRateState
	nextSweep time.Time
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		l.sweepLocked(now)
		l.nextSweep = now.Add(window)
	}

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

// sweepLocked drops windows that have already reset.
func (l *localRateLimiter) sweepLocked(now time.Time) {
	for key, state := range l.states {
		if now.After(state.resetAt) {
			delete(l.states, key)
		}
	}
}

func (l *localRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.states)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
