package http

import (
	"testing"
	"time"
)

func TestRateLimiter_PerClient(t *testing.T) {

	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	now := time.Now()
	if !limiter.allowAt("a", now) || !limiter.allowAt("a", now) {
		t.Fatalf("expected the first two requests to pass")
	}
	if limiter.allowAt("a", now) {
		t.Errorf("expected the third request to be limited")
	}
	if !limiter.allowAt("b", now) {
		t.Errorf("expected other clients to keep their own budget")
	}

	// one token every 30s
	if !limiter.allowAt("a", now.Add(31*time.Second)) {
		t.Errorf("expected a token to be refilled")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {

	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	now := time.Now()
	limiter.allowAt("idle", now)
	limiter.cleanup(now.Add(2 * time.Hour))

	limiter.mu.Lock()
	_, exists := limiter.clients["idle"]
	limiter.mu.Unlock()

	if exists {
		t.Errorf("expected idle client to be evicted")
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	limiter.Stop()
}
