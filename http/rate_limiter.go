package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	clientIdleThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows each client capacity requests per window, refilled
// continuously.
type RateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	capacity    int
	clients     map[string]*clientLimiter
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:       rate.Every(window / time.Duration(max(capacity, 1))),
		capacity:    capacity,
		clients:     make(map[string]*clientLimiter),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup(time.Now())
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, client := range r.clients {
		if now.Sub(client.lastSeen) > clientIdleThreshold {
			delete(r.clients, ip)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

func (r *RateLimiter) Allow(ip string) bool {
	return r.allowAt(ip, time.Now())
}

func (r *RateLimiter) allowAt(ip string, now time.Time) bool {
	r.mu.Lock()
	client, exists := r.clients[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.capacity)}
		r.clients[ip] = client
	}
	client.lastSeen = now
	r.mu.Unlock()

	return client.limiter.AllowN(now, 1)
}
