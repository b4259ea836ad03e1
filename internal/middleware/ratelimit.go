package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// bucket is the token balance for one client. Tokens refill continuously
// and are capped at the full burst.
type bucket struct {
	tokens float64
	last   time.Time
}

// RateLimiter throttles clients by originating IP using token buckets.
// A fresh client starts with `limit` tokens, refilled over `window`; the
// login form sits behind one of these to slow credential stuffing against
// the demo accounts.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	burst   float64
	refill  float64 // tokens per second
	done    chan struct{}
}

// NewRateLimiter allows limit requests per window per client and starts a
// background sweep of fully refilled buckets.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		burst:   float64(limit),
		refill:  float64(limit) / window.Seconds(),
		done:    make(chan struct{}),
	}
	go rl.sweep(window)
	return rl
}

// Stop ends the background sweep.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// credit advances b to now and returns its balance. Callers hold rl.mu.
func (rl *RateLimiter) credit(b *bucket, now time.Time) float64 {
	b.tokens += now.Sub(b.last).Seconds() * rl.refill
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.last = now
	return b.tokens
}

// Allow spends one token for ip, reporting false when the bucket is dry.
func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: rl.burst, last: now}
		rl.buckets[ip] = b
	}
	if rl.credit(b, now) < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets that have refilled completely. A full bucket holds
// no state a fresh one would not, so forgetting the client is free.
func (rl *RateLimiter) sweep(window time.Duration) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if rl.credit(b, now) >= rl.burst {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Middleware rejects over-limit clients with 429 and a Retry-After hint
// of one token's refill time.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(math.Ceil(1 / rl.refill)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", retryAfter)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the originating address, trusting proxy headers when
// present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
