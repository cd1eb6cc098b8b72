package adapter

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rate limit headers sent by the PDS.
const (
	HeaderRateLimit     = "RateLimit-Limit"
	HeaderRateRemaining = "RateLimit-Remaining"
	HeaderRateReset     = "RateLimit-Reset"
	HeaderRetryAfter    = "Retry-After"
)

// rateLimiter combines a proactive token bucket with the server's reported
// quota: once the remaining budget falls below minBuffer, calls wait for
// the reset time.
type rateLimiter struct {
	mu        sync.Mutex
	known     bool
	remaining int
	resetTime time.Time
	bucket    *rate.Limiter
	minBuffer int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	return &rateLimiter{
		bucket:    rate.NewLimiter(rate.Limit(rps), burst),
		minBuffer: 1,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Wait blocks until it is safe to make a request.
func (r *rateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	known, remaining, resetTime := r.known, r.remaining, r.resetTime
	r.mu.Unlock()

	now := r.now()
	if known && remaining < r.minBuffer && now.Before(resetTime) {
		return r.sleep(ctx, resetTime.Sub(now))
	}
	return nil
}

// UpdateFromResponse records the quota headers of a response. A 429 with
// Retry-After moves the reset time forward and empties the budget.
func (r *rateLimiter) UpdateFromResponse(status int, header http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
			r.known = true
		}
	}

	if reset := header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}

	if status == http.StatusTooManyRequests {
		r.known = true
		r.remaining = 0
		if retryAfter := header.Get(HeaderRetryAfter); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				r.resetTime = r.now().Add(time.Duration(seconds) * time.Second)
			}
		}
	}
}

// Remaining returns the last reported remaining budget and whether any
// was reported.
func (r *rateLimiter) Remaining() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.known
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
