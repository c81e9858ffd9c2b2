package api

import (
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimiter is the minimal capability the middleware needs; tests swap in
// deterministic implementations.
type rateLimiter interface {
	Allow() bool
}

type tokenBucketLimiter struct {
	limiter *rate.Limiter
}

// newTokenBucketLimiter builds a process-wide token bucket. The packing
// endpoints are CPU-bound, so limiting by request count is enough.
func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &tokenBucketLimiter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *tokenBucketLimiter) Allow() bool {
	if l == nil || l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
	})
}
