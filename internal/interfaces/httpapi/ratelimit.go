package httpapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/usecase"
	"golang.org/x/time/rate"
)

const (
	// limiterCleanupThreshold is the map size above which idle entries are pruned.
	limiterCleanupThreshold = 500
	limiterMaxIdleAge       = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu    sync.Mutex
	ips   map[string]*limiterEntry
	limit rate.Limit
	burst int
	now   func() time.Time
}

func NewIPRateLimiter(perSecond float64, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		ips:   make(map[string]*limiterEntry),
		limit: rate.Limit(perSecond),
		burst: burst,
		now:   time.Now,
	}
}

// Limiter returns the bucket for ip, pruning stale entries once the map grows
// past limiterCleanupThreshold.
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.ips) > limiterCleanupThreshold {
		cutoff := now.Add(-limiterMaxIdleAge)
		for key, entry := range l.ips {
			if entry.lastSeen.Before(cutoff) {
				delete(l.ips, key)
			}
		}
	}

	entry, ok := l.ips[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *IPRateLimiter) Allow(ip string) bool {
	return l.Limiter(ip).AllowN(l.now(), 1)
}

func (l *IPRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ips)
}

// RateLimitWrites rejects requests from a client IP whose bucket is empty.
func RateLimitWrites(limiter *IPRateLimiter, logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RateLimitWrites")
		defer span.End()

		ip := resolveClientIP(r)
		if !limiter.Allow(ip) {
			err := fmt.Errorf("%w: too many write requests, slow down", usecase.ErrRateLimited)
			logger.WarnContext(ctx, "write request throttled", "client_ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeError(ctx, w, err, "")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
