package middleware

import (
	"sync"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"golang.org/x/time/rate"
)

var limiterInstance = NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Buckets unused for
// idleTTL are dropped on the next sweep so the map does not grow forever.
type IPRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rateLimit rate.Limit
	burstRate int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors:  make(map[string]*visitor),
		rateLimit: r,
		burstRate: b,
		idleTTL:   config.RateLimiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) > i.idleTTL {
		i.sweep(now)
	}

	v, exists := i.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.rateLimit, i.burstRate)}
		i.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (i *IPRateLimiter) sweep(now time.Time) {
	for ip, v := range i.visitors {
		if now.Sub(v.lastSeen) > i.idleTTL {
			delete(i.visitors, ip)
		}
	}
	i.lastSweep = now
}

func (i *IPRateLimiter) size() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.visitors)
}

//TODO: move the per-IP limiters to redis once more than one replica serves uploads
